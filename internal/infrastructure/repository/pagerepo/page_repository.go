package pagerepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"love-unlock/internal/domain/page"
	"love-unlock/internal/domain/plan"
	"love-unlock/internal/infrastructure/database/entities"
	"love-unlock/internal/infrastructure/database/transaction"
	"love-unlock/internal/utils/platformerrors"
)

// PageGormRepository implements page.Repository using GORM.
type PageGormRepository struct {
	db *transaction.Database
}

var _ page.Repository = (*PageGormRepository)(nil)

func NewPageGormRepository(db *transaction.Database) *PageGormRepository {
	return &PageGormRepository{db: db}
}

func (repo *PageGormRepository) Create(ctx context.Context, p *page.Page) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	model := toEntity(p)
	if err := repo.db.GetTx(ctx).Create(model).Error; err != nil {
		return platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerRepository, err, "failed to create page", "53666d4f-f40c-4e66-bd0b-dab96ad7bb07")
	}
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt
	return nil
}

func (repo *PageGormRepository) FindByCode(ctx context.Context, code string) (*page.Page, error) {
	var model entities.Page
	if err := repo.db.GetTx(ctx).Where("code = ?", code).First(&model).Error; err != nil {
		return nil, platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerRepository, err, "Not found", "e8d57974-e624-4f3f-addb-53a0804ed663")
	}
	return toDomain(&model), nil
}

func (repo *PageGormRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := repo.db.GetTx(ctx).Model(&entities.Page{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return false, platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerRepository, err, "Slug check failed", "e652e619-0b67-4b3e-b7d4-dc5cee2c222a")
	}
	return count > 0, nil
}

func (repo *PageGormRepository) ListByOwner(ctx context.Context, ownerID string) ([]*page.Page, error) {
	var rows []entities.Page
	if err := repo.db.GetTx(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerRepository, err, "failed to list pages", "bbbd618d-a29e-414d-a39e-5f0d021f3a48")
	}
	out := make([]*page.Page, 0, len(rows))
	for i := range rows {
		out = append(out, toDomain(&rows[i]))
	}
	return out, nil
}

func (repo *PageGormRepository) UpdateSettings(ctx context.Context, code string, update page.SettingsUpdate) error {
	changes := map[string]any{}
	if update.StealthEnabled != nil {
		changes["stealth_enabled"] = *update.StealthEnabled
	}
	switch {
	case update.ClearRevealAt:
		changes["reveal_at"] = nil
	case update.RevealAt != nil:
		changes["reveal_at"] = update.RevealAt.UTC()
	}
	if len(changes) == 0 {
		return nil
	}
	return repo.updateByCode(ctx, code, changes, "failed to update page settings", "c1fbbb9b-a71e-46db-b49f-90450e43c07e")
}

func (repo *PageGormRepository) RecordResponse(ctx context.Context, code string, choice string, at time.Time) error {
	return repo.updateByCode(ctx, code, map[string]any{
		"partner_choice":       choice,
		"partner_responded_at": at,
	}, "failed to record response", "f5fb80d8-8a11-4559-bb30-65fd671cb8d3")
}

// SetPlan also stamps plan_changed_at so reconciliation can tell older claims from newer overrides.
func (repo *PageGormRepository) SetPlan(ctx context.Context, code string, p plan.Plan) error {
	return repo.updateByCode(ctx, code, map[string]any{
		"plan":            string(p),
		"plan_changed_at": time.Now().UTC(),
	}, "failed to update plan", "70692a50-9a10-4bb6-a12c-d86d65c0f647")
}

// BumpViews increments the counter and stamps open times in one UPDATE, then reads the result back
// inside the same transaction.
func (repo *PageGormRepository) BumpViews(ctx context.Context, code string, at time.Time) (page.ViewStats, error) {
	var stats page.ViewStats
	err := repo.db.Transaction(ctx, func(ctx context.Context) error {
		tx := repo.db.GetTx(ctx)
		result := tx.Model(&entities.Page{}).
			Where("code = ?", code).
			Updates(map[string]any{
				"views":           gorm.Expr("views + 1"),
				"first_opened_at": gorm.Expr("COALESCE(first_opened_at, ?)", at),
				"last_opened_at":  at,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var model entities.Page
		if err := tx.Select("views", "first_opened_at", "last_opened_at").Where("code = ?", code).First(&model).Error; err != nil {
			return err
		}
		stats = page.ViewStats{Views: model.Views, FirstOpenedAt: model.FirstOpenedAt, LastOpenedAt: model.LastOpenedAt}
		return nil
	})
	if err != nil {
		return page.ViewStats{}, platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerRepository, err, "failed to bump views", "26bb4e1e-c2f8-4c0d-94df-142c4b9cb26a")
	}
	return stats, nil
}

// Delete removes the page together with its memories and templates.
func (repo *PageGormRepository) Delete(ctx context.Context, id string) error {
	err := repo.db.Transaction(ctx, func(ctx context.Context) error {
		tx := repo.db.GetTx(ctx)
		if err := tx.Where("page_id = ?", id).Delete(&entities.Memory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("page_id = ?", id).Delete(&entities.Template{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&entities.Page{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerRepository, err, "failed to delete page", "2f951fcd-732f-480b-bee0-0454a9931499")
	}
	return nil
}

func (repo *PageGormRepository) updateByCode(ctx context.Context, code string, changes map[string]any, message string, errUUID string) error {
	result := repo.db.GetTx(ctx).Model(&entities.Page{}).Where("code = ?", code).Updates(changes)
	if result.Error != nil {
		return platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerRepository, result.Error, message, errUUID)
	}
	if result.RowsAffected == 0 {
		return platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerRepository, gorm.ErrRecordNotFound, "Not found", errUUID)
	}
	return nil
}

func toEntity(p *page.Page) *entities.Page {
	return &entities.Page{
		ID:                 p.ID,
		Code:               p.Code,
		OwnerID:            p.OwnerID,
		DisplayName:        p.DisplayName,
		Subtitle:           p.Subtitle,
		Message:            p.Message,
		PinHash:            p.PinHash,
		Plan:               string(plan.Normalize(string(p.Plan))),
		PlanChangedAt:      p.PlanChangedAt,
		StealthEnabled:     p.StealthEnabled,
		RevealAt:           p.RevealAt,
		Watermark:          p.Watermark,
		EditSecret:         p.EditSecret,
		Views:              p.Views,
		FirstOpenedAt:      p.FirstOpenedAt,
		LastOpenedAt:       p.LastOpenedAt,
		PartnerChoice:      p.PartnerChoice,
		PartnerRespondedAt: p.PartnerRespondedAt,
	}
}

func toDomain(m *entities.Page) *page.Page {
	return &page.Page{
		ID:                 m.ID,
		Code:               m.Code,
		OwnerID:            m.OwnerID,
		DisplayName:        m.DisplayName,
		Subtitle:           m.Subtitle,
		Message:            m.Message,
		PinHash:            m.PinHash,
		Plan:               plan.Plan(m.Plan),
		PlanChangedAt:      m.PlanChangedAt,
		StealthEnabled:     m.StealthEnabled,
		RevealAt:           m.RevealAt,
		Watermark:          m.Watermark,
		EditSecret:         m.EditSecret,
		Views:              m.Views,
		FirstOpenedAt:      m.FirstOpenedAt,
		LastOpenedAt:       m.LastOpenedAt,
		PartnerChoice:      m.PartnerChoice,
		PartnerRespondedAt: m.PartnerRespondedAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
