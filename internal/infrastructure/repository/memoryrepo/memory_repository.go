package memoryrepo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"

	"love-unlock/internal/domain/memory"
	"love-unlock/internal/domain/plan"
	"love-unlock/internal/infrastructure/database/entities"
	"love-unlock/internal/infrastructure/database/transaction"
	"love-unlock/internal/utils/platformerrors"
)

type MemoryGormRepository struct {
	db *transaction.Database
}

var _ memory.Repository = (*MemoryGormRepository)(nil)

func NewMemoryGormRepository(db *transaction.Database) *MemoryGormRepository {
	return &MemoryGormRepository{db: db}
}

func (repo *MemoryGormRepository) Create(ctx context.Context, m *memory.Memory) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	model := &entities.Memory{
		ID:         m.ID,
		PageID:     m.PageID,
		MemoryDate: m.MemoryDate,
		Title:      m.Title,
		Note:       m.Note,
		PhotoURL:   m.PhotoURL,
	}
	if err := repo.db.GetTx(ctx).Create(model).Error; err != nil {
		return platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerRepository, err, "failed to create memory", "3e6a7a85-0a81-4ced-942a-4f9e2351fb99")
	}
	m.CreatedAt = model.CreatedAt
	return nil
}

func (repo *MemoryGormRepository) ListByPage(ctx context.Context, pageID string) ([]*memory.Memory, error) {
	var rows []entities.Memory
	if err := repo.db.GetTx(ctx).
		Where("page_id = ?", pageID).
		Order("memory_date ASC").
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerRepository, err, "failed to list memories", "e69f0a2c-baf2-46b4-a507-e0ce6feeb686")
	}
	out := make([]*memory.Memory, 0, len(rows))
	for _, row := range rows {
		out = append(out, &memory.Memory{
			ID:         row.ID,
			PageID:     row.PageID,
			MemoryDate: row.MemoryDate,
			Title:      row.Title,
			Note:       row.Note,
			PhotoURL:   row.PhotoURL,
			CreatedAt:  row.CreatedAt,
		})
	}
	return out, nil
}

func (repo *MemoryGormRepository) CountByPage(ctx context.Context, pageID string) (int64, error) {
	var count int64
	if err := repo.db.GetTx(ctx).Model(&entities.Memory{}).Where("page_id = ?", pageID).Count(&count).Error; err != nil {
		return 0, platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerRepository, err, "failed to count memories", "69d32823-1126-4650-87ab-80704a9f3384")
	}
	return count, nil
}

func (repo *MemoryGormRepository) LockPage(ctx context.Context, pageID string) (plan.Plan, error) {
	var model entities.Page
	if err := repo.db.GetTx(ctx).
		Clauses(dbresolver.Write, clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Select("id", "plan").
		Where("id = ?", pageID).
		Take(&model).Error; err != nil {
		return "", platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerRepository, err, "Not found", "3842e1f2-65d1-4bc4-814f-97d0a855ef49")
	}
	return plan.Plan(model.Plan), nil
}
