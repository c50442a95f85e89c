package templaterepo

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"love-unlock/internal/domain/template"
	"love-unlock/internal/infrastructure/database/entities"
	"love-unlock/internal/infrastructure/database/transaction"
	"love-unlock/internal/utils/platformerrors"
)

type TemplateGormRepository struct {
	db *transaction.Database
}

var _ template.Repository = (*TemplateGormRepository)(nil)

func NewTemplateGormRepository(db *transaction.Database) *TemplateGormRepository {
	return &TemplateGormRepository{db: db}
}

func (repo *TemplateGormRepository) Create(ctx context.Context, t *template.Template) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	model := &entities.Template{
		ID:       t.ID,
		PageID:   t.PageID,
		Code:     t.Code,
		ImageURL: t.ImageURL,
		PhotoURL: t.PhotoURL,
	}
	if len(t.Meta) > 0 {
		model.Meta = datatypes.JSON(t.Meta)
	}
	if err := repo.db.GetTx(ctx).Create(model).Error; err != nil {
		return platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerRepository, err, "failed to save template", "742c520c-40d3-4561-baab-c5aa4582ae06")
	}
	t.CreatedAt = model.CreatedAt
	return nil
}

func (repo *TemplateGormRepository) ListByPage(ctx context.Context, pageID string) ([]*template.Template, error) {
	var rows []entities.Template
	if err := repo.db.GetTx(ctx).
		Where("page_id = ?", pageID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerRepository, err, "failed to list templates", "85c2c303-2726-48c2-87f8-fe9b38b4dd1c")
	}
	out := make([]*template.Template, 0, len(rows))
	for _, row := range rows {
		item := &template.Template{
			ID:        row.ID,
			PageID:    row.PageID,
			Code:      row.Code,
			ImageURL:  row.ImageURL,
			PhotoURL:  row.PhotoURL,
			CreatedAt: row.CreatedAt,
		}
		if len(row.Meta) > 0 {
			item.Meta = json.RawMessage(row.Meta)
		}
		out = append(out, item)
	}
	return out, nil
}
