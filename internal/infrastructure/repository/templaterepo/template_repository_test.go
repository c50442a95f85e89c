package templaterepo

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"love-unlock/internal/domain/template"
	"love-unlock/internal/infrastructure/database/dbtest"
	"love-unlock/internal/infrastructure/database/entities"
	"love-unlock/internal/infrastructure/database/transaction"
)

func TestTemplatesNewestFirstWithMeta(t *testing.T) {
	ctx := context.Background()
	db := transaction.NewDatabase(dbtest.Open(t))
	repo := NewTemplateGormRepository(db)
	pageID := uuid.NewString()

	older := &template.Template{PageID: pageID, Code: "ABC1234", ImageURL: "/uploads/ABC1234/a.png"}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, db.GetTx(ctx).Model(&entities.Template{}).
		Where("id = ?", older.ID).Update("created_at", time.Now().Add(-time.Hour)).Error)

	newer := &template.Template{
		PageID:   pageID,
		Code:     "ABC1234",
		ImageURL: "/uploads/ABC1234/b.png",
		Meta:     json.RawMessage(`{"style":"rose"}`),
	}
	require.NoError(t, repo.Create(ctx, newer))

	items, err := repo.ListByPage(ctx, pageID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, newer.ID, items[0].ID)
	assert.JSONEq(t, `{"style":"rose"}`, string(items[0].Meta))
	assert.Nil(t, items[1].Meta)
}
