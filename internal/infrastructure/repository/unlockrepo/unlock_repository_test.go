package unlockrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"love-unlock/internal/domain/plan"
	"love-unlock/internal/domain/unlock"
	"love-unlock/internal/infrastructure/database/dbtest"
	"love-unlock/internal/infrastructure/database/entities"
	"love-unlock/internal/infrastructure/database/transaction"
)

func newRepo(t *testing.T) (*LedgerGormRepository, *transaction.Database) {
	t.Helper()
	db := transaction.NewDatabase(dbtest.Open(t))
	return NewLedgerGormRepository(db), db
}

func request(code, trx string) *unlock.Request {
	return &unlock.Request{
		TransactionID: trx,
		Code:          code,
		Plan:          plan.Romance,
		Amount:        decimal.NewFromInt(99),
		SenderSuffix:  "123",
		ClientIP:      "1.2.3.4",
		UserAgent:     "test",
	}
}

func TestRecordRejectsReusedTransaction(t *testing.T) {
	ctx := context.Background()
	repo, _ := newRepo(t)

	require.NoError(t, repo.Record(ctx, request("ABC1234", "TRX123456")))

	used, err := repo.IsUsed(ctx, "TRX123456")
	require.NoError(t, err)
	assert.True(t, used)

	err = repo.Record(ctx, request("XYZ9876", "TRX123456"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, unlock.ErrTransactionUsed))

	used, err = repo.IsUsed(ctx, "OTHER12345")
	require.NoError(t, err)
	assert.False(t, used)
}

func TestListFiltersAndOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo, db := newRepo(t)

	base := time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC)
	rows := []struct {
		code, trx string
		at        time.Time
	}{
		{"ABC1234", "TRX000000001", base},
		{"ABC1234", "TRX000000002", base.Add(time.Hour)},
		{"XYZ9876", "TRX000000003", base.Add(2 * time.Hour)},
	}
	for _, row := range rows {
		r := request(row.code, row.trx)
		require.NoError(t, repo.Record(ctx, r))
		require.NoError(t, db.GetTx(ctx).Model(&entities.UnlockRequest{}).
			Where("id = ?", r.ID).Update("created_at", row.at).Error)
	}

	all, err := repo.List(ctx, unlock.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "TRX000000003", all[0].TransactionID)

	filtered, err := repo.List(ctx, unlock.Filter{Code: "ABC1234", Limit: 1})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "TRX000000002", filtered[0].TransactionID)
	assert.True(t, filtered[0].Amount.Equal(decimal.NewFromInt(99)))
	assert.Equal(t, plan.Romance, filtered[0].Plan)

	paged, err := repo.List(ctx, unlock.Filter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, paged, 2)
	assert.Equal(t, "TRX000000002", paged[0].TransactionID)
	assert.Equal(t, "TRX000000001", paged[1].TransactionID)

	latest, err := repo.LatestForCode(ctx, "ABC1234")
	require.NoError(t, err)
	assert.Equal(t, "TRX000000002", latest.TransactionID)

	_, err = repo.LatestForCode(ctx, "NOPE123")
	require.Error(t, err)
}
