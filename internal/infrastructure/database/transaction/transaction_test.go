package transaction_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"love-unlock/internal/infrastructure/database/dbtest"
	"love-unlock/internal/infrastructure/database/entities"
	"love-unlock/internal/infrastructure/database/transaction"
)

func TestTransactionRollsBackOnError(t *testing.T) {
	db := dbtest.Open(t)
	tdb := transaction.NewDatabase(db)
	ctx := context.Background()

	err := tdb.Transaction(ctx, func(ctx context.Context) error {
		row := entities.RateLimit{LimitKey: "k1", WindowStartMs: 1, Attempts: 1}
		if err := tdb.GetTx(ctx).Create(&row).Error; err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&entities.RateLimit{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestTransactionNestedJoinsOuter(t *testing.T) {
	db := dbtest.Open(t)
	tdb := transaction.NewDatabase(db)
	ctx := context.Background()

	err := tdb.Transaction(ctx, func(ctx context.Context) error {
		return tdb.Transaction(ctx, func(ctx context.Context) error {
			return tdb.GetTx(ctx).Create(&entities.RateLimit{LimitKey: "k2", WindowStartMs: 1, Attempts: 1}).Error
		})
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&entities.RateLimit{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAfterCommitRunsOnlyOnCommit(t *testing.T) {
	tdb := transaction.NewDatabase(dbtest.Open(t))
	ctx := context.Background()

	var ran []string
	err := tdb.Transaction(ctx, func(ctx context.Context) error {
		transaction.AfterCommit(ctx, func() { ran = append(ran, "commit") })
		return tdb.Transaction(ctx, func(ctx context.Context) error {
			transaction.AfterCommit(ctx, func() { ran = append(ran, "nested") })
			assert.Empty(t, ran)
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"commit", "nested"}, ran)

	ran = nil
	err = tdb.Transaction(ctx, func(ctx context.Context) error {
		transaction.AfterCommit(ctx, func() { ran = append(ran, "rollback") })
		return errors.New("abort")
	})
	require.Error(t, err)
	assert.Empty(t, ran)

	transaction.AfterCommit(ctx, func() { ran = append(ran, "direct") })
	assert.Equal(t, []string{"direct"}, ran)
}
