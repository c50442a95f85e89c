package app

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"love-unlock/internal/config"
	"love-unlock/internal/domain/page"
	"love-unlock/internal/domain/plan"
	"love-unlock/internal/domain/unlock"
	"love-unlock/internal/infrastructure/database/dbtest"
	"love-unlock/internal/infrastructure/database/transaction"
	"love-unlock/internal/infrastructure/repository/ratelimitrepo"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		CapabilitySecret:     "secret",
		CapabilityTTL:        time.Minute,
		RateLimitBackend:     config.RateLimitBackendSQL,
		RateLimitMaxAttempts: 2,
		RateLimitWindow:      time.Minute,
		RateLimitRetention:   time.Hour,
		UnlockAtomic:         true,
		PageCacheSize:        8,
		PageCacheTTL:         time.Second,
		StorageBackend:       config.StorageBackendLocal,
		StorageLocalPath:     t.TempDir(),
		StorageLocalBaseURL:  "http://localhost/uploads",
		MaxUploadBytes:       1024,
	}
}

func TestBuildWiresServices(t *testing.T) {
	ctx := context.Background()
	c, err := Build(ctx, testConfig(t), dbtest.Open(t), nil, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, c.Ready(ctx))

	created, err := c.Pages.Create(ctx, "owner", page.CreateInput{DisplayName: "A", Message: "B", PIN: "1234"})
	require.NoError(t, err)

	result, err := c.Unlocks.Submit(ctx, unlock.Submission{
		Code:          created.Code,
		Plan:          "ULT199",
		TransactionID: "ABCDEFGHI",
		SenderSuffix:  "999",
		ClientIP:      "10.0.0.1",
	})
	require.NoError(t, err)
	assert.Equal(t, "ULT199", string(result.Plan))

	assert.NotNil(t, c.Crontab())
}

func TestLimiterStoreSelection(t *testing.T) {
	cfg := testConfig(t)
	store, err := newLimiterStore(cfg, transaction.NewDatabase(dbtest.Open(t)), nil)
	require.NoError(t, err)
	assert.IsType(t, &ratelimitrepo.RateLimitGormRepository{}, store)

	cfg.RateLimitBackend = config.RateLimitBackendRedis
	_, err = newLimiterStore(cfg, nil, nil)
	assert.Error(t, err)
}

func TestReplicasDoNotDowngradeAnUnlock(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	first, err := Build(ctx, testConfig(t), db, nil, zerolog.Nop())
	require.NoError(t, err)
	second, err := Build(ctx, testConfig(t), db, nil, zerolog.Nop())
	require.NoError(t, err)

	created, err := first.Pages.Create(ctx, "owner", page.CreateInput{DisplayName: "A", Message: "B", PIN: "1234"})
	require.NoError(t, err)

	// the second replica holds the FREE page in its cache
	stale, err := second.Pages.Lookup(ctx, created.Code)
	require.NoError(t, err)
	require.Equal(t, plan.Free, stale.Plan)

	result, err := first.Unlocks.Submit(ctx, unlock.Submission{Code: created.Code, Plan: "ULT199", TransactionID: "AAAAA11111", SenderSuffix: "111", ClientIP: "10.0.0.1"})
	require.NoError(t, err)
	require.Equal(t, plan.Ultimate, result.Plan)

	result, err = second.Unlocks.Submit(ctx, unlock.Submission{Code: created.Code, Plan: "ROM99", TransactionID: "BBBBB22222", SenderSuffix: "222", ClientIP: "10.0.0.2"})
	require.NoError(t, err)
	assert.True(t, result.Already)
	assert.Equal(t, plan.Ultimate, result.Plan)

	items, err := second.Unlocks.List(ctx, unlock.Filter{Code: created.Code})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "AAAAA11111", items[0].TransactionID)

	current, err := first.Pages.Lookup(ctx, created.Code)
	require.NoError(t, err)
	assert.Equal(t, plan.Ultimate, current.Plan)
}

func TestReconcileKeepsAdminDowngrade(t *testing.T) {
	ctx := context.Background()
	c, err := Build(ctx, testConfig(t), dbtest.Open(t), nil, zerolog.Nop())
	require.NoError(t, err)

	created, err := c.Pages.Create(ctx, "owner", page.CreateInput{DisplayName: "A", Message: "B", PIN: "1234"})
	require.NoError(t, err)
	_, err = c.Unlocks.Submit(ctx, unlock.Submission{Code: created.Code, Plan: "ULT199", TransactionID: "ABCDEFGHI", SenderSuffix: "999", ClientIP: "10.0.0.1"})
	require.NoError(t, err)

	// refunded, the admin takes the page back to FREE
	_, err = c.Pages.OverridePlan(ctx, created.Code, "FREE")
	require.NoError(t, err)

	report, err := c.Unlocks.Reconcile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Checked)
	assert.Empty(t, report.Promoted)

	current, err := c.Pages.Lookup(ctx, created.Code)
	require.NoError(t, err)
	assert.Equal(t, plan.Free, current.Plan)
}

func TestProvideCleanupClosesDatabase(t *testing.T) {
	ctx := context.Background()
	_, cleanup, err := Provide(ctx, testConfig(t), zerolog.Nop())
	require.Error(t, err)
	assert.Nil(t, cleanup)

	c, err := Build(ctx, testConfig(t), dbtest.Open(t), nil, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, c.Ready(ctx))

	c.cleanup()
	assert.Error(t, c.Ready(ctx))
}
