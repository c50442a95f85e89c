package ratelimitrepo

import (
	"context"
	"time"

	"love-unlock/internal/domain/ratelimit"
	"love-unlock/internal/infrastructure/database/entities"
	"love-unlock/internal/infrastructure/database/transaction"
	"love-unlock/internal/utils/platformerrors"
)

// hitSQL consults and updates a counter in one statement. A row comes back only when the
// attempt is admitted: either the window had expired (reset to 1) or attempts were below the cap.
const hitSQL = `
INSERT INTO unlock_rate_limits (limit_key, window_start_ms, attempts, updated_at)
VALUES (?, ?, 1, ?)
ON CONFLICT (limit_key) DO UPDATE SET
	attempts = CASE WHEN unlock_rate_limits.window_start_ms < ? THEN 1 ELSE unlock_rate_limits.attempts + 1 END,
	window_start_ms = CASE WHEN unlock_rate_limits.window_start_ms < ? THEN excluded.window_start_ms ELSE unlock_rate_limits.window_start_ms END,
	updated_at = excluded.updated_at
WHERE unlock_rate_limits.window_start_ms < ? OR unlock_rate_limits.attempts < ?
RETURNING attempts`

// RateLimitGormRepository implements ratelimit.Store on the unlock_rate_limits table.
type RateLimitGormRepository struct {
	db *transaction.Database
}

var _ ratelimit.Store = (*RateLimitGormRepository)(nil)

func NewRateLimitGormRepository(db *transaction.Database) *RateLimitGormRepository {
	return &RateLimitGormRepository{db: db}
}

func (repo *RateLimitGormRepository) Hit(ctx context.Context, key string, now time.Time, policy ratelimit.Policy) (ratelimit.Hit, error) {
	nowMs := now.UnixMilli()
	expiredBefore := nowMs - policy.Window.Milliseconds()

	rows, err := repo.db.GetTx(ctx).
		Raw(hitSQL, key, nowMs, now.UTC(), expiredBefore, expiredBefore, expiredBefore, policy.MaxAttempts).
		Rows()
	if err != nil {
		return ratelimit.Hit{}, platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerRepository, err, "Rate limit update failed", "800a8b82-e424-4e62-8f79-32c5e33dbc5f")
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return ratelimit.Hit{}, platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerRepository, err, "Rate limit update failed", "061eac54-6545-4afb-afe3-c8075b6c3665")
		}
		return ratelimit.Hit{Allowed: false, Attempts: policy.MaxAttempts}, nil
	}

	var attempts int
	if err := rows.Scan(&attempts); err != nil {
		return ratelimit.Hit{}, platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerRepository, err, "Rate limit update failed", "be4c3bc2-644a-4c41-93e2-e42cc0844353")
	}
	return ratelimit.Hit{Allowed: true, Attempts: attempts}, nil
}

func (repo *RateLimitGormRepository) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := repo.db.GetTx(ctx).
		Where("window_start_ms < ?", cutoff.UnixMilli()).
		Delete(&entities.RateLimit{})
	if result.Error != nil {
		return 0, platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerRepository, result.Error, "failed to purge rate limit counters", "66543498-2424-4167-b3ee-439727d57b18")
	}
	return result.RowsAffected, nil
}
