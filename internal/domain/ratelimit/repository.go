package ratelimit

import (
	"context"
	"time"
)

// Store persists attempt counters.
//
// Hit must be atomic per key: concurrent calls for the same key may never
// admit more than policy.MaxAttempts attempts inside one window.
type Store interface {
	Hit(ctx context.Context, key string, now time.Time, policy Policy) (Hit, error)
	// PurgeBefore deletes counters whose window started before cutoff.
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
