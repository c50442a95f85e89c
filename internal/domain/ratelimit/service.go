package ratelimit

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"love-unlock/internal/utils/platformerrors"
)

// Limiter gates unlock attempts per (client address, page code).
type Limiter interface {
	CheckAndRecord(ctx context.Context, key string) (Decision, error)
	// Purge removes counters idle for longer than retention on top of the window.
	Purge(ctx context.Context, retention time.Duration) (int64, error)
}

type limiter struct {
	store  Store
	policy Policy
	now    func() time.Time
	log    zerolog.Logger
}

// NewLimiter wires a limiter over store. A zero policy falls back to DefaultPolicy.
func NewLimiter(store Store, policy Policy, log zerolog.Logger) Limiter {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = DefaultPolicy.MaxAttempts
	}
	if policy.Window <= 0 {
		policy.Window = DefaultPolicy.Window
	}
	return &limiter{
		store:  store,
		policy: policy,
		now:    time.Now,
		log:    log.With().Str("component", "rate-limiter").Logger(),
	}
}

func (l *limiter) CheckAndRecord(ctx context.Context, key string) (Decision, error) {
	hit, err := l.store.Hit(ctx, key, l.now(), l.policy)
	if err != nil {
		return Decision{}, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "rate limit update failed")
	}

	if !hit.Allowed {
		attempts := hit.Attempts
		if attempts < l.policy.MaxAttempts {
			attempts = l.policy.MaxAttempts
		}
		l.log.Debug().Int("attempts", attempts).Msg("attempt denied")
		return Decision{Allowed: false, Reason: ReasonTooManyAttempts, Attempts: attempts}, nil
	}

	return Decision{Allowed: true, Attempts: hit.Attempts}, nil
}

func (l *limiter) Purge(ctx context.Context, retention time.Duration) (int64, error) {
	if retention < 0 {
		retention = 0
	}
	cutoff := l.now().Add(-(l.policy.Window + retention))
	removed, err := l.store.PurgeBefore(ctx, cutoff)
	if err != nil {
		return 0, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "purge rate limit counters")
	}
	if removed > 0 {
		l.log.Info().Int64("removed", removed).Time("cutoff", cutoff).Msg("purged stale rate limit counters")
	}
	return removed, nil
}
