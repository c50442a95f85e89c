package crontab

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"love-unlock/internal/domain/ratelimit"
	"love-unlock/internal/domain/unlock"
)

type fakeLimiter struct {
	purged    int
	retention time.Duration
}

func (f *fakeLimiter) CheckAndRecord(context.Context, string) (ratelimit.Decision, error) {
	return ratelimit.Decision{Allowed: true}, nil
}

func (f *fakeLimiter) Purge(_ context.Context, retention time.Duration) (int64, error) {
	f.purged++
	f.retention = retention
	return 3, nil
}

type fakeUnlocks struct {
	unlock.Service
	reconciled int
}

func (f *fakeUnlocks) Reconcile(context.Context) (unlock.ReconcileReport, error) {
	f.reconciled++
	return unlock.ReconcileReport{Checked: 1}, nil
}

type busyLocker struct{ calls int }

func (b *busyLocker) WithLock(context.Context, string, time.Duration, func(context.Context) error) error {
	b.calls++
	return errors.New("lock already taken")
}

func TestRunJobWithoutLocker(t *testing.T) {
	limiter := &fakeLimiter{}
	c := NewCrontab(limiter, &fakeUnlocks{}, 24*time.Hour, nil, zerolog.Nop())

	c.runJob("ratelimit-purge", c.purge)

	assert.Equal(t, 1, limiter.purged)
	assert.Equal(t, 24*time.Hour, limiter.retention)
}

func TestRunJobSkipsWhenLockHeld(t *testing.T) {
	unlocks := &fakeUnlocks{}
	locker := &busyLocker{}
	c := NewCrontab(&fakeLimiter{}, unlocks, time.Hour, locker, zerolog.Nop())

	c.runJob("ledger-reconcile", c.reconcileLedger)

	assert.Equal(t, 1, locker.calls)
	assert.Zero(t, unlocks.reconciled)
}

func TestRunStopsWithContext(t *testing.T) {
	unlocks := &fakeUnlocks{}
	c := NewCrontab(&fakeLimiter{}, unlocks, time.Hour, nil, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("crontab did not stop")
	}
	assert.Equal(t, 1, unlocks.reconciled)
}

func TestRunWithoutReconcile(t *testing.T) {
	unlocks := &fakeUnlocks{}
	c := NewCrontab(&fakeLimiter{}, unlocks, time.Hour, nil, zerolog.Nop()).SkipReconcile()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, c.Run(ctx))
	assert.Zero(t, unlocks.reconciled)
}
