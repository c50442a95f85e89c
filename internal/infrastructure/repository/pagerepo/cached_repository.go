package pagerepo

import (
	"context"
	"time"

	"love-unlock/internal/domain/page"
	"love-unlock/internal/domain/plan"
	"love-unlock/internal/infrastructure/database/transaction"
)

// Cache holds recently read pages keyed by code.
type Cache interface {
	Get(code string) (*page.Page, bool)
	Add(code string, p *page.Page)
	Remove(code string)
	Purge()
}

// CachedRepository serves FindByCode from cache and drops entries on every write.
// View counters are not invalidated, so cached reads may lag views by the cache TTL.
type CachedRepository struct {
	page.Repository
	cache Cache
}

var _ page.Repository = (*CachedRepository)(nil)

func NewCachedRepository(inner page.Repository, cache Cache) *CachedRepository {
	return &CachedRepository{Repository: inner, cache: cache}
}

func (r *CachedRepository) FindByCode(ctx context.Context, code string) (*page.Page, error) {
	if p, ok := r.cache.Get(code); ok {
		return p, nil
	}
	p, err := r.Repository.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	r.cache.Add(code, p)
	return p, nil
}

func (r *CachedRepository) UpdateSettings(ctx context.Context, code string, update page.SettingsUpdate) error {
	defer r.invalidate(ctx, code)
	return r.Repository.UpdateSettings(ctx, code, update)
}

func (r *CachedRepository) RecordResponse(ctx context.Context, code string, choice string, at time.Time) error {
	defer r.invalidate(ctx, code)
	return r.Repository.RecordResponse(ctx, code, choice, at)
}

func (r *CachedRepository) SetPlan(ctx context.Context, code string, p plan.Plan) error {
	defer r.invalidate(ctx, code)
	return r.Repository.SetPlan(ctx, code, p)
}

func (r *CachedRepository) Delete(ctx context.Context, id string) error {
	// entries are keyed by code, deletes are rare enough to flush everything
	defer func() {
		r.cache.Purge()
		transaction.AfterCommit(ctx, r.cache.Purge)
	}()
	return r.Repository.Delete(ctx, id)
}

// invalidate drops the entry now and again after commit, a concurrent read may have cached the old row.
func (r *CachedRepository) invalidate(ctx context.Context, code string) {
	r.cache.Remove(code)
	transaction.AfterCommit(ctx, func() { r.cache.Remove(code) })
}
