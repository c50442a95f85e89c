package memory

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"love-unlock/internal/domain/page"
	"love-unlock/internal/domain/plan"
	"love-unlock/internal/utils/platformerrors"
)

type stubPages struct {
	page *page.Page
}

func (s *stubPages) Lookup(ctx context.Context, code string) (*page.Page, error) {
	if s.page == nil || s.page.Code != code {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "Not found", nil, "")
	}
	return s.page, nil
}

func (s *stubPages) Authorize(ctx context.Context, code string, secret string) (*page.Page, error) {
	p, err := s.Lookup(ctx, code)
	if err != nil || p.EditSecret != secret {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized, "Unauthorized", nil, "")
	}
	return p, nil
}

type memRepo struct {
	mu    sync.Mutex
	items []*Memory
	tier  plan.Plan
	locks int
}

func (r *memRepo) LockPage(context.Context, string) (plan.Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locks++
	return r.tier, nil
}

func (r *memRepo) Create(_ context.Context, m *Memory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, m)
	return nil
}

func (r *memRepo) ListByPage(_ context.Context, pageID string) ([]*Memory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Memory
	for _, m := range r.items {
		if m.PageID == pageID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MemoryDate.Before(out[j].MemoryDate) })
	return out, nil
}

func (r *memRepo) CountByPage(_ context.Context, pageID string) (int64, error) {
	items, _ := r.ListByPage(context.Background(), pageID)
	return int64(len(items)), nil
}

func newMemoryService(tier plan.Plan) (Service, *memRepo) {
	pages := &stubPages{page: &page.Page{ID: "page-1", Code: "ABC1234", EditSecret: "secret", Plan: tier}}
	repo := &memRepo{tier: tier}
	return NewService(pages, repo, nil, zerolog.Nop()), repo
}

func TestAddEnforcesPlanLimit(t *testing.T) {
	svc, _ := newMemoryService(plan.Free)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Add(ctx, "ABC1234", "secret", AddInput{MemoryDate: "2025-02-14", Title: "First date"})
		require.NoError(t, err)
	}

	_, err := svc.Add(ctx, "ABC1234", "secret", AddInput{MemoryDate: "2025-02-15", Title: "One too many"})
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden))
	assert.Contains(t, err.Error(), "Memory limit reached for FREE")
}

func TestAddCrushLimit(t *testing.T) {
	svc, repo := newMemoryService(plan.Crush)
	for i := 0; i < 10; i++ {
		_, err := svc.Add(context.Background(), "ABC1234", "secret", AddInput{MemoryDate: "2025-01-01", Title: "m"})
		require.NoError(t, err)
	}
	_, err := svc.Add(context.Background(), "ABC1234", "secret", AddInput{MemoryDate: "2025-01-01", Title: "m"})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden))
	assert.Len(t, repo.items, 10)
}

func TestAddValidates(t *testing.T) {
	svc, _ := newMemoryService(plan.Romance)
	ctx := context.Background()

	_, err := svc.Add(ctx, "ABC1234", "wrong", AddInput{MemoryDate: "2025-02-14", Title: "x"})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized))

	_, err = svc.Add(ctx, "ABC1234", "secret", AddInput{MemoryDate: "14/02/2025", Title: "x"})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	_, err = svc.Add(ctx, "ABC1234", "secret", AddInput{MemoryDate: "2025-02-14", Title: "  "})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
}

func TestListOrdersByDate(t *testing.T) {
	svc, _ := newMemoryService(plan.Ultimate)
	ctx := context.Background()
	empty := " "

	for _, d := range []string{"2025-03-01", "2024-12-25", "2025-01-10"} {
		_, err := svc.Add(ctx, "ABC1234", "secret", AddInput{MemoryDate: d, Title: d, Note: &empty})
		require.NoError(t, err)
	}

	items, err := svc.List(ctx, "ABC1234")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "2024-12-25", items[0].MemoryDate.Format(DateLayout))
	assert.Equal(t, "2025-03-01", items[2].MemoryDate.Format(DateLayout))
	assert.Nil(t, items[0].Note)

	_, err = svc.List(ctx, "NOPE")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

// serialTransactor runs one transaction at a time, like a locked page row.
type serialTransactor struct {
	mu sync.Mutex
}

func (s *serialTransactor) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx)
}

func TestAddConcurrentStopsAtLimit(t *testing.T) {
	pages := &stubPages{page: &page.Page{ID: "page-1", Code: "ABC1234", EditSecret: "secret", Plan: plan.Free}}
	repo := &memRepo{tier: plan.Free}
	svc := NewService(pages, repo, &serialTransactor{}, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Add(context.Background(), "ABC1234", "secret", AddInput{MemoryDate: "2025-02-14", Title: "m"})
		}()
	}
	wg.Wait()

	assert.Len(t, repo.items, plan.LimitsFor(plan.Free).Memories)
	assert.Equal(t, 20, repo.locks)
}

func TestAddUsesLockedPlan(t *testing.T) {
	// the resolver served a stale FREE page, the locked row already says CRUSH49
	pages := &stubPages{page: &page.Page{ID: "page-1", Code: "ABC1234", EditSecret: "secret", Plan: plan.Free}}
	repo := &memRepo{tier: plan.Crush}
	svc := NewService(pages, repo, nil, zerolog.Nop())

	for i := 0; i < plan.LimitsFor(plan.Free).Memories+1; i++ {
		_, err := svc.Add(context.Background(), "ABC1234", "secret", AddInput{MemoryDate: "2025-02-14", Title: "m"})
		require.NoError(t, err)
	}
}
