package memory

import (
	"context"

	"love-unlock/internal/domain/plan"
)

type Repository interface {
	Create(ctx context.Context, m *Memory) error
	// ListByPage returns memories ordered by memory date, oldest first.
	ListByPage(ctx context.Context, pageID string) ([]*Memory, error)
	CountByPage(ctx context.Context, pageID string) (int64, error)
	// LockPage row-locks the page until the surrounding transaction ends and returns its current plan.
	LockPage(ctx context.Context, pageID string) (plan.Plan, error)
}

// Transactor runs fn in a single storage transaction.
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
