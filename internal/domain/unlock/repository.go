package unlock

import (
	"context"

	"love-unlock/internal/domain/page"
	"love-unlock/internal/domain/plan"
)

// Ledger guarantees a transaction id is consumed at most once.
type Ledger interface {
	IsUsed(ctx context.Context, trxID string) (bool, error)
	// Record fails with ErrTransactionUsed on a uniqueness violation.
	Record(ctx context.Context, r *Request) error
	List(ctx context.Context, filter Filter) ([]*Request, error)
	LatestForCode(ctx context.Context, code string) (*Request, error)
}

// PlanStore reads and promotes page plans.
type PlanStore interface {
	FindByCode(ctx context.Context, code string) (*page.Page, error)
	SetPlan(ctx context.Context, code string, p plan.Plan) error
}

// Transactor runs fn in a single storage transaction.
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Recorder observes submission outcomes.
type Recorder interface {
	UnlockAttempt(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) UnlockAttempt(string) {}
