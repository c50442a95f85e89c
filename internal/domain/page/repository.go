package page

import (
	"context"
	"time"

	"love-unlock/internal/domain/plan"
)

// Repository persists pages. Lookups by code expect a normalized code and return a
// NOT_FOUND platform error when no page matches.
type Repository interface {
	Create(ctx context.Context, p *Page) error
	FindByCode(ctx context.Context, code string) (*Page, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Page, error)
	UpdateSettings(ctx context.Context, code string, update SettingsUpdate) error
	RecordResponse(ctx context.Context, code string, choice string, at time.Time) error
	BumpViews(ctx context.Context, code string, at time.Time) (ViewStats, error)
	SetPlan(ctx context.Context, code string, p plan.Plan) error
	Delete(ctx context.Context, id string) error
}

// CapabilityIssuer mints and checks reveal grants bound to a page code.
type CapabilityIssuer interface {
	Issue(code string) (Capability, error)
	Verify(token string, code string) error
}
