package unlock

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"love-unlock/internal/domain/plan"
)

// ErrTransactionUsed is returned by Ledger.Record when the transaction id was already consumed.
var ErrTransactionUsed = errors.New("transaction id already used")

// Request is one ledger row: a payment transaction id claimed for a page.
type Request struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"trx_id"`
	Code          string          `json:"code"`
	Plan          plan.Plan       `json:"plan"`
	Amount        decimal.Decimal `json:"amount"`
	SenderSuffix  string          `json:"sender_last3"`
	ClientIP      string          `json:"user_ip"`
	UserAgent     string          `json:"user_agent"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Filter narrows ledger listings. A zero Limit means DefaultListLimit.
type Filter struct {
	Code   string
	Limit  int
	Offset int
}

const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// reconcileBatchSize is the page size Reconcile walks the ledger with.
var reconcileBatchSize = MaxListLimit

// Submission is a user's claim that they paid for a plan.
type Submission struct {
	Code          string
	Plan          string
	TransactionID string
	SenderSuffix  string
	ClientIP      string
	UserAgent     string
}

// Result of a successful submission. Already is set when the page was on a paid tier before.
type Result struct {
	OK      bool      `json:"ok"`
	Plan    plan.Plan `json:"plan"`
	Already bool      `json:"already,omitempty"`
}

// ReconcileReport summarises a reconciliation pass.
type ReconcileReport struct {
	Checked  int      `json:"checked"`
	Promoted []string `json:"promoted"`
}

// Outcome labels for attempt metrics.
const (
	OutcomeUnlocked    = "unlocked"
	OutcomeAlready     = "already"
	OutcomeInvalid     = "invalid"
	OutcomeRateLimited = "rate_limited"
	OutcomeNotFound    = "not_found"
	OutcomeConflict    = "conflict"
	OutcomeError       = "error"
)
