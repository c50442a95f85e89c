package unlock

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	inputs "love-unlock/internal/domain/codes"
	"love-unlock/internal/domain/plan"
	"love-unlock/internal/domain/ratelimit"
	"love-unlock/internal/utils/platformerrors"
	"love-unlock/internal/utils/redact"
)

var tracer = otel.Tracer("love-unlock/internal/domain/unlock")

// Service turns a claimed payment into a plan upgrade.
type Service interface {
	Submit(ctx context.Context, sub Submission) (Result, error)
	List(ctx context.Context, filter Filter) ([]*Request, error)
	// Reconcile promotes pages still below a paid tier although the ledger holds a claim for them.
	Reconcile(ctx context.Context) (ReconcileReport, error)
	ReconcileCode(ctx context.Context, code string) (bool, error)
}

// Options tune the orchestrator.
type Options struct {
	// Atomic records the ledger entry and promotes the plan in one transaction.
	Atomic bool
}

type service struct {
	limiter  ratelimit.Limiter
	ledger   Ledger
	pages    PlanStore
	tx       Transactor
	recorder Recorder
	hasher   *redact.Hasher
	opts     Options
	log      zerolog.Logger
}

func NewService(limiter ratelimit.Limiter, ledger Ledger, pages PlanStore, tx Transactor, recorder Recorder, hasher *redact.Hasher, opts Options, log zerolog.Logger) Service {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if hasher == nil {
		hasher = redact.NewHasher("")
	}
	if tx == nil {
		opts.Atomic = false
	}
	return &service{
		limiter:  limiter,
		ledger:   ledger,
		pages:    pages,
		tx:       tx,
		recorder: recorder,
		hasher:   hasher,
		opts:     opts,
		log:      log.With().Str("component", "unlock-service").Logger(),
	}
}

func (s *service) Submit(ctx context.Context, sub Submission) (result Result, err error) {
	ctx, span := tracer.Start(ctx, "unlock.Submit")
	defer func() {
		s.finish(span, result, err)
	}()

	code := inputs.NormalizeCode(sub.Code)
	trxID := inputs.NormalizeTransactionID(sub.TransactionID)
	suffix := strings.TrimSpace(sub.SenderSuffix)
	target, known := plan.Parse(sub.Plan)
	clientIP := strings.TrimSpace(sub.ClientIP)
	if clientIP == "" {
		clientIP = "unknown"
	}

	switch {
	case !inputs.ValidCode(code):
		return Result{}, s.invalid(ctx, "Invalid code", "2d9b6e31-8f4a-4c7d-b5e2-9a1f3c6d8e47")
	case !known || !plan.IsPaid(target):
		return Result{}, s.invalid(ctx, "Invalid plan", "6a4f1c8e-3b7d-4e2a-9c5f-1d8b4e7a3c62")
	case !inputs.ValidTransactionID(trxID):
		return Result{}, s.invalid(ctx, "Invalid TrxID (use 9-12 letters/numbers)", "b3e7a2d9-5c1f-4b8e-a6d4-2f9c7e1b5a38")
	case !inputs.ValidSenderSuffix(suffix):
		return Result{}, s.invalid(ctx, "Sender last 3 digits must be 3 numbers", "e8c5b1f4-7a2d-4f6c-8e3b-5d1a9c4f7e26")
	}

	span.SetAttributes(attribute.String("unlock.code", code), attribute.String("unlock.plan", string(target)))
	log := s.log.With().
		Str("code", code).
		Str("plan", string(target)).
		Str("client", s.hasher.IP(clientIP)).
		Str("trx", s.hasher.TransactionID(trxID)).
		Logger()

	decision, err := s.limiter.CheckAndRecord(ctx, ratelimit.Key(clientIP, code))
	if err != nil {
		log.Error().Err(err).Msg("rate limiter unavailable")
		return Result{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "Rate limit update failed", err, "4f1d8a6c-2e9b-4a7f-b3c5-8e6d1f4a9b73")
	}
	if !decision.Allowed {
		log.Warn().Int("attempts", decision.Attempts).Msg("unlock attempt rate limited")
		return Result{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeRateLimited, "Too many attempts. Try again later.", nil, "9e2c5f8b-1d4a-4c6e-a7b3-4f9d2e5c8a14")
	}

	amount, _ := plan.Amount(target)
	entry := &Request{
		TransactionID: trxID,
		Code:          code,
		Plan:          target,
		Amount:        amount,
		SenderSuffix:  suffix,
		ClientIP:      clientIP,
		UserAgent:     sub.UserAgent,
	}

	claim := func(ctx context.Context) error {
		p, err := s.pages.FindByCode(ctx, code)
		if err != nil {
			if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
				return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "Code not found", nil, "1b6e9d3f-4a8c-4e2b-9f5d-7c3a1e8b6d45")
			}
			return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "Server error", err, "7c3a9f2e-5b1d-4f8a-a4e6-3d7b9c2f5e81")
		}

		current := plan.Normalize(string(p.Plan))
		if plan.IsPaid(current) {
			log.Info().Str("current_plan", string(current)).Msg("page already unlocked")
			result = Result{OK: true, Plan: current, Already: true}
			return nil
		}

		used, err := s.ledger.IsUsed(ctx, trxID)
		if err != nil {
			return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "Server error", err, "3e8b5d1a-9f2c-4a6e-b7d4-1c5f8a3e9b62")
		}
		if used {
			log.Warn().Msg("transaction id reused")
			return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict, "This TrxID already used", nil, "5a2f7c9e-3d6b-4e1a-8c4f-9b2e5d7a1c38")
		}

		if err := s.record(ctx, entry); err != nil {
			if platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) {
				log.Warn().Msg("transaction id claimed concurrently")
			} else {
				log.Error().Err(err).Msg("unlock failed")
			}
			return err
		}
		if err := s.promote(ctx, code, target); err != nil {
			log.Error().Err(err).Bool("atomic", s.opts.Atomic).Msg("unlock failed")
			return err
		}
		log.Info().Str("amount", amount.StringFixed(2)).Msg("page unlocked")
		result = Result{OK: true, Plan: target}
		return nil
	}

	// In atomic mode the page row stays locked from the plan check until the promotion commits.
	if s.opts.Atomic {
		err = s.tx.Transaction(ctx, claim)
	} else {
		err = claim(ctx)
	}
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

func (s *service) record(ctx context.Context, entry *Request) error {
	if err := s.ledger.Record(ctx, entry); err != nil {
		if errors.Is(err, ErrTransactionUsed) {
			return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict, "TrxID already used", err, "8d4b1e7f-6c3a-4f9d-a2e5-7b1c4f8d3e96")
		}
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "Server error", err, "c9f3a6d2-1e8b-4c5a-9d7f-2a6e3c9f1b54")
	}
	return nil
}

func (s *service) promote(ctx context.Context, code string, target plan.Plan) error {
	if err := s.pages.SetPlan(ctx, code, target); err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "Unlock failed", err, "f2a8d5c1-7b4e-4a3f-8c6d-5e2b9f1a4d87")
	}
	return nil
}

func (s *service) invalid(ctx context.Context, message string, uuid string) error {
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, message, nil, uuid)
}

func (s *service) finish(span trace.Span, result Result, err error) {
	defer span.End()

	outcome := outcomeOf(result, err)
	span.SetAttributes(attribute.String("unlock.outcome", outcome))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.recorder.UnlockAttempt(outcome)
}

func outcomeOf(result Result, err error) string {
	if err == nil {
		if result.Already {
			return OutcomeAlready
		}
		return OutcomeUnlocked
	}

	var platformErr *platformerrors.PlatformError
	if !errors.As(err, &platformErr) {
		return OutcomeError
	}
	switch platformErr.Type {
	case platformerrors.ErrorTypeValidation:
		return OutcomeInvalid
	case platformerrors.ErrorTypeRateLimited:
		return OutcomeRateLimited
	case platformerrors.ErrorTypeNotFound:
		return OutcomeNotFound
	case platformerrors.ErrorTypeConflict:
		return OutcomeConflict
	default:
		return OutcomeError
	}
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Request, error) {
	filter.Code = inputs.NormalizeCode(filter.Code)
	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Limit > MaxListLimit {
		filter.Limit = MaxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	items, err := s.ledger.List(ctx, filter)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "list unlock requests")
	}
	return items, nil
}

func (s *service) Reconcile(ctx context.Context) (ReconcileReport, error) {
	report := ReconcileReport{Promoted: []string{}}
	seen := make(map[string]struct{})
	// newest first, so the first row seen for a code is its latest claim
	for offset := 0; ; offset += reconcileBatchSize {
		items, err := s.ledger.List(ctx, Filter{Limit: reconcileBatchSize, Offset: offset})
		if err != nil {
			return report, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "list unlock requests")
		}
		for _, item := range items {
			if _, ok := seen[item.Code]; ok {
				continue
			}
			seen[item.Code] = struct{}{}
			report.Checked++

			promoted, err := s.reconcileEntry(ctx, item)
			if err != nil {
				return report, err
			}
			if promoted {
				report.Promoted = append(report.Promoted, item.Code)
			}
		}
		if len(items) < reconcileBatchSize {
			break
		}
	}

	if len(report.Promoted) > 0 {
		s.log.Warn().Strs("codes", report.Promoted).Msg("reconciled pages with recorded unlocks")
	}
	return report, nil
}

func (s *service) ReconcileCode(ctx context.Context, code string) (bool, error) {
	code = inputs.NormalizeCode(code)
	entry, err := s.ledger.LatestForCode(ctx, code)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return false, nil
		}
		return false, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "read latest unlock request")
	}
	return s.reconcileEntry(ctx, entry)
}

// reconcileEntry promotes only when entry is newer than the page's last plan change. An older claim
// was either applied already or superseded by an admin override.
func (s *service) reconcileEntry(ctx context.Context, entry *Request) (promoted bool, err error) {
	apply := func(ctx context.Context) error {
		p, err := s.pages.FindByCode(ctx, entry.Code)
		if err != nil {
			if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
				return nil
			}
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "load page for reconcile")
		}
		if plan.IsPaid(plan.Normalize(string(p.Plan))) {
			return nil
		}
		if p.PlanChangedAt != nil && !entry.CreatedAt.After(*p.PlanChangedAt) {
			return nil
		}
		if err := s.pages.SetPlan(ctx, entry.Code, entry.Plan); err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "promote page during reconcile")
		}
		promoted = true
		return nil
	}

	if s.tx == nil {
		err = apply(ctx)
	} else {
		err = s.tx.Transaction(ctx, apply)
	}
	if err != nil {
		return false, err
	}
	return promoted, nil
}
