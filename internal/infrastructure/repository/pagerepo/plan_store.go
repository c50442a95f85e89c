package pagerepo

import (
	"context"

	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"

	"love-unlock/internal/domain/page"
	"love-unlock/internal/domain/plan"
	"love-unlock/internal/domain/unlock"
	"love-unlock/internal/infrastructure/database/entities"
	"love-unlock/internal/infrastructure/database/transaction"
	"love-unlock/internal/utils/platformerrors"
)

// PlanStore backs the unlock flow. Reads skip the page cache and take a row lock on the primary
// for the surrounding transaction, so concurrent unlocks of one page serialize on it.
type PlanStore struct {
	db    *transaction.Database
	pages *PageGormRepository
	cache Cache
}

var _ unlock.PlanStore = (*PlanStore)(nil)

func NewPlanStore(db *transaction.Database, cache Cache) *PlanStore {
	return &PlanStore{db: db, pages: NewPageGormRepository(db), cache: cache}
}

func (s *PlanStore) FindByCode(ctx context.Context, code string) (*page.Page, error) {
	var model entities.Page
	err := s.db.GetTx(ctx).
		Clauses(dbresolver.Write, clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("code = ?", code).
		Take(&model).Error
	if err != nil {
		return nil, platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerRepository, err, "Not found", "ed8f0821-361e-4712-a41d-d2052aa89b11")
	}
	return toDomain(&model), nil
}

// SetPlan drops the cached page once the write is committed.
func (s *PlanStore) SetPlan(ctx context.Context, code string, p plan.Plan) error {
	if err := s.pages.SetPlan(ctx, code, p); err != nil {
		return err
	}
	s.cache.Remove(code)
	transaction.AfterCommit(ctx, func() { s.cache.Remove(code) })
	return nil
}
