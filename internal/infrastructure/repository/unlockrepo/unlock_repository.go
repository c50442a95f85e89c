package unlockrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"love-unlock/internal/domain/plan"
	"love-unlock/internal/domain/unlock"
	"love-unlock/internal/infrastructure/database/entities"
	"love-unlock/internal/infrastructure/database/transaction"
	"love-unlock/internal/utils/platformerrors"
)

// LedgerGormRepository implements unlock.Ledger on the unlock_requests table.
type LedgerGormRepository struct {
	db *transaction.Database
}

var _ unlock.Ledger = (*LedgerGormRepository)(nil)

func NewLedgerGormRepository(db *transaction.Database) *LedgerGormRepository {
	return &LedgerGormRepository{db: db}
}

func (repo *LedgerGormRepository) IsUsed(ctx context.Context, trxID string) (bool, error) {
	var count int64
	if err := repo.db.GetTx(ctx).Model(&entities.UnlockRequest{}).Where("trx_id = ?", trxID).Count(&count).Error; err != nil {
		return false, platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerRepository, err, "failed to check transaction id", "6311cc2f-5f27-4f45-9e46-56eac571fb70")
	}
	return count > 0, nil
}

// Record relies on the unique index on trx_id, not on IsUsed, to reject reuse.
func (repo *LedgerGormRepository) Record(ctx context.Context, r *unlock.Request) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	model := &entities.UnlockRequest{
		ID:          r.ID,
		TrxID:       r.TransactionID,
		Code:        r.Code,
		Plan:        string(r.Plan),
		Amount:      r.Amount,
		SenderLast3: r.SenderSuffix,
		UserIP:      r.ClientIP,
		UserAgent:   r.UserAgent,
	}
	if err := repo.db.GetTx(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", unlock.ErrTransactionUsed, r.TransactionID)
		}
		return platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerRepository, err, "failed to record unlock request", "b9f308ab-75cb-44d7-8637-006ebee9dbcc")
	}
	r.CreatedAt = model.CreatedAt
	return nil
}

func (repo *LedgerGormRepository) List(ctx context.Context, filter unlock.Filter) ([]*unlock.Request, error) {
	db := repo.db.GetTx(ctx).Order("created_at DESC").Order("id DESC")
	if filter.Code != "" {
		db = db.Where("code = ?", filter.Code)
	}
	if filter.Limit > 0 {
		db = db.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		db = db.Offset(filter.Offset)
	}

	var rows []entities.UnlockRequest
	if err := db.Find(&rows).Error; err != nil {
		return nil, platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerRepository, err, "failed to list unlock requests", "ce0b1bc3-b1de-42ab-b9f5-243ccc024028")
	}
	out := make([]*unlock.Request, 0, len(rows))
	for i := range rows {
		out = append(out, toDomain(&rows[i]))
	}
	return out, nil
}

func (repo *LedgerGormRepository) LatestForCode(ctx context.Context, code string) (*unlock.Request, error) {
	var model entities.UnlockRequest
	if err := repo.db.GetTx(ctx).Where("code = ?", code).Order("created_at DESC").Take(&model).Error; err != nil {
		return nil, platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerRepository, err, "no unlock request for code", "59fff5b3-00db-435d-8f92-a97a1fffecc5")
	}
	return toDomain(&model), nil
}

func toDomain(m *entities.UnlockRequest) *unlock.Request {
	return &unlock.Request{
		ID:            m.ID,
		TransactionID: m.TrxID,
		Code:          m.Code,
		Plan:          plan.Plan(m.Plan),
		Amount:        m.Amount,
		SenderSuffix:  m.SenderLast3,
		ClientIP:      m.UserIP,
		UserAgent:     m.UserAgent,
		CreatedAt:     m.CreatedAt,
	}
}
