package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnlockRequest is one consumed payment transaction id.
type UnlockRequest struct {
	ID          string          `gorm:"type:uuid;primaryKey"`
	TrxID       string          `gorm:"column:trx_id;size:32;not null;uniqueIndex:idx_unlock_requests_trx_id"`
	Code        string          `gorm:"size:32;not null;index:idx_unlock_requests_code"`
	Plan        string          `gorm:"size:16;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	SenderLast3 string          `gorm:"column:sender_last3;size:3;not null"`
	UserIP      string          `gorm:"column:user_ip;size:64;not null"`
	UserAgent   string          `gorm:"type:text;not null"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
}

func (UnlockRequest) TableName() string {
	return "unlock_requests"
}

// RateLimit is an attempt counter keyed by client address and page code.
type RateLimit struct {
	LimitKey      string    `gorm:"column:limit_key;size:255;primaryKey"`
	WindowStartMs int64     `gorm:"column:window_start_ms;not null;index"`
	Attempts      int       `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (RateLimit) TableName() string {
	return "unlock_rate_limits"
}
