package entities

import "time"

// Page is the persisted love page row.
type Page struct {
	ID                 string     `gorm:"type:uuid;primaryKey"`
	Code               string     `gorm:"size:32;not null;uniqueIndex:idx_love_pages_code"`
	OwnerID            string     `gorm:"size:128;not null;index:idx_love_pages_owner_id"`
	DisplayName        string     `gorm:"type:text;not null"`
	Subtitle           *string    `gorm:"type:text"`
	Message            string     `gorm:"type:text;not null"`
	PinHash            string     `gorm:"type:text;not null"`
	Plan               string     `gorm:"size:16;not null"`
	PlanChangedAt      *time.Time `gorm:"column:plan_changed_at"`
	StealthEnabled     bool       `gorm:"not null"`
	RevealAt           *time.Time `gorm:"column:reveal_at"`
	Watermark          bool       `gorm:"not null"`
	EditSecret         string     `gorm:"size:64;not null"`
	Views              int64      `gorm:"not null"`
	FirstOpenedAt      *time.Time `gorm:"column:first_opened_at"`
	LastOpenedAt       *time.Time `gorm:"column:last_opened_at"`
	PartnerChoice      *string    `gorm:"size:8"`
	PartnerRespondedAt *time.Time `gorm:"column:partner_responded_at"`
	CreatedAt          time.Time  `gorm:"autoCreateTime"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime"`
}

func (Page) TableName() string {
	return "love_pages"
}
