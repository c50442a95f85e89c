package entities

import (
	"time"

	"gorm.io/datatypes"
)

type Memory struct {
	ID         string    `gorm:"type:uuid;primaryKey"`
	PageID     string    `gorm:"type:uuid;not null;index:idx_memories_page_id"`
	MemoryDate time.Time `gorm:"type:date;not null"`
	Title      string    `gorm:"size:200;not null"`
	Note       *string   `gorm:"type:text"`
	PhotoURL   *string   `gorm:"column:photo_url;type:text"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (Memory) TableName() string {
	return "memories"
}

type Template struct {
	ID        string         `gorm:"type:uuid;primaryKey"`
	PageID    string         `gorm:"type:uuid;not null;index:idx_love_templates_page_id"`
	Code      string         `gorm:"size:32;not null"`
	ImageURL  string         `gorm:"column:image_url;type:text;not null"`
	PhotoURL  *string        `gorm:"column:photo_url;type:text"`
	Meta      datatypes.JSON `gorm:"column:meta"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (Template) TableName() string {
	return "love_templates"
}

// All lists every entity in dependency order.
func All() []any {
	return []any{&Page{}, &RateLimit{}, &UnlockRequest{}, &Memory{}, &Template{}}
}
