package memory

import "time"

// DateLayout is the wire format of memory dates.
const DateLayout = "2006-01-02"

// MaxTitleLength bounds memory titles.
const MaxTitleLength = 200

// Memory is a dated entry on a page timeline.
type Memory struct {
	ID         string
	PageID     string
	MemoryDate time.Time
	Title      string
	Note       *string
	PhotoURL   *string
	CreatedAt  time.Time
}

type AddInput struct {
	MemoryDate string
	Title      string
	Note       *string
	PhotoURL   *string
}
