package template

import (
	"context"
	"encoding/json"
	"io"
	"time"
)

// PNGDataURLPrefix is the only data URL form accepted for rendered templates.
const PNGDataURLPrefix = "data:image/png;base64,"

// Template is a rendered card saved for a page.
type Template struct {
	ID        string          `json:"id"`
	PageID    string          `json:"-"`
	Code      string          `json:"code"`
	ImageURL  string          `json:"image_url"`
	PhotoURL  *string         `json:"photo_url"`
	Meta      json.RawMessage `json:"meta,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type SaveInput struct {
	ImageDataURL string
	PhotoURL     *string
	Meta         json.RawMessage
}

type Repository interface {
	Create(ctx context.Context, t *Template) error
	// ListByPage returns templates newest first.
	ListByPage(ctx context.Context, pageID string) ([]*Template, error)
}

// Storage writes objects and resolves their public URL.
type Storage interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PublicURL(key string) string
}
