package responses

import (
	"encoding/json"
	"time"

	"love-unlock/internal/domain/memory"
	"love-unlock/internal/domain/page"
	"love-unlock/internal/domain/plan"
	"love-unlock/internal/domain/template"
	"love-unlock/internal/domain/unlock"
)

type OKResponse struct {
	OK bool `json:"ok"`
}

type PageListResponse struct {
	Items []page.Summary `json:"items"`
}

type PINResponse struct {
	OK        bool       `json:"ok"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type ViewResponse struct {
	OK bool `json:"ok"`
	page.ViewStats
}

type PlanOverrideResponse struct {
	OK   bool      `json:"ok"`
	Plan plan.Plan `json:"plan"`
}

type PlansResponse struct {
	Items []plan.Descriptor `json:"items"`
}

type LedgerListResponse struct {
	Items []*unlock.Request `json:"items"`
}

type MemoryResponse struct {
	ID         string    `json:"id"`
	MemoryDate string    `json:"memory_date"`
	Title      string    `json:"title"`
	Note       *string   `json:"note"`
	PhotoURL   *string   `json:"photo_url"`
	CreatedAt  time.Time `json:"created_at"`
}

type MemoryListResponse struct {
	Items []MemoryResponse `json:"items"`
}

type MemoryCreatedResponse struct {
	OK   bool           `json:"ok"`
	Item MemoryResponse `json:"item"`
}

type TemplateListResponse struct {
	Items []*template.Template `json:"items"`
}

type ImageResponse struct {
	OK       bool   `json:"ok"`
	ImageURL string `json:"image_url"`
}

type PhotoResponse struct {
	OK       bool   `json:"ok"`
	PhotoURL string `json:"photo_url"`
}

// JSONPayload documents arbitrary JSON blobs in swagger.
type JSONPayload = json.RawMessage

func NewMemoryResponse(m *memory.Memory) MemoryResponse {
	return MemoryResponse{
		ID:         m.ID,
		MemoryDate: m.MemoryDate.Format(memory.DateLayout),
		Title:      m.Title,
		Note:       m.Note,
		PhotoURL:   m.PhotoURL,
		CreatedAt:  m.CreatedAt,
	}
}

func NewMemoryListResponse(items []*memory.Memory) MemoryListResponse {
	out := MemoryListResponse{Items: make([]MemoryResponse, 0, len(items))}
	for _, m := range items {
		out.Items = append(out.Items, NewMemoryResponse(m))
	}
	return out
}
