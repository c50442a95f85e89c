package requests

import (
	"encoding/json"

	"love-unlock/internal/domain/memory"
	"love-unlock/internal/domain/template"
)

type AddMemoryRequest struct {
	EditSecret string  `json:"edit_secret"`
	MemoryDate string  `json:"memory_date" binding:"required"`
	Title      string  `json:"title" binding:"required"`
	Note       *string `json:"note"`
	PhotoURL   *string `json:"photo_url" binding:"omitempty,url"`
}

func (r AddMemoryRequest) Input() memory.AddInput {
	return memory.AddInput{
		MemoryDate: r.MemoryDate,
		Title:      r.Title,
		Note:       r.Note,
		PhotoURL:   r.PhotoURL,
	}
}

type SaveTemplateRequest struct {
	EditSecret   string          `json:"edit_secret"`
	ImageDataURL string          `json:"image_data_url" binding:"required"`
	PhotoURL     *string         `json:"photo_url"`
	Meta         json.RawMessage `json:"meta" swaggertype:"object"`
}

func (r SaveTemplateRequest) Input() template.SaveInput {
	return template.SaveInput{
		ImageDataURL: r.ImageDataURL,
		PhotoURL:     r.PhotoURL,
		Meta:         r.Meta,
	}
}
