package requests

import (
	"strings"
	"time"

	"love-unlock/internal/domain/page"
)

type CreatePageRequest struct {
	DisplayName string  `json:"display_name" binding:"max=120"`
	Subtitle    string  `json:"subtitle" binding:"max=200"`
	Message     string  `json:"message" binding:"max=5000"`
	PIN         string  `json:"pin" binding:"max=64"`
	RevealAt    *string `json:"reveal_at"`
}

// Input converts the request. A blank reveal_at means no reveal time.
func (r CreatePageRequest) Input() (page.CreateInput, error) {
	in := page.CreateInput{
		DisplayName: r.DisplayName,
		Subtitle:    r.Subtitle,
		Message:     r.Message,
		PIN:         r.PIN,
	}
	at, _, err := parseRevealAt(r.RevealAt)
	if err != nil {
		return page.CreateInput{}, err
	}
	in.RevealAt = at
	return in, nil
}

// UpdateSettingsRequest patches stealth and reveal settings. An empty reveal_at string clears it.
type UpdateSettingsRequest struct {
	EditSecret     string  `json:"edit_secret"`
	StealthEnabled *bool   `json:"stealth_enabled"`
	RevealAt       *string `json:"reveal_at"`
}

func (r UpdateSettingsRequest) Update() (page.SettingsUpdate, error) {
	at, clear, err := parseRevealAt(r.RevealAt)
	if err != nil {
		return page.SettingsUpdate{}, err
	}
	return page.SettingsUpdate{
		StealthEnabled: r.StealthEnabled,
		RevealAt:       at,
		ClearRevealAt:  clear,
	}, nil
}

type VerifyPINRequest struct {
	PIN string `json:"pin" binding:"max=64"`
}

type RespondRequest struct {
	Choice string `json:"choice" binding:"required,choice"`
}

func parseRevealAt(raw *string) (*time.Time, bool, error) {
	if raw == nil {
		return nil, false, nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil, true, nil
	}
	at, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return nil, false, err
	}
	at = at.UTC()
	return &at, false, nil
}
