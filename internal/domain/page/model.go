package page

import (
	"time"

	"love-unlock/internal/domain/plan"
)

// MinPINLength is the shortest PIN accepted when creating a page.
const MinPINLength = 4

// Partner choices recorded by Respond.
const (
	ChoiceYes = "YES"
	ChoiceNo  = "NO"
)

// Page is a proposal page with its owner-only fields. PlanChangedAt is the last time the plan was
// written by a promotion or an admin override, nil before either happened.
type Page struct {
	ID                 string
	Code               string
	OwnerID            string
	DisplayName        string
	Subtitle           *string
	Message            string
	PinHash            string
	Plan               plan.Plan
	PlanChangedAt      *time.Time
	StealthEnabled     bool
	RevealAt           *time.Time
	Watermark          bool
	EditSecret         string
	Views              int64
	FirstOpenedAt      *time.Time
	LastOpenedAt       *time.Time
	PartnerChoice      *string
	PartnerRespondedAt *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Public is the read model served to visitors. It never carries the PIN hash or edit secret.
type Public struct {
	Code               string         `json:"code"`
	DisplayName        string         `json:"display_name"`
	Subtitle           *string        `json:"subtitle"`
	Message            *string        `json:"message"`
	Plan               plan.Plan      `json:"plan"`
	Features           []plan.Feature `json:"features"`
	StealthEnabled     bool           `json:"stealth_enabled"`
	Locked             bool           `json:"locked"`
	RevealAt           *time.Time     `json:"reveal_at"`
	SealedUntil        *time.Time     `json:"sealed_until,omitempty"`
	Watermark          bool           `json:"watermark"`
	Views              int64          `json:"views"`
	PartnerChoice      *string        `json:"partner_choice"`
	PartnerRespondedAt *time.Time     `json:"partner_responded_at"`
	CreatedAt          time.Time      `json:"created_at"`
}

// Summary is one row of the owner dashboard.
type Summary struct {
	Code           string     `json:"code"`
	DisplayName    string     `json:"display_name"`
	Plan           plan.Plan  `json:"plan"`
	StealthEnabled bool       `json:"stealth_enabled"`
	RevealAt       *time.Time `json:"reveal_at"`
	Views          int64      `json:"views"`
	PartnerChoice  *string    `json:"partner_choice"`
	LastOpenedAt   *time.Time `json:"last_opened_at"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ViewStats is returned after a view is recorded.
type ViewStats struct {
	Views         int64      `json:"views"`
	FirstOpenedAt *time.Time `json:"first_opened_at"`
	LastOpenedAt  *time.Time `json:"last_opened_at"`
}

type CreateInput struct {
	DisplayName string
	Subtitle    string
	Message     string
	PIN         string
	RevealAt    *time.Time
}

// Created carries the generated code and the one-time edit secret.
type Created struct {
	Code       string `json:"code"`
	EditSecret string `json:"edit_secret"`
}

// SettingsUpdate patches owner-editable settings. Nil fields are left untouched;
// ClearRevealAt removes the reveal time.
type SettingsUpdate struct {
	StealthEnabled *bool
	RevealAt       *time.Time
	ClearRevealAt  bool
}

func (u SettingsUpdate) Empty() bool {
	return u.StealthEnabled == nil && u.RevealAt == nil && !u.ClearRevealAt
}

// Capability is a short-lived grant to read a stealth page's message.
type Capability struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (p *Page) Summary() Summary {
	return Summary{
		Code:           p.Code,
		DisplayName:    p.DisplayName,
		Plan:           plan.Normalize(string(p.Plan)),
		StealthEnabled: p.StealthEnabled,
		RevealAt:       p.RevealAt,
		Views:          p.Views,
		PartnerChoice:  p.PartnerChoice,
		LastOpenedAt:   p.LastOpenedAt,
		CreatedAt:      p.CreatedAt,
	}
}
