package handlers

import (
	"github.com/rs/zerolog"

	"love-unlock/internal/config"
	"love-unlock/internal/domain/memory"
	"love-unlock/internal/domain/page"
	"love-unlock/internal/domain/template"
	"love-unlock/internal/domain/unlock"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Page     *PageHandler
	Unlock   *UnlockHandler
	Admin    *AdminHandler
	Plan     *PlanHandler
	Memory   *MemoryHandler
	Template *TemplateHandler
}

func NewProvider(
	cfg *config.Config,
	pages page.Service,
	unlocks unlock.Service,
	memories memory.Service,
	templates template.Service,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		Page:     NewPageHandler(pages, log),
		Unlock:   NewUnlockHandler(unlocks),
		Admin:    NewAdminHandler(pages, unlocks, log),
		Plan:     NewPlanHandler(),
		Memory:   NewMemoryHandler(memories),
		Template: NewTemplateHandler(templates, cfg.MaxUploadBytes, log),
	}
}
