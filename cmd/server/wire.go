//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"

	"love-unlock/internal/app"
	"love-unlock/internal/config"
	"love-unlock/internal/infrastructure/auth"
	"love-unlock/internal/infrastructure/crontab"
	"love-unlock/internal/interfaces/httpserver"
	"love-unlock/internal/interfaces/httpserver/handlers"
)

var containerSet = wire.NewSet(
	app.Provide,
	wire.FieldsOf(new(*app.Container), "Pages", "Unlocks", "Memories", "Templates"),
	provideReadiness,
	provideCrontab,
)

// InitializeApplication is the Wire equivalent of BuildApplication.
func InitializeApplication(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Application, func(), error) {
	wire.Build(
		containerSet,
		auth.NewValidator,
		handlers.NewProvider,
		httpserver.New,
		NewApplication,
	)
	return nil, nil, nil
}

func provideReadiness(c *app.Container) httpserver.ReadinessCheck {
	return c.Ready
}

func provideCrontab(cfg *config.Config, c *app.Container) *crontab.Crontab {
	if !cfg.CronEnabled {
		return nil
	}
	return c.Crontab()
}

