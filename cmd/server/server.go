package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"love-unlock/internal/app"
	"love-unlock/internal/config"
	"love-unlock/internal/infrastructure/auth"
	"love-unlock/internal/infrastructure/crontab"
	"love-unlock/internal/infrastructure/logger"
	"love-unlock/internal/infrastructure/observability"
	"love-unlock/internal/interfaces/httpserver"
	"love-unlock/internal/interfaces/httpserver/handlers"
)

// @title Love Unlock API
// @version 1.0
// @description Proposal pages with paid plan unlocks, memories and templates.
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
type Application struct {
	httpServer *httpserver.HttpServer
	crontab    *crontab.Crontab
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, crontab *crontab.Crontab, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		crontab:    crontab,
		log:        log,
	}
}

// Start runs the HTTP server and, when enabled, the maintenance crontab until ctx ends or one fails.
func (a *Application) Start(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return a.httpServer.Run(ctx)
	})
	if a.crontab != nil {
		eg.Go(func() error {
			return a.crontab.Run(ctx)
		})
	}
	return eg.Wait()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	application, cleanup, err := BuildApplication(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("build application")
	}
	defer cleanup()

	if err := application.Start(ctx); err != nil {
		log.Error().Err(err).Msg("application stopped with error")
		return
	}

	log.Info().Msg("application exited cleanly")
}

// BuildApplication wires the container, the auth validator and the HTTP server.
func BuildApplication(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Application, func(), error) {
	container, cleanup, err := app.Provide(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	validator, err := auth.NewValidator(ctx, cfg, log)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	provider := handlers.NewProvider(cfg, container.Pages, container.Unlocks, container.Memories, container.Templates, log)
	server := httpserver.New(cfg, log, provider, validator, container.Ready)

	var ctab *crontab.Crontab
	if cfg.CronEnabled {
		ctab = container.Crontab()
	}
	return NewApplication(server, ctab, log), cleanup, nil
}
