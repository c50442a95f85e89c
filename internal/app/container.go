// Package app assembles repositories, services and backing clients from configuration.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"love-unlock/internal/config"
	"love-unlock/internal/domain/memory"
	"love-unlock/internal/domain/page"
	"love-unlock/internal/domain/ratelimit"
	"love-unlock/internal/domain/template"
	"love-unlock/internal/domain/unlock"
	"love-unlock/internal/infrastructure/cache"
	"love-unlock/internal/infrastructure/capability"
	"love-unlock/internal/infrastructure/crontab"
	"love-unlock/internal/infrastructure/database"
	"love-unlock/internal/infrastructure/database/transaction"
	"love-unlock/internal/infrastructure/metrics"
	"love-unlock/internal/infrastructure/repository/memoryrepo"
	"love-unlock/internal/infrastructure/repository/pagerepo"
	"love-unlock/internal/infrastructure/repository/ratelimitrepo"
	"love-unlock/internal/infrastructure/repository/templaterepo"
	"love-unlock/internal/infrastructure/repository/unlockrepo"
	"love-unlock/internal/infrastructure/storage"
	"love-unlock/internal/utils/redact"
)

// Container holds every long-lived dependency of the service and the CLI.
type Container struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *cache.RedisClient

	Limiter   ratelimit.Limiter
	Pages     page.Service
	Unlocks   unlock.Service
	Memories  memory.Service
	Templates template.Service

	log zerolog.Logger
}

// NewDatabaseConfig maps service configuration onto the database package.
func NewDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DSN:             cfg.DatabaseURL,
		ReadDSN:         cfg.DatabaseReadURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	}
}

// New connects to the database (and Redis when configured) and builds the services.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Container, error) {
	db, err := database.Connect(NewDatabaseConfig(cfg))
	if err != nil {
		return nil, err
	}

	if cfg.DBAutoMigrate {
		if err := database.Migrate(ctx, db, database.Up, log); err != nil {
			_ = database.Close(db)
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	var redisClient *cache.RedisClient
	if cfg.UsesRedis() {
		redisClient, err = cache.NewRedisClient(ctx, cfg.RedisURL, log)
		if err != nil {
			_ = database.Close(db)
			return nil, fmt.Errorf("connect redis: %w", err)
		}
	}

	c, err := Build(ctx, cfg, db, redisClient, log)
	if err != nil {
		_ = database.Close(db)
		if redisClient != nil {
			_ = redisClient.Close()
		}
		return nil, err
	}
	return c, nil
}

// Provide is New plus the cleanup that closes the container, the shape wire injectors expect.
func Provide(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Container, func(), error) {
	c, err := New(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return c, c.cleanup, nil
}

// Build wires services over an already open database.
func Build(ctx context.Context, cfg *config.Config, db *gorm.DB, redisClient *cache.RedisClient, log zerolog.Logger) (*Container, error) {
	txDB := transaction.NewDatabase(db)

	pageCache, err := cache.NewPageCache(cfg.PageCacheSize, cfg.PageCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("page cache: %w", err)
	}
	pageRepo := pagerepo.NewCachedRepository(pagerepo.NewPageGormRepository(txDB), pageCache)

	issuer, err := capability.NewIssuer(cfg.CapabilitySecret, cfg.CapabilityTTL)
	if err != nil {
		return nil, err
	}

	limiterStore, err := newLimiterStore(cfg, txDB, redisClient)
	if err != nil {
		return nil, err
	}
	limiter := ratelimit.NewLimiter(limiterStore, ratelimit.Policy{
		MaxAttempts: cfg.RateLimitMaxAttempts,
		Window:      cfg.RateLimitWindow,
	}, log)

	objects, err := NewStorage(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("initialize storage: %w", err)
	}

	pages := page.NewService(pageRepo, issuer, log)
	unlocks := unlock.NewService(
		limiter,
		unlockrepo.NewLedgerGormRepository(txDB),
		pagerepo.NewPlanStore(txDB, pageCache),
		txDB,
		metrics.NewUnlockRecorder(),
		redact.NewHasher(cfg.CapabilitySecret),
		unlock.Options{Atomic: cfg.UnlockAtomic},
		log,
	)

	return &Container{
		Config:    cfg,
		DB:        db,
		Redis:     redisClient,
		Limiter:   limiter,
		Pages:     pages,
		Unlocks:   unlocks,
		Memories:  memory.NewService(pages, memoryrepo.NewMemoryGormRepository(txDB), txDB, log),
		Templates: template.NewService(pages, templaterepo.NewTemplateGormRepository(txDB), objects, cfg.MaxUploadBytes, log),
		log:       log,
	}, nil
}

func newLimiterStore(cfg *config.Config, db *transaction.Database, redisClient *cache.RedisClient) (ratelimit.Store, error) {
	if cfg.RateLimitBackend == config.RateLimitBackendRedis {
		if redisClient == nil {
			return nil, errors.New("redis rate limit backend selected without a redis connection")
		}
		return cache.NewRedisLimiterStore(redisClient), nil
	}
	return ratelimitrepo.NewRateLimitGormRepository(db), nil
}

// NewStorage picks the upload backend.
func NewStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (template.Storage, error) {
	if cfg.IsLocalStorage() {
		return storage.NewLocalStorage(cfg.StorageLocalPath, cfg.StorageLocalBaseURL, log)
	}
	return storage.NewS3Storage(ctx, cfg, log)
}

// Crontab returns the maintenance scheduler. Jobs are serialised through Redis when it is configured.
// Atomic unlocks never strand a ledger entry, so reconciliation is left off the schedule.
func (c *Container) Crontab() *crontab.Crontab {
	var locker crontab.Locker
	if c.Redis != nil {
		locker = c.Redis
	}
	jobs := crontab.NewCrontab(c.Limiter, c.Unlocks, c.Config.RateLimitRetention, locker, c.log)
	if c.Config.UnlockAtomic {
		jobs.SkipReconcile()
	}
	return jobs
}

// Ready pings the database and Redis.
func (c *Container) Ready(ctx context.Context) error {
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return err
	}
	if c.Redis != nil {
		return c.Redis.HealthCheck(ctx)
	}
	return nil
}

func (c *Container) cleanup() {
	if err := c.Close(); err != nil {
		c.log.Error().Err(err).Msg("close container")
	}
}

func (c *Container) Close() error {
	var errs []error
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	errs = append(errs, database.Close(c.DB))
	return errors.Join(errs...)
}
