package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	RateLimitBackendSQL   = "sql"
	RateLimitBackendRedis = "redis"

	StorageBackendLocal = "local"
	StorageBackendS3    = "s3"
)

// Config holds the environment driven configuration for the love unlock service.
type Config struct {
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"love-unlock"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8190"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	EnableTracing   bool          `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	DatabaseURL     string        `env:"DB_POSTGRESQL_WRITE_DSN,required"`
	DatabaseReadURL string        `env:"DB_POSTGRESQL_READ1_DSN"`
	DBMaxIdleConns  int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBMaxOpenConns  int           `env:"DB_MAX_OPEN_CONNS" envDefault:"15"`
	DBConnLifetime  time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	DBAutoMigrate   bool          `env:"DB_AUTO_MIGRATE" envDefault:"true"`

	AuthEnabled   bool   `env:"AUTH_ENABLED" envDefault:"true"`
	AuthIssuer    string `env:"AUTH_ISSUER"`
	AuthAudience  string `env:"AUTH_AUDIENCE"`
	AuthJWKSURL   string `env:"AUTH_JWKS_URL"`
	AuthJWTSecret string `env:"AUTH_JWT_SECRET"`

	AdminKey         string        `env:"ADMIN_KEY"`
	CapabilitySecret string        `env:"CAPABILITY_SECRET"`
	CapabilityTTL    time.Duration `env:"CAPABILITY_TTL" envDefault:"30m"`

	RateLimitBackend     string        `env:"RATE_LIMIT_BACKEND" envDefault:"sql"`
	RateLimitMaxAttempts int           `env:"RATE_LIMIT_MAX_ATTEMPTS" envDefault:"2"`
	RateLimitWindow      time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"30m"`
	RateLimitRetention   time.Duration `env:"RATE_LIMIT_RETENTION" envDefault:"24h"`
	RedisURL             string        `env:"REDIS_URL"`

	UnlockAtomic  bool          `env:"UNLOCK_ATOMIC" envDefault:"true"`
	PageCacheSize int           `env:"PAGE_CACHE_SIZE" envDefault:"512"`
	PageCacheTTL  time.Duration `env:"PAGE_CACHE_TTL" envDefault:"30s"`

	StorageBackend      string `env:"STORAGE_BACKEND" envDefault:"local"`
	StorageLocalPath    string `env:"STORAGE_LOCAL_PATH" envDefault:"./data/uploads"`
	StorageLocalBaseURL string `env:"STORAGE_LOCAL_BASE_URL" envDefault:"http://localhost:8190/uploads"`
	S3Bucket            string `env:"S3_BUCKET"`
	S3Region            string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint          string `env:"S3_ENDPOINT"`
	S3PublicBaseURL     string `env:"S3_PUBLIC_BASE_URL"`
	S3AccessKey         string `env:"S3_ACCESS_KEY_ID"`
	S3SecretKey         string `env:"S3_SECRET_ACCESS_KEY"`
	S3UsePathStyle      bool   `env:"S3_USE_PATH_STYLE" envDefault:"true"`
	MaxUploadBytes      int64  `env:"MAX_UPLOAD_BYTES" envDefault:"8388608"`

	CronEnabled        bool     `env:"CRON_ENABLED" envDefault:"true"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	TrustedProxies     []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// Load parses environment variables into Config.
//
// Configuration Loading Order (highest to lowest priority):
// 1. .env file in the working directory or its parent (if present)
// 2. Environment variables
// 3. Default values from struct tags
func Load() (*Config, error) {
	loadEnvFiles()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.AuthEnabled {
		if strings.TrimSpace(c.AuthJWKSURL) == "" && strings.TrimSpace(c.AuthJWTSecret) == "" {
			return fmt.Errorf("AUTH_JWKS_URL or AUTH_JWT_SECRET is required when AUTH_ENABLED is true")
		}
	}

	if strings.TrimSpace(c.CapabilitySecret) == "" {
		return fmt.Errorf("CAPABILITY_SECRET is required")
	}
	if c.CapabilityTTL <= 0 {
		return fmt.Errorf("CAPABILITY_TTL must be positive")
	}

	switch c.RateLimitBackend {
	case RateLimitBackendSQL:
	case RateLimitBackendRedis:
		if strings.TrimSpace(c.RedisURL) == "" {
			return fmt.Errorf("REDIS_URL is required when RATE_LIMIT_BACKEND is redis")
		}
	default:
		return fmt.Errorf("unsupported RATE_LIMIT_BACKEND %q", c.RateLimitBackend)
	}
	if c.RateLimitMaxAttempts <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX_ATTEMPTS must be positive")
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}

	switch c.StorageBackend {
	case StorageBackendLocal:
	case StorageBackendS3:
		if strings.TrimSpace(c.S3Bucket) == "" {
			return fmt.Errorf("S3_BUCKET is required when STORAGE_BACKEND is s3")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND %q", c.StorageBackend)
	}

	return nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// IsLocalStorage reports whether uploads are written to the local filesystem.
func (c *Config) IsLocalStorage() bool {
	return c.StorageBackend == StorageBackendLocal
}

// UsesRedis reports whether a Redis connection is configured.
func (c *Config) UsesRedis() bool {
	return strings.TrimSpace(c.RedisURL) != ""
}

func loadEnvFiles() {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Overload(path)
		}
	}
}
