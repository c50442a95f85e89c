package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"love-unlock/internal/domain/ratelimit"
)

// RedisClient bundles a universal client with a redsync pool over it.
type RedisClient struct {
	client redis.UniversalClient
	rs     *redsync.Redsync
	log    zerolog.Logger
}

func NewRedisClient(ctx context.Context, redisURL string, log zerolog.Logger) (*RedisClient, error) {
	if redisURL == "" {
		return nil, fmt.Errorf("Redis URL must be provided")
	}

	opts, err := buildUniversalOptions(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	log = log.With().Str("component", "redis").Logger()
	if len(opts.Addrs) > 1 && opts.DB != 0 {
		log.Warn().Msg("Ignoring non-zero DB when using Redis Cluster configuration")
		opts.DB = 0
	}

	client := redis.NewUniversalClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info().Int("addrs", len(opts.Addrs)).Msg("connected to redis")
	return &RedisClient{
		client: client,
		rs:     redsync.New(goredis.NewPool(client)),
		log:    log,
	}, nil
}

// buildUniversalOptions accepts a comma separated list of redis:// URLs or bare host:port addresses.
func buildUniversalOptions(raw string) (*redis.UniversalOptions, error) {
	opts := &redis.UniversalOptions{}

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !strings.Contains(part, "://") {
			opts.Addrs = append(opts.Addrs, part)
			continue
		}

		parsed, err := redis.ParseURL(part)
		if err != nil {
			return nil, err
		}
		opts.Addrs = append(opts.Addrs, parsed.Addr)
		if opts.Username == "" {
			opts.Username = parsed.Username
		}
		if opts.Password == "" {
			opts.Password = parsed.Password
		}
		if opts.DB == 0 {
			opts.DB = parsed.DB
		}
		if opts.TLSConfig == nil {
			opts.TLSConfig = parsed.TLSConfig
		}
		if opts.DialTimeout == 0 {
			opts.DialTimeout = parsed.DialTimeout
		}
		if opts.PoolSize == 0 {
			opts.PoolSize = parsed.PoolSize
		}
	}

	if len(opts.Addrs) == 0 {
		return nil, fmt.Errorf("no Redis addresses provided")
	}
	return opts, nil
}

func (r *RedisClient) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

// WithLock runs fn while holding the named distributed lock. It returns redsync.ErrFailed
// when another holder has the lock.
func (r *RedisClient) WithLock(ctx context.Context, name string, ttl time.Duration, fn func(ctx context.Context) error) error {
	mutex := r.rs.NewMutex(name, redsync.WithExpiry(ttl), redsync.WithTries(1))
	if err := mutex.LockContext(ctx); err != nil {
		return err
	}
	defer func() {
		if _, err := mutex.UnlockContext(context.WithoutCancel(ctx)); err != nil {
			r.log.Error().Err(err).Str("lock", name).Msg("failed to unlock mutex")
		}
	}()
	return fn(ctx)
}

// hitScript increments the counter and starts its expiry on first use, so the window
// is fixed from the first attempt.
var hitScript = redis.NewScript(`
local c = redis.call('INCR', KEYS[1])
if c == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return c
`)

// RedisLimiterStore keeps attempt counters in Redis with key expiry as the window.
type RedisLimiterStore struct {
	client redis.UniversalClient
	prefix string
}

var _ ratelimit.Store = (*RedisLimiterStore)(nil)

func NewRedisLimiterStore(r *RedisClient) *RedisLimiterStore {
	return &RedisLimiterStore{client: r.client, prefix: "love-unlock:rl:"}
}

func (s *RedisLimiterStore) Hit(ctx context.Context, key string, _ time.Time, policy ratelimit.Policy) (ratelimit.Hit, error) {
	count, err := hitScript.Run(ctx, s.client, []string{s.prefix + key}, policy.Window.Milliseconds()).Int()
	if err != nil {
		return ratelimit.Hit{}, fmt.Errorf("redis rate limit hit: %w", err)
	}
	return ratelimit.Hit{Allowed: count <= policy.MaxAttempts, Attempts: count}, nil
}

// PurgeBefore is a no-op: counters expire on their own.
func (s *RedisLimiterStore) PurgeBefore(context.Context, time.Time) (int64, error) {
	return 0, nil
}
