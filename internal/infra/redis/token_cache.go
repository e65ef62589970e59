// Package redis provides a read-through cache in front of the token
// metadata store.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/walletlabs/zscore/internal/core/domain"
	"github.com/walletlabs/zscore/internal/infra/storage"
)

// Config holds Redis connection configuration.
type Config struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	TokenTTL time.Duration `yaml:"-"`
}

// UnmarshalYAML accepts the TTL as a duration string ("10m").
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw struct {
		URL      string `yaml:"url"`
		Password string `yaml:"password"`
		TokenTTL string `yaml:"token_ttl"`
	}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	c.URL = raw.URL
	c.Password = raw.Password
	if raw.TokenTTL != "" {
		ttl, err := time.ParseDuration(raw.TokenTTL)
		if err != nil {
			return fmt.Errorf("invalid token_ttl: %w", err)
		}
		c.TokenTTL = ttl
	}
	return nil
}

const defaultTokenTTL = 10 * time.Minute

// TokenCache is a storage.TokenRepository that serves reads from Redis and
// falls back to the underlying store on a miss. Cache failures degrade to
// direct store reads; they are never surfaced to the caller.
type TokenCache struct {
	rdb   *redis.Client
	store storage.TokenRepository
	ttl   time.Duration
	log   *slog.Logger
}

// NewTokenCache connects to Redis and wraps the given repository.
func NewTokenCache(cfg Config, store storage.TokenRepository, log *slog.Logger) (*TokenCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenCache{rdb: rdb, store: store, ttl: ttl, log: log}, nil
}

func tokenKey(address string) string {
	return fmt.Sprintf("token:%s", address)
}

// Get returns the token metadata for an address, cached.
func (c *TokenCache) Get(ctx context.Context, address string) (*domain.TokenMetadata, error) {
	data, err := c.rdb.Get(ctx, tokenKey(address)).Bytes()
	if err == nil {
		var token domain.TokenMetadata
		if uerr := json.Unmarshal(data, &token); uerr == nil {
			return &token, nil
		}
		// Corrupt entry: drop it and fall through to the store.
		c.rdb.Del(ctx, tokenKey(address))
	} else if !errors.Is(err, redis.Nil) {
		c.log.Warn("Token cache read failed", "address", address, "error", err)
	}

	token, err := c.store.Get(ctx, address)
	if err != nil || token == nil {
		return token, err
	}

	if data, merr := json.Marshal(token); merr == nil {
		if serr := c.rdb.Set(ctx, tokenKey(address), data, c.ttl).Err(); serr != nil {
			c.log.Warn("Token cache write failed", "address", address, "error", serr)
		}
	}
	return token, nil
}

// Upsert writes through to the store and invalidates the cached entry.
func (c *TokenCache) Upsert(ctx context.Context, token *domain.TokenMetadata) error {
	if err := c.store.Upsert(ctx, token); err != nil {
		return err
	}
	if err := c.rdb.Del(ctx, tokenKey(token.Address)).Err(); err != nil {
		c.log.Warn("Token cache invalidation failed", "address", token.Address, "error", err)
	}
	return nil
}

// List bypasses the cache; full listings always come from the store.
func (c *TokenCache) List(ctx context.Context) ([]*domain.TokenMetadata, error) {
	return c.store.List(ctx)
}

// Health checks if Redis is reachable.
func (c *TokenCache) Health(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (c *TokenCache) Close() error {
	return c.rdb.Close()
}
