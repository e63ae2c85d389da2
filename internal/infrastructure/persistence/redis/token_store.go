// Package redis provides the Redis backed token revocation store
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/alchemorsel/catalog/internal/infrastructure/config"
	"github.com/alchemorsel/catalog/internal/ports/outbound"
)

// NewClient creates a Redis client from configuration and checks connectivity
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.Database,
		MaxRetries:   cfg.MaxRetries,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return client, nil
}

// TokenStore records revoked token IDs as expiring Redis keys
type TokenStore struct {
	client redis.UniversalClient
	prefix string
	logger *zap.Logger
}

var _ outbound.TokenStore = (*TokenStore)(nil)

// NewTokenStore creates a token store under the given key prefix
func NewTokenStore(client redis.UniversalClient, prefix string, logger *zap.Logger) *TokenStore {
	return &TokenStore{
		client: client,
		prefix: prefix,
		logger: logger.Named("token-store"),
	}
}

// Revoke marks tokenID as revoked for ttl
func (s *TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, s.key(tokenID), "1", ttl).Err(); err != nil {
		s.logger.Error("Token revoke failed", zap.String("jti", tokenID), zap.Error(err))
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokenID is still marked as revoked
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("check token revocation: %w", err)
	}
	return n > 0, nil
}

func (s *TokenStore) key(tokenID string) string {
	return s.prefix + "revoked:" + tokenID
}
