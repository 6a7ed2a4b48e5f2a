package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/makeey/notsofluffy.pl-sub000/config"
	"github.com/makeey/notsofluffy.pl-sub000/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// RefreshStore tracks issued refresh tokens so each one can be redeemed at
// most once. Tokens are keyed by their JWT ID and expire together with the
// token itself.
type RefreshStore struct{}

// NewRefreshStore returns a store backed by the package-level client
func NewRefreshStore() *RefreshStore {
	return &RefreshStore{}
}

func refreshKey(tokenID string) string {
	return fmt.Sprintf("refresh:%s", tokenID)
}

// Save registers a newly issued refresh token
func (s *RefreshStore) Save(ctx context.Context, tokenID string, userID uint, expiry time.Duration) error {
	logger.Debug("Registering refresh token", map[string]interface{}{
		"user_id": userID,
		"expiry":  expiry.String(),
	})

	if err := client.Set(ctx, refreshKey(tokenID), userID, expiry).Err(); err != nil {
		logger.Error("Failed to register refresh token", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}
	return nil
}

// Consume redeems a refresh token, removing it from the store. It returns
// false when the token is unknown, already used, or revoked.
func (s *RefreshStore) Consume(ctx context.Context, tokenID string) (bool, error) {
	deleted, err := client.Del(ctx, refreshKey(tokenID)).Result()
	if err != nil {
		logger.Error("Failed to consume refresh token", err, nil)
		return false, err
	}
	return deleted > 0, nil
}

// Revoke removes a refresh token without redeeming it (logout)
func (s *RefreshStore) Revoke(ctx context.Context, tokenID string) error {
	if err := client.Del(ctx, refreshKey(tokenID)).Err(); err != nil {
		logger.Error("Failed to revoke refresh token", err, nil)
		return err
	}
	logger.Debug("Refresh token revoked", nil)
	return nil
}
