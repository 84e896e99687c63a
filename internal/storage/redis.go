package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/xaenox/scamshield/internal/models"
)

// Usage keys expire on their own, so the janitor has nothing to purge here.
const usageTTL = 48 * time.Hour

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RedisStorage struct {
	client *redis.Client
}

func NewRedisStorage(config RedisConfig) (*RedisStorage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}

	return &RedisStorage{client: client}, nil
}

func entitlementKey(userID int64) string {
	return fmt.Sprintf("entitlement:%d", userID)
}

func usageKey(userID int64) string {
	return fmt.Sprintf("usage:%d", userID)
}

func (s *RedisStorage) GetEntitlement(ctx context.Context, userID int64) (*models.Entitlement, error) {
	data, err := s.client.Get(ctx, entitlementKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading entitlement: %w", err)
	}

	e := &models.Entitlement{}
	if err := json.Unmarshal(data, e); err != nil {
		return nil, fmt.Errorf("error decoding entitlement: %w", err)
	}
	return e, nil
}

func (s *RedisStorage) SaveEntitlement(ctx context.Context, e *models.Entitlement) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("error encoding entitlement: %w", err)
	}
	if err := s.client.Set(ctx, entitlementKey(e.UserID), data, 0).Err(); err != nil {
		return fmt.Errorf("error saving entitlement: %w", err)
	}
	return nil
}

func (s *RedisStorage) GetUsage(ctx context.Context, userID int64) (*models.Usage, error) {
	data, err := s.client.Get(ctx, usageKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading usage: %w", err)
	}

	u := &models.Usage{}
	if err := json.Unmarshal(data, u); err != nil {
		return nil, fmt.Errorf("error decoding usage: %w", err)
	}
	return u, nil
}

func (s *RedisStorage) SaveUsage(ctx context.Context, u *models.Usage) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("error encoding usage: %w", err)
	}
	if err := s.client.Set(ctx, usageKey(u.UserID), data, usageTTL).Err(); err != nil {
		return fmt.Errorf("error saving usage: %w", err)
	}
	return nil
}

func (s *RedisStorage) DeleteUsageBefore(ctx context.Context, day string) error {
	// Usage keys carry a TTL; stale records age out without a scan.
	return nil
}

func (s *RedisStorage) Close() error {
	return s.client.Close()
}
