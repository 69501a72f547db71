// Package tokenstore tracks revoked refresh tokens. A redis backend is used
// when an address is configured; otherwise a process-local store keeps the
// stub usable with zero setup.
package tokenstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/foodexpress/foodexpress-client/pkg/logger"
	"github.com/redis/go-redis/v9"
)

type Store interface {
	Revoke(ctx context.Context, token string, expiry time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
	Close() error
}

// NewRedisStore connects to redis and verifies the connection with a ping.
func NewRedisStore(addr, password string, db int) (Store, error) {
	logger.Info("Initializing Redis token store", map[string]interface{}{
		"addr": addr,
		"db":   db,
	})

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"addr": addr,
		})
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis token store ready", nil)
	return &redisStore{client: client}, nil
}

type redisStore struct {
	client *redis.Client
}

func (s *redisStore) Revoke(ctx context.Context, token string, expiry time.Duration) error {
	key := fmt.Sprintf("revoked:%s", token)
	if err := s.client.Set(ctx, key, "revoked", expiry).Err(); err != nil {
		logger.Error("Failed to revoke token", err, nil)
		return err
	}
	return nil
}

func (s *redisStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	key := fmt.Sprintf("revoked:%s", token)
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check token revocation", err, nil)
		return false, err
	}
	return val == "revoked", nil
}

func (s *redisStore) Close() error {
	logger.Info("Closing Redis token store", nil)
	return s.client.Close()
}

// NewMemoryStore creates an in-process store.
func NewMemoryStore() Store {
	return &memoryStore{revoked: make(map[string]time.Time)}
}

type memoryStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func (s *memoryStore) Revoke(ctx context.Context, token string, expiry time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[token] = time.Now().Add(expiry)
	return nil
}

func (s *memoryStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deadline, ok := s.revoked[token]
	if !ok {
		return false, nil
	}
	if time.Now().After(deadline) {
		delete(s.revoked, token)
		return false, nil
	}
	return true, nil
}

func (s *memoryStore) Close() error {
	return nil
}
