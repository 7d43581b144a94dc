package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/napment/onboarding/internal/domain/integration"
	"github.com/redis/go-redis/v9"
)

const defaultStateKeyPrefix = "onboarding:oauth:state:"

// RedisOAuthStateStore implements OAuthStateStore using Redis.
// This is suitable for deployments where the callback may land on a
// different instance than the one that issued the state.
type RedisOAuthStateStore struct {
	client    redis.Cmdable
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisClient opens a client and verifies the connection
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewRedisOAuthStateStore creates a store with an existing Redis client
func NewRedisOAuthStateStore(client redis.Cmdable, keyPrefix string) *RedisOAuthStateStore {
	if keyPrefix == "" {
		keyPrefix = defaultStateKeyPrefix
	}
	return &RedisOAuthStateStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Save stores a pending authorization with a TTL
func (s *RedisOAuthStateStore) Save(ctx context.Context, auth integration.PendingAuthorization, ttl time.Duration) error {
	data, err := json.Marshal(auth)
	if err != nil {
		return fmt.Errorf("failed to encode oauth state: %w", err)
	}

	if err := s.client.Set(ctx, s.keyPrefix+auth.State, string(data), ttl).Err(); err != nil {
		return fmt.Errorf("failed to save oauth state: %w", err)
	}
	return nil
}

// Consume atomically reads and deletes the pending authorization (GETDEL)
func (s *RedisOAuthStateStore) Consume(ctx context.Context, state string) (*integration.PendingAuthorization, error) {
	data, err := s.client.GetDel(ctx, s.keyPrefix+state).Result()
	if errors.Is(err, redis.Nil) {
		return nil, integration.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to consume oauth state: %w", err)
	}

	var auth integration.PendingAuthorization
	if err := json.Unmarshal([]byte(data), &auth); err != nil {
		return nil, fmt.Errorf("failed to decode oauth state: %w", err)
	}
	return &auth, nil
}

// Ensure RedisOAuthStateStore implements OAuthStateStore
var _ integration.OAuthStateStore = (*RedisOAuthStateStore)(nil)
