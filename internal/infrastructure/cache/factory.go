package cache

import (
	"context"
	"fmt"
	"io"

	"github.com/jonboulle/clockwork"
	"github.com/napment/onboarding/internal/domain/integration"
	"github.com/napment/onboarding/internal/infrastructure/config"
	"go.uber.org/zap"
)

// OAuthStateStoreFactory creates OAuth state stores based on configuration
type OAuthStateStoreFactory struct {
	oauthConfig config.OAuthConfig
	redisConfig config.RedisConfig
	logger      *zap.Logger
	clock       clockwork.Clock
}

// OAuthStateStoreFactoryOption is a functional option for configuring the factory
type OAuthStateStoreFactoryOption func(*OAuthStateStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) OAuthStateStoreFactoryOption {
	return func(f *OAuthStateStoreFactory) {
		f.logger = logger
	}
}

// WithClock sets the clock used by the in-memory store
func WithClock(clock clockwork.Clock) OAuthStateStoreFactoryOption {
	return func(f *OAuthStateStoreFactory) {
		f.clock = clock
	}
}

// NewOAuthStateStoreFactory creates a new factory
func NewOAuthStateStoreFactory(oauthCfg config.OAuthConfig, redisCfg config.RedisConfig, opts ...OAuthStateStoreFactoryOption) *OAuthStateStoreFactory {
	f := &OAuthStateStoreFactory{
		oauthConfig: oauthCfg,
		redisConfig: redisCfg,
		logger:      zap.NewNop(),
		clock:       clockwork.NewRealClock(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisStore connects to Redis and returns a store plus the client closer
func (f *OAuthStateStoreFactory) CreateRedisStore(ctx context.Context) (integration.OAuthStateStore, io.Closer, error) {
	client, err := NewRedisClient(ctx, RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Redis oauth state store: %w", err)
	}

	return NewRedisOAuthStateStore(client, f.redisConfig.KeyPrefix), client, nil
}

// CreateInMemoryStore creates an in-memory state store
// WARNING: In-memory stores do not share state across process instances,
// so a callback routed to another instance fails with an unknown state
func (f *OAuthStateStoreFactory) CreateInMemoryStore() *InMemoryOAuthStateStore {
	return NewInMemoryOAuthStateStore(f.clock)
}

// CreateStore creates the configured state store. The returned closer
// releases the store's resources and must be called on shutdown.
// When Redis is selected but unreachable it falls back to memory if allowed.
func (f *OAuthStateStoreFactory) CreateStore(ctx context.Context) (integration.OAuthStateStore, io.Closer, error) {
	if f.oauthConfig.StateStore != "redis" {
		f.logger.Info("using in-memory oauth state store")
		store := f.CreateInMemoryStore()
		return store, store, nil
	}

	store, closer, err := f.CreateRedisStore(ctx)
	if err == nil {
		f.logger.Info("using Redis oauth state store", zap.String("addr", f.redisConfig.RedisAddr()))
		return store, closer, nil
	}

	if !f.oauthConfig.AllowMemoryFallback {
		return nil, nil, fmt.Errorf("Redis required for oauth state but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory oauth state store. "+
		"Callbacks must reach the instance that issued the state.",
		zap.Error(err),
	)
	mem := f.CreateInMemoryStore()
	return mem, mem, nil
}
