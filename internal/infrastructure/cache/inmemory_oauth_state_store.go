package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/napment/onboarding/internal/domain/integration"
)

// stateEntry represents a pending authorization with expiration
type stateEntry struct {
	auth      integration.PendingAuthorization
	expiresAt time.Time
}

// InMemoryOAuthStateStore implements OAuthStateStore using an in-memory map.
// This is suitable for single-instance deployments and testing.
type InMemoryOAuthStateStore struct {
	mu        sync.Mutex
	entries   map[string]stateEntry
	clock     clockwork.Clock
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryOAuthStateStore creates a new in-memory state store.
// It starts a background goroutine to clean up expired entries.
func NewInMemoryOAuthStateStore(clock clockwork.Clock) *InMemoryOAuthStateStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	store := &InMemoryOAuthStateStore{
		entries:  make(map[string]stateEntry),
		clock:    clock,
		stopChan: make(chan struct{}),
	}

	store.wg.Add(1)
	go store.cleanupLoop()

	return store
}

// Save stores a pending authorization under its state token
func (s *InMemoryOAuthStateStore) Save(ctx context.Context, auth integration.PendingAuthorization, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[auth.State] = stateEntry{
		auth:      auth,
		expiresAt: s.clock.Now().Add(ttl),
	}
	return nil
}

// Consume returns and removes the pending authorization for state
func (s *InMemoryOAuthStateStore) Consume(ctx context.Context, state string) (*integration.PendingAuthorization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.entries[state]
	if !exists {
		return nil, integration.ErrStateNotFound
	}
	delete(s.entries, state)

	if !s.clock.Now().Before(e.expiresAt) {
		return nil, integration.ErrStateNotFound
	}

	auth := e.auth
	return &auth, nil
}

// Close stops the cleanup goroutine and releases resources.
// Safe to call multiple times.
func (s *InMemoryOAuthStateStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// cleanupLoop periodically removes expired entries
func (s *InMemoryOAuthStateStore) cleanupLoop() {
	defer s.wg.Done()

	ticker := s.clock.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.Chan():
			s.cleanup()
		}
	}
}

// cleanup removes expired entries from the store
func (s *InMemoryOAuthStateStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	for state, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, state)
		}
	}
}

// Ensure InMemoryOAuthStateStore implements OAuthStateStore
var _ integration.OAuthStateStore = (*InMemoryOAuthStateStore)(nil)
