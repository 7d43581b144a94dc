package persistence

import (
	"context"
	"sync"

	"github.com/napment/onboarding/internal/domain/onboarding"
)

// MemorySessionRepository implements onboarding.SessionRepository with a
// process-local map. Sessions live until the process exits.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]*onboarding.Session
}

// NewMemorySessionRepository creates a new empty session repository
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]*onboarding.Session),
	}
}

// FindByID returns a copy of the stored session
func (r *MemorySessionRepository) FindByID(ctx context.Context, id string) (*onboarding.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, onboarding.ErrSessionNotFound
	}
	return s.Clone(), nil
}

// Save inserts or replaces the session. A copy is stored.
func (r *MemorySessionRepository) Save(ctx context.Context, session *onboarding.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.ID] = session.Clone()
	return nil
}

// Ensure MemorySessionRepository implements the interface
var _ onboarding.SessionRepository = (*MemorySessionRepository)(nil)
