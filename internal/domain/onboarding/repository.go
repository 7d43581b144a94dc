package onboarding

import (
	"context"
	"errors"
)

var (
	ErrSessionNotFound   = errors.New("onboarding: session not found")
	ErrInvalidStep       = errors.New("onboarding: invalid step")
	ErrInvalidPlatform   = errors.New("onboarding: invalid platform")
	ErrNotConnected      = errors.New("onboarding: platform not connected")
	ErrMissingShopDomain = errors.New("onboarding: shop domain not set")
)

// SessionRepository stores onboarding sessions.
// Implementations return ErrSessionNotFound for unknown IDs and must hand out
// copies, so callers can mutate a loaded session without affecting the store
// until Save is called.
type SessionRepository interface {
	FindByID(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session *Session) error
}
