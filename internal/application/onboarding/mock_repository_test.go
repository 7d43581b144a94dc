package onboarding

import (
	"context"

	"github.com/napment/onboarding/internal/domain/onboarding"
	"github.com/stretchr/testify/mock"
)

// MockSessionRepository is a mock implementation of SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) FindByID(ctx context.Context, id string) (*onboarding.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*onboarding.Session), args.Error(1)
}

func (m *MockSessionRepository) Save(ctx context.Context, session *onboarding.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func strPtr(s string) *string {
	return &s
}

// newConnectedSession returns a session that satisfies the deploy precondition
func newConnectedSession() *onboarding.Session {
	s, _ := onboarding.NewSession(nil)
	s.ShopName = strPtr("Kahvila Aroma")
	s.MarkConnected(onboarding.PlatformShopify, "kahvila-aroma.myshopify.com")
	return s
}
