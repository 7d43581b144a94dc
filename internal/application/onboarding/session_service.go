package onboarding

import (
	"context"
	"errors"

	"github.com/napment/onboarding/internal/domain/onboarding"
	"github.com/napment/onboarding/internal/domain/shared"
	"github.com/napment/onboarding/internal/infrastructure/logger"
	"github.com/napment/onboarding/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const sessionSpanService = "onboarding_session"

// SessionService handles onboarding session operations.
//
// Update is a plain read-modify-write: two concurrent updates of the same
// session race and the last Save wins. The repository keeps its own map
// consistent.
type SessionService struct {
	repo    onboarding.SessionRepository
	metrics *telemetry.OnboardingMetrics
}

// NewSessionService creates a new SessionService
func NewSessionService(repo onboarding.SessionRepository) *SessionService {
	return &SessionService{repo: repo}
}

// SetMetrics sets the onboarding metrics recorder
func (s *SessionService) SetMetrics(m *telemetry.OnboardingMetrics) {
	s.metrics = m
}

// Create starts a new session at the welcome step
func (s *SessionService) Create(ctx context.Context, req CreateSessionRequest) (*SessionResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, sessionSpanService, "create")
	defer span.End()

	session, err := onboarding.NewSession(req.Email)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := s.repo.Save(ctx, session); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrSessionID, session.ID)
	s.metrics.RecordSessionCreated(ctx)
	logger.FromContext(ctx).Info("Created onboarding session",
		zap.String("session_id", session.ID),
		zap.Bool("has_email", session.Email != nil),
	)

	resp := ToSessionResponse(session)
	return &resp, nil
}

// Get returns a session by ID
func (s *SessionService) Get(ctx context.Context, id string) (*SessionResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, sessionSpanService, "get",
		telemetry.SpanAttrSessionID, id,
	)
	defer span.End()

	session, err := s.load(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToSessionResponse(session)
	return &resp, nil
}

// Update applies only the supplied fields of req to the session
func (s *SessionService) Update(ctx context.Context, id string, req UpdateSessionRequest) (*SessionResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, sessionSpanService, "update",
		telemetry.SpanAttrSessionID, id,
	)
	defer span.End()

	session, err := s.load(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	update := req.ToDomain()
	if update.IsEmpty() {
		resp := ToSessionResponse(session)
		return &resp, nil
	}

	if err := session.Apply(update); err != nil {
		telemetry.RecordError(span, err)
		return nil, shared.ErrInvalidInput.WithMessage(err.Error())
	}
	if err := s.repo.Save(ctx, session); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrStep, session.CurrentStep)
	s.metrics.RecordSessionUpdated(ctx, session.CurrentStep.String())
	logger.FromContext(ctx).Info("Updated onboarding session",
		zap.String("session_id", session.ID),
		zap.String("current_step", session.CurrentStep.String()),
	)

	resp := ToSessionResponse(session)
	return &resp, nil
}

// load fetches a session, translating a missing ID into a NOT_FOUND domain error
func (s *SessionService) load(ctx context.Context, id string) (*onboarding.Session, error) {
	session, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, onboarding.ErrSessionNotFound) {
			return nil, shared.ErrNotFound.WithMessage("Session not found")
		}
		return nil, err
	}
	return session, nil
}
