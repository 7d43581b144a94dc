package integration

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/napment/onboarding/internal/domain/integration"
	"github.com/napment/onboarding/internal/domain/onboarding"
	"github.com/napment/onboarding/internal/domain/shared"
	"github.com/napment/onboarding/internal/infrastructure/logger"
	"github.com/napment/onboarding/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const connectSpanService = "platform_connect"

// CallbackStatusSuccess is reported for an accepted callback
const CallbackStatusSuccess = "success"

// ConnectService issues platform authorization URLs and accepts their
// callbacks. The authorization code is not exchanged for a token here.
type ConnectService struct {
	authorizer integration.PlatformAuthorizer
	states     integration.OAuthStateStore
	sessions   onboarding.SessionRepository
	stateTTL   time.Duration
	clock      clockwork.Clock
	metrics    *telemetry.OnboardingMetrics
}

// NewConnectService creates a new ConnectService.
// A non-positive stateTTL uses integration.DefaultStateTTL.
func NewConnectService(
	authorizer integration.PlatformAuthorizer,
	states integration.OAuthStateStore,
	sessions onboarding.SessionRepository,
	stateTTL time.Duration,
) *ConnectService {
	if stateTTL <= 0 {
		stateTTL = integration.DefaultStateTTL
	}
	return &ConnectService{
		authorizer: authorizer,
		states:     states,
		sessions:   sessions,
		stateTTL:   stateTTL,
		clock:      clockwork.NewRealClock(),
	}
}

// SetMetrics sets the onboarding metrics recorder
func (s *ConnectService) SetMetrics(m *telemetry.OnboardingMetrics) {
	s.metrics = m
}

// SetClock replaces the clock used to timestamp pending authorizations
func (s *ConnectService) SetClock(clock clockwork.Clock) {
	s.clock = clock
}

// Platform returns the platform handled by this service
func (s *ConnectService) Platform() string {
	return s.authorizer.Platform()
}

// BuildAuthURL builds the consent URL for req.ShopDomain and remembers the
// issued state for the callback. If sessionID names an existing session its
// shop domain and platform are updated; an unknown session is not an error.
func (s *ConnectService) BuildAuthURL(ctx context.Context, sessionID string, req AuthURLRequest) (*AuthURLResponse, error) {
	platform := s.authorizer.Platform()
	ctx, span := telemetry.StartServiceSpan(ctx, connectSpanService, "build_auth_url",
		telemetry.SpanAttrSessionID, sessionID,
		telemetry.SpanAttrPlatform, platform,
	)
	defer span.End()

	log := logger.FromContext(ctx).With(
		zap.String("session_id", sessionID),
		zap.String("platform", platform),
	)

	state, err := integration.NewStateToken()
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to generate oauth state: %w", err)
	}

	authURL, err := s.authorizer.AuthorizationURL(req.ShopDomain, state)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, mapAuthorizerError(err)
	}
	shop, err := s.authorizer.NormalizeShop(req.ShopDomain)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, mapAuthorizerError(err)
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrShop, shop)

	pending := integration.PendingAuthorization{
		State:     state,
		SessionID: sessionID,
		Shop:      shop,
		Platform:  platform,
		IssuedAt:  s.clock.Now().UTC(),
	}
	if err := s.states.Save(ctx, pending, s.stateTTL); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if err := s.attachShop(ctx, sessionID, onboarding.Platform(platform), shop); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.metrics.RecordAuthURLIssued(ctx, platform)
	log.Info("Issued platform authorization URL",
		zap.String("shop", shop),
		zap.Duration("state_ttl", s.stateTTL),
	)

	return &AuthURLResponse{
		AuthURL: authURL,
		State:   state,
		Shop:    shop,
	}, nil
}

// HandleCallback validates a platform OAuth callback and marks the session
// that requested the authorization as connected
func (s *ConnectService) HandleCallback(ctx context.Context, query url.Values) (*CallbackResponse, error) {
	platform := s.authorizer.Platform()
	ctx, span := telemetry.StartServiceSpan(ctx, connectSpanService, "handle_callback",
		telemetry.SpanAttrPlatform, platform,
	)
	defer span.End()

	log := logger.FromContext(ctx).With(zap.String("platform", platform))

	resp, err := s.handleCallback(ctx, query)
	if err != nil {
		telemetry.RecordError(span, err)
		result := telemetry.ResultRejected
		var domainErr *shared.DomainError
		if !errors.As(err, &domainErr) {
			result = telemetry.ResultFailure
		}
		s.metrics.RecordCallback(ctx, platform, result)
		log.Warn("Platform callback rejected",
			zap.String("shop", query.Get("shop")),
			zap.Error(err),
		)
		return nil, err
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrSessionID, resp.SessionID,
		telemetry.SpanAttrShop, resp.Shop,
	)
	s.metrics.RecordCallback(ctx, platform, telemetry.ResultSuccess)
	log.Info("Platform connected",
		zap.String("session_id", resp.SessionID),
		zap.String("shop", resp.Shop),
	)
	return resp, nil
}

func (s *ConnectService) handleCallback(ctx context.Context, query url.Values) (*CallbackResponse, error) {
	params := integration.CallbackParams{
		Code:  query.Get("code"),
		Shop:  query.Get("shop"),
		State: query.Get("state"),
		Raw:   query,
	}
	if err := params.Validate(); err != nil {
		return nil, shared.ErrInvalidInput.WithMessage("Missing required parameters: code, shop, state")
	}

	if err := s.authorizer.VerifyCallback(params.Raw); err != nil {
		return nil, mapAuthorizerError(err)
	}

	shop, err := s.authorizer.NormalizeShop(params.Shop)
	if err != nil {
		return nil, mapAuthorizerError(err)
	}

	pending, err := s.states.Consume(ctx, params.State)
	if err != nil {
		if errors.Is(err, integration.ErrStateNotFound) {
			return nil, shared.ErrInvalidOAuthState
		}
		return nil, err
	}
	if pending.Shop != shop || pending.Platform != s.authorizer.Platform() {
		return nil, shared.ErrInvalidOAuthState.WithMessage("OAuth state was issued for a different shop")
	}

	session, err := s.sessions.FindByID(ctx, pending.SessionID)
	if err != nil {
		if errors.Is(err, onboarding.ErrSessionNotFound) {
			return nil, shared.ErrNotFound.WithMessage("Session not found")
		}
		return nil, err
	}

	session.MarkConnected(onboarding.Platform(pending.Platform), shop)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	return &CallbackResponse{
		Status:    CallbackStatusSuccess,
		Message:   fmt.Sprintf("%s connected successfully", platformDisplayName(pending.Platform)),
		Shop:      shop,
		SessionID: session.ID,
	}, nil
}

// attachShop records the shop on an existing session. A session connected
// to another shop loses its connection until the new callback arrives.
func (s *ConnectService) attachShop(ctx context.Context, sessionID string, platform onboarding.Platform, shop string) error {
	if sessionID == "" {
		return nil
	}
	session, err := s.sessions.FindByID(ctx, sessionID)
	if errors.Is(err, onboarding.ErrSessionNotFound) {
		logger.FromContext(ctx).Debug("Authorization requested for unknown session",
			zap.String("session_id", sessionID),
		)
		return nil
	}
	if err != nil {
		return err
	}

	if err := session.BeginAuthorization(platform, shop); err != nil {
		return shared.ErrInvalidInput.WithMessage(err.Error())
	}
	return s.sessions.Save(ctx, session)
}

// mapAuthorizerError translates authorizer errors into domain errors
func mapAuthorizerError(err error) error {
	switch {
	case errors.Is(err, integration.ErrPlatformNotConfigured):
		return shared.ErrPlatformNotConfigured.WithMessage("Shopify OAuth not configured")
	case errors.Is(err, integration.ErrInvalidShopDomain):
		return shared.ErrInvalidInput.WithMessage("Invalid shop domain")
	case errors.Is(err, integration.ErrInvalidSignature):
		return shared.ErrInvalidSignature
	default:
		return err
	}
}

func platformDisplayName(platform string) string {
	switch onboarding.Platform(platform) {
	case onboarding.PlatformShopify:
		return "Shopify"
	case onboarding.PlatformWooCommerce:
		return "WooCommerce"
	case onboarding.PlatformMagento:
		return "Magento"
	default:
		return platform
	}
}
