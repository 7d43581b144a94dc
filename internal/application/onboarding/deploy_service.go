package onboarding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/napment/onboarding/internal/domain/onboarding"
	"github.com/napment/onboarding/internal/domain/shared"
	"github.com/napment/onboarding/internal/infrastructure/logger"
	"github.com/napment/onboarding/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// DeployStatusDeployed is reported for an accepted deploy
const DeployStatusDeployed = "deployed"

// DeployNextSteps are shown to the merchant after deploying
var DeployNextSteps = []string{
	"Lisää Napment-widget Shopify-teemaasi",
	"Testaa AI-assistenttia storefrontissa",
	"Seuraa analytiikkaa admin-paneelista",
}

// DeployConfig holds the public Napment endpoints reported after a deploy
type DeployConfig struct {
	// StorefrontDomain is the parent domain of merchant storefronts, e.g. bobbi.live
	StorefrontDomain string
	// AdminURL is the admin panel base URL; the session ID is appended
	AdminURL string
	// APIURL is the public API base URL
	APIURL string
}

// DeployService finalizes an onboarding session.
// Deployment itself is not orchestrated; the service checks the precondition
// and reports where the assistant will be reachable.
type DeployService struct {
	repo    onboarding.SessionRepository
	config  DeployConfig
	metrics *telemetry.OnboardingMetrics
}

// NewDeployService creates a new DeployService
func NewDeployService(repo onboarding.SessionRepository, cfg DeployConfig) *DeployService {
	cfg.AdminURL = strings.TrimRight(cfg.AdminURL, "/")
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	return &DeployService{repo: repo, config: cfg}
}

// SetMetrics sets the onboarding metrics recorder
func (s *DeployService) SetMetrics(m *telemetry.OnboardingMetrics) {
	s.metrics = m
}

// Deploy requires a connected session and returns the deployment URLs
func (s *DeployService) Deploy(ctx context.Context, sessionID string) (*DeployResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "deploy", "deploy",
		telemetry.SpanAttrSessionID, sessionID,
	)
	defer span.End()

	log := logger.FromContext(ctx).With(zap.String("session_id", sessionID))

	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		telemetry.RecordError(span, err)
		if errors.Is(err, onboarding.ErrSessionNotFound) {
			s.metrics.RecordDeploy(ctx, telemetry.ResultRejected)
			return nil, shared.ErrNotFound.WithMessage("Session not found")
		}
		s.metrics.RecordDeploy(ctx, telemetry.ResultFailure)
		return nil, err
	}

	if err := session.CanDeploy(); err != nil {
		telemetry.RecordError(span, err)
		s.metrics.RecordDeploy(ctx, telemetry.ResultRejected)
		log.Info("Deploy rejected", zap.Error(err))
		if errors.Is(err, onboarding.ErrNotConnected) {
			return nil, shared.ErrPlatformNotConnected
		}
		return nil, shared.ErrPlatformNotConnected.WithMessage("Shop domain missing. Reconnect the platform.")
	}

	handle := session.StorefrontHandle()
	resp := &DeployResponse{
		Status:    DeployStatusDeployed,
		SessionID: session.ID,
		Shop:      session.ShopName,
		URLs: DeployURLs{
			Storefront: fmt.Sprintf("https://%s.%s", handle, s.config.StorefrontDomain),
			Admin:      fmt.Sprintf("%s/%s", s.config.AdminURL, session.ID),
			API:        s.config.APIURL,
		},
		NextSteps: append([]string(nil), DeployNextSteps...),
	}

	s.metrics.RecordDeploy(ctx, telemetry.ResultSuccess)
	log.Info("Deployed onboarding session",
		zap.String("shop_domain", *session.ShopDomain),
		zap.String("storefront_url", resp.URLs.Storefront),
	)
	return resp, nil
}
