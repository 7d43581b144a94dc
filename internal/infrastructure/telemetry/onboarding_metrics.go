package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when metrics are constructed without a meter
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// Metric results
const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultRejected = "rejected"
)

// OnboardingMetrics counts onboarding funnel events.
// A nil *OnboardingMetrics is valid and records nothing.
type OnboardingMetrics struct {
	sessionsCreated *Counter
	sessionsUpdated *Counter
	authURLsIssued  *Counter
	callbacks       *Counter
	deploys         *Counter
}

// NewOnboardingMetrics registers the onboarding counters on meter
func NewOnboardingMetrics(meter metric.Meter) (*OnboardingMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	m := &OnboardingMetrics{}
	var err error

	if m.sessionsCreated, err = NewCounter(meter,
		"onboarding_sessions_created_total",
		"Total number of onboarding sessions created",
		"{sessions}",
	); err != nil {
		return nil, err
	}
	if m.sessionsUpdated, err = NewCounter(meter,
		"onboarding_session_updates_total",
		"Total number of session updates by resulting step",
		"{updates}",
	); err != nil {
		return nil, err
	}
	if m.authURLsIssued, err = NewCounter(meter,
		"onboarding_oauth_urls_issued_total",
		"Total number of platform authorization URLs issued",
		"{urls}",
	); err != nil {
		return nil, err
	}
	if m.callbacks, err = NewCounter(meter,
		"onboarding_oauth_callbacks_total",
		"Total number of platform OAuth callbacks by result",
		"{callbacks}",
	); err != nil {
		return nil, err
	}
	if m.deploys, err = NewCounter(meter,
		"onboarding_deploys_total",
		"Total number of deploy requests by result",
		"{deploys}",
	); err != nil {
		return nil, err
	}

	return m, nil
}

// RecordSessionCreated counts a new session
func (m *OnboardingMetrics) RecordSessionCreated(ctx context.Context) {
	if m == nil {
		return
	}
	m.sessionsCreated.Inc(ctx)
}

// RecordSessionUpdated counts an update, labeled with the session's step after it
func (m *OnboardingMetrics) RecordSessionUpdated(ctx context.Context, step string) {
	if m == nil {
		return
	}
	m.sessionsUpdated.Inc(ctx, AttrStep.String(step))
}

// RecordAuthURLIssued counts an issued authorization URL
func (m *OnboardingMetrics) RecordAuthURLIssued(ctx context.Context, platform string) {
	if m == nil {
		return
	}
	m.authURLsIssued.Inc(ctx, AttrPlatform.String(platform))
}

// RecordCallback counts an OAuth callback outcome
func (m *OnboardingMetrics) RecordCallback(ctx context.Context, platform, result string) {
	if m == nil {
		return
	}
	m.callbacks.Inc(ctx, AttrPlatform.String(platform), AttrResult.String(result))
}

// RecordDeploy counts a deploy outcome
func (m *OnboardingMetrics) RecordDeploy(ctx context.Context, result string) {
	if m == nil {
		return
	}
	m.deploys.Inc(ctx, AttrResult.String(result))
}
