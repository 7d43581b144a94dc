package onboarding

import (
	"fmt"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// SessionIDLength is the length of generated session IDs.
// 22 nanoid characters carry roughly 128 bits of entropy.
const SessionIDLength = 22

// ---------------------------------------------------------------------------
// Step
// ---------------------------------------------------------------------------

// Step is a position in the onboarding wizard
type Step string

const (
	StepWelcome         Step = "welcome"
	StepPlatformSelect  Step = "platform_select"
	StepPlatformConnect Step = "platform_connect"
	StepBrandConfig     Step = "brand_config"
	StepAgentConfig     Step = "agent_config"
	StepReview          Step = "review"
	StepComplete        Step = "complete"
)

// Steps lists the wizard steps in order
var Steps = []Step{
	StepWelcome,
	StepPlatformSelect,
	StepPlatformConnect,
	StepBrandConfig,
	StepAgentConfig,
	StepReview,
	StepComplete,
}

// IsValid returns true if the step is one of the known wizard steps
func (s Step) IsValid() bool {
	return s.Index() >= 0
}

// Index returns the zero-based position of the step, or -1 if unknown
func (s Step) Index() int {
	for i, step := range Steps {
		if step == s {
			return i
		}
	}
	return -1
}

// String returns the string representation of Step
func (s Step) String() string {
	return string(s)
}

// ---------------------------------------------------------------------------
// Platform
// ---------------------------------------------------------------------------

// Platform is a supported e-commerce backend
type Platform string

// ShopifyDomainSuffix is the hosted suffix of every Shopify shop domain
const ShopifyDomainSuffix = ".myshopify.com"

const (
	PlatformShopify     Platform = "shopify"
	PlatformWooCommerce Platform = "woocommerce"
	PlatformMagento     Platform = "magento"
	PlatformCustom      Platform = "custom"
)

// IsValid returns true if the platform is known
func (p Platform) IsValid() bool {
	switch p {
	case PlatformShopify, PlatformWooCommerce, PlatformMagento, PlatformCustom:
		return true
	default:
		return false
	}
}

// String returns the string representation of Platform
func (p Platform) String() string {
	return string(p)
}

// ---------------------------------------------------------------------------
// Session aggregate
// ---------------------------------------------------------------------------

// Session is the onboarding progress record for one merchant
type Session struct {
	ID          string
	CurrentStep Step
	Platform    *Platform
	ShopName    *string
	ShopDomain  *string
	Email       *string
	IsConnected bool
	BrandConfig map[string]any
	AgentConfig map[string]any
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewSession creates a session at the welcome step with a fresh random ID
func NewSession(email *string) (*Session, error) {
	id, err := gonanoid.New(SessionIDLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	now := time.Now()
	return &Session{
		ID:          id,
		CurrentStep: StepWelcome,
		Email:       cloneString(email),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// SessionUpdate is a partial update. Nil fields are left untouched.
type SessionUpdate struct {
	CurrentStep *Step
	Platform    *Platform
	ShopName    *string
	ShopDomain  *string
	Email       *string
	BrandConfig map[string]any
	AgentConfig map[string]any
}

// IsEmpty returns true if the update carries no fields
func (u SessionUpdate) IsEmpty() bool {
	return u.CurrentStep == nil && u.Platform == nil && u.ShopName == nil &&
		u.ShopDomain == nil && u.Email == nil && u.BrandConfig == nil && u.AgentConfig == nil
}

// Validate checks enum values carried by the update
func (u SessionUpdate) Validate() error {
	if u.CurrentStep != nil && !u.CurrentStep.IsValid() {
		return fmt.Errorf("%w: unknown step %q", ErrInvalidStep, *u.CurrentStep)
	}
	if u.Platform != nil && !u.Platform.IsValid() {
		return fmt.Errorf("%w: unknown platform %q", ErrInvalidPlatform, *u.Platform)
	}
	return nil
}

// Apply applies the supplied fields to the session
func (s *Session) Apply(u SessionUpdate) error {
	if err := u.Validate(); err != nil {
		return err
	}
	if u.CurrentStep != nil {
		s.CurrentStep = *u.CurrentStep
	}
	if u.Platform != nil {
		p := *u.Platform
		s.Platform = &p
	}
	if u.ShopName != nil {
		s.ShopName = cloneString(u.ShopName)
	}
	if u.ShopDomain != nil {
		s.ShopDomain = cloneString(u.ShopDomain)
	}
	if u.Email != nil {
		s.Email = cloneString(u.Email)
	}
	if u.BrandConfig != nil {
		s.BrandConfig = cloneMap(u.BrandConfig)
	}
	if u.AgentConfig != nil {
		s.AgentConfig = cloneMap(u.AgentConfig)
	}
	s.touch()
	return nil
}

// MarkConnected records a completed platform authorization
func (s *Session) MarkConnected(platform Platform, shopDomain string) {
	s.Platform = &platform
	s.ShopDomain = &shopDomain
	s.IsConnected = true
	s.touch()
}

// BeginAuthorization records the shop an authorization was requested for.
// A connection to a different shop or platform no longer holds and is dropped.
func (s *Session) BeginAuthorization(platform Platform, shopDomain string) error {
	if !platform.IsValid() {
		return fmt.Errorf("%w: unknown platform %q", ErrInvalidPlatform, platform)
	}
	if s.IsConnected && !s.connectedTo(platform, shopDomain) {
		s.IsConnected = false
	}
	s.Platform = &platform
	s.ShopDomain = &shopDomain
	s.touch()
	return nil
}

func (s *Session) connectedTo(platform Platform, shopDomain string) bool {
	return s.Platform != nil && *s.Platform == platform &&
		s.ShopDomain != nil && *s.ShopDomain == shopDomain
}

// StorefrontHandle returns the shop domain without the Shopify hosted
// suffix, e.g. kauppa.myshopify.com becomes kauppa
func (s *Session) StorefrontHandle() string {
	if s.ShopDomain == nil {
		return ""
	}
	return strings.TrimSuffix(*s.ShopDomain, ShopifyDomainSuffix)
}

// CanDeploy reports whether the session satisfies the deploy precondition
func (s *Session) CanDeploy() error {
	if !s.IsConnected {
		return ErrNotConnected
	}
	if s.ShopDomain == nil || strings.TrimSpace(*s.ShopDomain) == "" {
		return ErrMissingShopDomain
	}
	return nil
}

// Clone returns a deep copy of the session
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	if s.Platform != nil {
		p := *s.Platform
		c.Platform = &p
	}
	c.ShopName = cloneString(s.ShopName)
	c.ShopDomain = cloneString(s.ShopDomain)
	c.Email = cloneString(s.Email)
	c.BrandConfig = cloneMap(s.BrandConfig)
	c.AgentConfig = cloneMap(s.AgentConfig)
	return &c
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now()
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return val
	}
}
