package integration

import (
	"context"
	"errors"
	"net/url"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ---------------------------------------------------------------------------
// OAuth Errors
// ---------------------------------------------------------------------------

var (
	ErrPlatformNotConfigured = errors.New("integration: platform not configured")
	ErrInvalidShopDomain     = errors.New("integration: invalid shop domain")
	ErrStateNotFound         = errors.New("integration: oauth state not found or expired")
	ErrInvalidSignature      = errors.New("integration: invalid platform signature")
	ErrMissingCallbackParams = errors.New("integration: missing callback parameters")
)

// StateTokenLength is the length of generated CSRF state tokens.
// 43 nanoid characters carry roughly 256 bits of entropy.
const StateTokenLength = 43

// DefaultStateTTL is how long an issued state token stays valid
const DefaultStateTTL = 10 * time.Minute

// NewStateToken generates a URL-safe random CSRF state token
func NewStateToken() (string, error) {
	return gonanoid.New(StateTokenLength)
}

// ---------------------------------------------------------------------------
// Value objects
// ---------------------------------------------------------------------------

// PendingAuthorization ties an issued state token to the onboarding session
// that requested it
type PendingAuthorization struct {
	State     string    `json:"state"`
	SessionID string    `json:"session_id"`
	Shop      string    `json:"shop"`
	Platform  string    `json:"platform"`
	IssuedAt  time.Time `json:"issued_at"`
}

// CallbackParams carries the query parameters of a platform OAuth callback
type CallbackParams struct {
	Code  string
	Shop  string
	State string
	// Raw holds every query parameter, including the signature, for HMAC checks
	Raw url.Values
}

// Validate checks that the mandatory parameters are present
func (p CallbackParams) Validate() error {
	if p.Code == "" || p.Shop == "" || p.State == "" {
		return ErrMissingCallbackParams
	}
	return nil
}

// ---------------------------------------------------------------------------
// Ports
// ---------------------------------------------------------------------------

// PlatformAuthorizer builds authorization URLs and verifies callbacks for one
// e-commerce platform
type PlatformAuthorizer interface {
	// Platform returns the platform identifier handled by this authorizer
	Platform() string
	// NormalizeShop canonicalizes a merchant-supplied shop domain
	NormalizeShop(shop string) (string, error)
	// AuthorizationURL builds the consent URL for shop with the given state.
	// Returns ErrPlatformNotConfigured when client credentials are missing.
	AuthorizationURL(shop, state string) (string, error)
	// VerifyCallback checks the callback signature if one is present
	VerifyCallback(params url.Values) error
}

// OAuthStateStore holds pending authorizations until their callback arrives
type OAuthStateStore interface {
	// Save stores a pending authorization under its state token
	Save(ctx context.Context, auth PendingAuthorization, ttl time.Duration) error
	// Consume returns and removes the pending authorization for state.
	// Returns ErrStateNotFound if the state is unknown or expired.
	Consume(ctx context.Context, state string) (*PendingAuthorization, error)
}
