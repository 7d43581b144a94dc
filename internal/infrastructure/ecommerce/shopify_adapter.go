package ecommerce

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/napment/onboarding/internal/domain/integration"
	"github.com/napment/onboarding/internal/domain/onboarding"
)

// shopHostPattern matches a canonical <name>.myshopify.com host
var shopHostPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*\.myshopify\.com$`)

// ShopifyAdapter implements integration.PlatformAuthorizer for Shopify
type ShopifyAdapter struct {
	config *ShopifyConfig
}

// NewShopifyAdapter creates a new Shopify adapter.
// An unconfigured adapter is valid; it fails per request with
// integration.ErrPlatformNotConfigured.
func NewShopifyAdapter(config *ShopifyConfig) *ShopifyAdapter {
	if config == nil {
		config = &ShopifyConfig{}
	}
	if config.Scopes == "" {
		config.Scopes = DefaultShopifyScopes
	}
	return &ShopifyAdapter{config: config}
}

// Platform returns the platform identifier this adapter handles
func (a *ShopifyAdapter) Platform() string {
	return onboarding.PlatformShopify.String()
}

// NormalizeShop canonicalizes a shop domain to <shop>.myshopify.com.
// The suffix is appended only if not already present.
func (a *ShopifyAdapter) NormalizeShop(shop string) (string, error) {
	return NormalizeShopDomain(shop)
}

// NormalizeShopDomain trims, lowercases and strips the scheme and trailing
// slash from shop, then appends ShopifyDomainSuffix when missing
func NormalizeShopDomain(shop string) (string, error) {
	clean := strings.ToLower(strings.TrimSpace(shop))
	clean = strings.TrimPrefix(clean, "https://")
	clean = strings.TrimPrefix(clean, "http://")
	clean = strings.TrimRight(clean, "/")

	if clean == "" {
		return "", fmt.Errorf("%w: empty", integration.ErrInvalidShopDomain)
	}
	if !strings.HasSuffix(clean, ShopifyDomainSuffix) {
		clean += ShopifyDomainSuffix
	}
	if !shopHostPattern.MatchString(clean) {
		return "", fmt.Errorf("%w: %s", integration.ErrInvalidShopDomain, shop)
	}
	return clean, nil
}

// AuthorizationURL builds https://<shop>/admin/oauth/authorize with the
// configured client ID, scopes and redirect URI
func (a *ShopifyAdapter) AuthorizationURL(shop, state string) (string, error) {
	if !a.config.IsConfigured() {
		return "", integration.ErrPlatformNotConfigured
	}
	if err := a.config.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", integration.ErrPlatformNotConfigured, err)
	}

	host, err := NormalizeShopDomain(shop)
	if err != nil {
		return "", err
	}

	params := url.Values{}
	params.Set("client_id", a.config.ClientID)
	params.Set("scope", a.config.Scopes)
	params.Set("redirect_uri", a.config.RedirectURI)
	params.Set("state", state)

	u := url.URL{
		Scheme:   "https",
		Host:     host,
		Path:     shopifyAuthorizePath,
		RawQuery: params.Encode(),
	}
	return u.String(), nil
}

// VerifyCallback verifies the callback HMAC when the "hmac" parameter is
// present. Unsigned callbacks are accepted; the state token still guards them.
func (a *ShopifyAdapter) VerifyCallback(params url.Values) error {
	if params.Get("hmac") == "" {
		return nil
	}
	if err := a.config.VerifySignature(params); err != nil {
		return fmt.Errorf("%w: %v", integration.ErrInvalidSignature, err)
	}
	return nil
}

// compile-time check
var _ integration.PlatformAuthorizer = (*ShopifyAdapter)(nil)
