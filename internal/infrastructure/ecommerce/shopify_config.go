package ecommerce

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/url"
	"sort"
	"strings"

	"github.com/napment/onboarding/internal/domain/onboarding"
)

// ShopifyConfig holds configuration for Shopify OAuth integration
type ShopifyConfig struct {
	// ClientID is the app's API key from the Shopify partner dashboard
	ClientID string
	// ClientSecret is the app's API secret key, used for HMAC verification
	ClientSecret string
	// Scopes is the comma-separated list of requested access scopes
	Scopes string
	// RedirectURI is where Shopify sends the merchant after consent
	RedirectURI string
}

const (
	// ShopifyDomainSuffix is the canonical suffix of every Shopify shop host
	ShopifyDomainSuffix = onboarding.ShopifyDomainSuffix
	// DefaultShopifyScopes is requested when no scopes are configured
	DefaultShopifyScopes = "read_products,read_orders,read_customers"
	// shopifyAuthorizePath is the OAuth consent endpoint on the shop host
	shopifyAuthorizePath = "/admin/oauth/authorize"
)

// Errors for Shopify configuration
var (
	ErrShopifyConfigMissingClientID     = errors.New("shopify: client id is required")
	ErrShopifyConfigMissingClientSecret = errors.New("shopify: client secret is required")
	ErrShopifyConfigMissingRedirectURI  = errors.New("shopify: redirect uri is required")
)

// NewShopifyConfig creates a new Shopify configuration with defaults
func NewShopifyConfig(clientID, clientSecret, redirectURI string) *ShopifyConfig {
	return &ShopifyConfig{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scopes:       DefaultShopifyScopes,
		RedirectURI:  redirectURI,
	}
}

// Validate validates the Shopify configuration for building authorization URLs
func (c *ShopifyConfig) Validate() error {
	if c.ClientID == "" {
		return ErrShopifyConfigMissingClientID
	}
	if c.RedirectURI == "" {
		return ErrShopifyConfigMissingRedirectURI
	}
	if c.Scopes == "" {
		c.Scopes = DefaultShopifyScopes
	}
	return nil
}

// IsConfigured reports whether a client ID is present
func (c *ShopifyConfig) IsConfigured() bool {
	return c != nil && c.ClientID != ""
}

// Sign computes the Shopify HMAC-SHA256 signature of query parameters.
// Parameters are sorted by key and joined as key=value pairs with '&';
// the "hmac" and legacy "signature" parameters are excluded.
func (c *ShopifyConfig) Sign(params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == "hmac" || k == "signature" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for i, k := range keys {
		if i > 0 {
			builder.WriteByte('&')
		}
		builder.WriteString(k)
		builder.WriteByte('=')
		builder.WriteString(strings.Join(params[k], ","))
	}

	h := hmac.New(sha256.New, []byte(c.ClientSecret))
	h.Write([]byte(builder.String()))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifySignature checks the "hmac" parameter against the computed signature
// in constant time
func (c *ShopifyConfig) VerifySignature(params url.Values) error {
	if c.ClientSecret == "" {
		return ErrShopifyConfigMissingClientSecret
	}
	given := params.Get("hmac")
	if given == "" {
		return errors.New("shopify: hmac parameter missing")
	}
	expected := c.Sign(params)
	if !hmac.Equal([]byte(strings.ToLower(given)), []byte(expected)) {
		return errors.New("shopify: hmac mismatch")
	}
	return nil
}
