package onboarding

import (
	"time"

	"github.com/napment/onboarding/internal/domain/onboarding"
)

// CreateSessionRequest represents a request to start an onboarding session
type CreateSessionRequest struct {
	Email *string `json:"email" binding:"omitempty,max=254"`
}

// UpdateSessionRequest represents a partial session update.
// Absent or null fields are left unchanged.
type UpdateSessionRequest struct {
	CurrentStep *string        `json:"current_step" binding:"omitempty,oneof=welcome platform_select platform_connect brand_config agent_config review complete"`
	Platform    *string        `json:"platform" binding:"omitempty,oneof=shopify woocommerce magento custom"`
	ShopName    *string        `json:"shop_name" binding:"omitempty,max=200"`
	ShopDomain  *string        `json:"shop_domain" binding:"omitempty,max=255"`
	Email       *string        `json:"email" binding:"omitempty,max=254"`
	BrandConfig map[string]any `json:"brand_config"`
	AgentConfig map[string]any `json:"agent_config"`
}

// ToDomain converts the request into a domain update
func (r UpdateSessionRequest) ToDomain() onboarding.SessionUpdate {
	u := onboarding.SessionUpdate{
		ShopName:    r.ShopName,
		ShopDomain:  r.ShopDomain,
		Email:       r.Email,
		BrandConfig: r.BrandConfig,
		AgentConfig: r.AgentConfig,
	}
	if r.CurrentStep != nil {
		step := onboarding.Step(*r.CurrentStep)
		u.CurrentStep = &step
	}
	if r.Platform != nil {
		platform := onboarding.Platform(*r.Platform)
		u.Platform = &platform
	}
	return u
}

// SessionResponse represents an onboarding session in API responses
type SessionResponse struct {
	SessionID   string         `json:"session_id"`
	CurrentStep string         `json:"current_step"`
	Platform    *string        `json:"platform"`
	ShopName    *string        `json:"shop_name"`
	ShopDomain  *string        `json:"shop_domain"`
	Email       *string        `json:"email"`
	IsConnected bool           `json:"is_connected"`
	BrandConfig map[string]any `json:"brand_config"`
	AgentConfig map[string]any `json:"agent_config"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// ToSessionResponse converts a domain session to a response DTO
func ToSessionResponse(s *onboarding.Session) SessionResponse {
	resp := SessionResponse{
		SessionID:   s.ID,
		CurrentStep: s.CurrentStep.String(),
		ShopName:    s.ShopName,
		ShopDomain:  s.ShopDomain,
		Email:       s.Email,
		IsConnected: s.IsConnected,
		BrandConfig: s.BrandConfig,
		AgentConfig: s.AgentConfig,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.Platform != nil {
		p := s.Platform.String()
		resp.Platform = &p
	}
	return resp
}

// DeployURLs are the endpoints of a deployed storefront assistant
type DeployURLs struct {
	Storefront string `json:"storefront"`
	Admin      string `json:"admin"`
	API        string `json:"api"`
}

// DeployResponse is the result of a deploy request
type DeployResponse struct {
	Status    string     `json:"status"`
	SessionID string     `json:"session_id"`
	Shop      *string    `json:"shop"`
	URLs      DeployURLs `json:"urls"`
	NextSteps []string   `json:"next_steps"`
}
