package integration

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// AuthURLRequest asks for a platform authorization URL
type AuthURLRequest struct {
	ShopDomain string `json:"shop_domain" binding:"required,max=255"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// AuthURLResponse carries the consent URL the merchant is redirected to
type AuthURLResponse struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
	Shop    string `json:"shop"`
}

// CallbackResponse is returned once a platform callback is accepted
type CallbackResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Shop      string `json:"shop"`
	SessionID string `json:"session_id"`
}
