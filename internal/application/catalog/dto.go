package catalog

// PlatformResponse describes an e-commerce platform the merchant can connect
type PlatformResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Supported   bool     `json:"supported"`
	Features    []string `json:"features"`
}

// PlatformListResponse wraps the platform catalog
type PlatformListResponse struct {
	Platforms []PlatformResponse `json:"platforms"`
}

// BrandColors is the palette of a brand template
type BrandColors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Background string `json:"background"`
	Surface    string `json:"surface"`
}

// BrandTemplateResponse describes a storefront brand template
type BrandTemplateResponse struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Colors      BrandColors `json:"colors"`
}

// BrandTemplateListResponse wraps the brand template catalog
type BrandTemplateListResponse struct {
	Templates []BrandTemplateResponse `json:"templates"`
}

// AgentPersonaResponse describes a shopping assistant persona
type AgentPersonaResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Traits      []string `json:"traits"`
	Example     string   `json:"example"`
}

// AgentPersonaListResponse wraps the agent persona catalog
type AgentPersonaListResponse struct {
	Personas []AgentPersonaResponse `json:"personas"`
}
