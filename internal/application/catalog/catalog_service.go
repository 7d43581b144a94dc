package catalog

import (
	"slices"

	"github.com/napment/onboarding/internal/domain/onboarding"
)

// CatalogService serves the static onboarding catalogs.
// Every call returns a fresh copy so callers may modify the result.
type CatalogService struct{}

// NewCatalogService creates a new CatalogService
func NewCatalogService() *CatalogService {
	return &CatalogService{}
}

// ListPlatforms returns the connectable e-commerce platforms
func (s *CatalogService) ListPlatforms() PlatformListResponse {
	out := make([]PlatformResponse, len(platforms))
	for i, p := range platforms {
		p.Features = slices.Clone(p.Features)
		out[i] = p
	}
	return PlatformListResponse{Platforms: out}
}

// ListBrandTemplates returns the brand templates
func (s *CatalogService) ListBrandTemplates() BrandTemplateListResponse {
	return BrandTemplateListResponse{Templates: slices.Clone(brandTemplates)}
}

// ListAgentPersonas returns the agent personas
func (s *CatalogService) ListAgentPersonas() AgentPersonaListResponse {
	out := make([]AgentPersonaResponse, len(agentPersonas))
	for i, p := range agentPersonas {
		p.Traits = slices.Clone(p.Traits)
		out[i] = p
	}
	return AgentPersonaListResponse{Personas: out}
}

var platforms = []PlatformResponse{
	{
		ID:          onboarding.PlatformShopify.String(),
		Name:        "Shopify",
		Description: "Maailman suosituin verkkokauppa-alusta",
		Icon:        "shopify",
		Supported:   true,
		Features: []string{
			"Tuotteiden synkronointi",
			"Tilausten hallinta",
			"Asiakastiedot",
			"Teeman integraatio",
		},
	},
	{
		ID:          onboarding.PlatformWooCommerce.String(),
		Name:        "WooCommerce",
		Description: "WordPress-pohjainen verkkokauppa",
		Icon:        "woocommerce",
		Supported:   true,
		Features: []string{
			"REST API -integraatio",
			"Tuotteiden synkronointi",
			"Tilausten hallinta",
		},
	},
	{
		ID:          onboarding.PlatformMagento.String(),
		Name:        "Magento",
		Description: "Enterprise-tason verkkokauppa",
		Icon:        "magento",
		Supported:   false,
		Features:    []string{"Tulossa pian..."},
	},
	{
		ID:          onboarding.PlatformCustom.String(),
		Name:        "Oma alusta",
		Description: "Räätälöity API-integraatio",
		Icon:        "code",
		Supported:   true,
		Features: []string{
			"REST API",
			"GraphQL",
			"Webhook-tuki",
		},
	},
}

var brandTemplates = []BrandTemplateResponse{
	{
		ID:          "modern-dark",
		Name:        "Moderni tumma",
		Description: "Tyylikäs tumma teema",
		Colors: BrandColors{
			Primary:    "#8B5CF6",
			Secondary:  "#EC4899",
			Background: "#0F0F0F",
			Surface:    "#1A1A1A",
		},
	},
	{
		ID:          "clean-light",
		Name:        "Puhdas vaalea",
		Description: "Minimalistinen vaalea teema",
		Colors: BrandColors{
			Primary:    "#2563EB",
			Secondary:  "#10B981",
			Background: "#FFFFFF",
			Surface:    "#F3F4F6",
		},
	},
	{
		ID:          "elegant-luxury",
		Name:        "Elegantti luksus",
		Description: "Ylellinen kulta-musta teema",
		Colors: BrandColors{
			Primary:    "#D4AF37",
			Secondary:  "#C0C0C0",
			Background: "#0A0A0A",
			Surface:    "#1F1F1F",
		},
	},
}

var agentPersonas = []AgentPersonaResponse{
	{
		ID:          "friendly-helper",
		Name:        "Ystävällinen avustaja",
		Description: "Lämmin ja avulias tyyli",
		Traits:      []string{"Ystävällinen", "Kärsivällinen", "Kannustava"},
		Example:     "Hei! Miten voin auttaa sinua löytämään täydellisen tuotteen? 😊",
	},
	{
		ID:          "professional-expert",
		Name:        "Ammattilainen",
		Description: "Asiantunteva ja tehokas",
		Traits:      []string{"Asiantunteva", "Tehokas", "Asiallinen"},
		Example:     "Tervetuloa! Kerro mitä etsit, niin löydän sinulle parhaat vaihtoehdot.",
	},
	{
		ID:          "casual-buddy",
		Name:        "Rento kaveri",
		Description: "Rento ja humoristinen tyyli",
		Traits:      []string{"Rento", "Humoristinen", "Helposti lähestyttävä"},
		Example:     "Moro! Mitäs täältä tänään lähetään hakemaan? 🛒",
	},
}
