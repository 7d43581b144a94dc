package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/napment/onboarding/internal/application/catalog"
)

// ConfigHandler serves the brand template and agent persona catalogs
type ConfigHandler struct {
	BaseHandler
	catalogService *catalogapp.CatalogService
}

// NewConfigHandler creates a new ConfigHandler
func NewConfigHandler(catalogService *catalogapp.CatalogService) *ConfigHandler {
	return &ConfigHandler{catalogService: catalogService}
}

// BrandTemplates godoc
// @Summary      List brand templates
// @Description  List the predefined brand templates
// @Tags         config
// @Produce      json
// @Success      200 {object} dto.Response{data=catalog.BrandTemplateListResponse}
// @Router       /config/brand-templates [get]
func (h *ConfigHandler) BrandTemplates(c *gin.Context) {
	h.Success(c, h.catalogService.ListBrandTemplates())
}

// AgentPersonas godoc
// @Summary      List agent personas
// @Description  List the predefined agent personas
// @Tags         config
// @Produce      json
// @Success      200 {object} dto.Response{data=catalog.AgentPersonaListResponse}
// @Router       /config/agent-personas [get]
func (h *ConfigHandler) AgentPersonas(c *gin.Context) {
	h.Success(c, h.catalogService.ListAgentPersonas())
}
