package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/napment/onboarding/internal/application/catalog"
	integrationapp "github.com/napment/onboarding/internal/application/integration"
	"github.com/napment/onboarding/internal/interfaces/http/middleware"
)

// authURLQuery is the query string of the auth-url endpoint
type authURLQuery struct {
	SessionID string `form:"session_id" binding:"required,max=64"`
}

// PlatformHandler handles the platform catalog and OAuth connect endpoints
type PlatformHandler struct {
	BaseHandler
	catalogService *catalogapp.CatalogService
	connectService *integrationapp.ConnectService
}

// NewPlatformHandler creates a new PlatformHandler
func NewPlatformHandler(catalogService *catalogapp.CatalogService, connectService *integrationapp.ConnectService) *PlatformHandler {
	return &PlatformHandler{
		catalogService: catalogService,
		connectService: connectService,
	}
}

// List godoc
// @Summary      List platforms
// @Description  List the supported e-commerce platforms
// @Tags         platforms
// @Produce      json
// @Success      200 {object} dto.Response{data=catalog.PlatformListResponse}
// @Router       /platforms [get]
func (h *PlatformHandler) List(c *gin.Context) {
	h.Success(c, h.catalogService.ListPlatforms())
}

// AuthURL godoc
// @Summary      Build Shopify authorization URL
// @Description  Build the Shopify consent URL for a shop and remember the issued OAuth state
// @Tags         platforms
// @Accept       json
// @Produce      json
// @Param        session_id query string true "Session ID"
// @Param        request body integration.AuthURLRequest true "Shop to connect"
// @Success      200 {object} dto.Response{data=integration.AuthURLResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      429 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /platforms/shopify/auth-url [post]
func (h *PlatformHandler) AuthURL(c *gin.Context) {
	var query authURLQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	var req integrationapp.AuthURLRequest
	if !h.BindJSON(c, &req, false) {
		return
	}

	resp, err := h.connectService.BuildAuthURL(c.Request.Context(), query.SessionID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Callback godoc
// @Summary      Shopify OAuth callback
// @Description  Accept the redirect back from Shopify and mark the session connected. The authorization code is not exchanged.
// @Tags         platforms
// @Produce      json
// @Param        code query string true "Authorization code"
// @Param        shop query string true "Shop domain"
// @Param        state query string true "OAuth state"
// @Param        hmac query string false "Shopify signature"
// @Success      200 {object} dto.Response{data=integration.CallbackResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      429 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /platforms/shopify/callback [get]
func (h *PlatformHandler) Callback(c *gin.Context) {
	resp, err := h.connectService.HandleCallback(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
