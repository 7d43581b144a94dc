package handler

import (
	"github.com/gin-gonic/gin"
	onboardingapp "github.com/napment/onboarding/internal/application/onboarding"
)

// DeployHandler handles the deploy endpoint
type DeployHandler struct {
	BaseHandler
	deployService *onboardingapp.DeployService
}

// NewDeployHandler creates a new DeployHandler
func NewDeployHandler(deployService *onboardingapp.DeployService) *DeployHandler {
	return &DeployHandler{deployService: deployService}
}

// Deploy godoc
// @Summary      Deploy onboarding session
// @Description  Finalize a connected session and return the storefront, admin and API URLs
// @Tags         deploy
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} dto.Response{data=onboarding.DeployResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /deploy/{id} [post]
func (h *DeployHandler) Deploy(c *gin.Context) {
	resp, err := h.deployService.Deploy(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
