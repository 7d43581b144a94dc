package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthStatusHealthy is reported by the health endpoint
const HealthStatusHealthy = "healthy"

// SystemHandler serves the unversioned health and root endpoints.
// Their bodies are plain JSON for load balancers.
type SystemHandler struct {
	service     string
	version     string
	environment string
	title       string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(service, version, environment, title string) *SystemHandler {
	return &SystemHandler{
		service:     service,
		version:     version,
		environment: environment,
		title:       title,
	}
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

// RootResponse is the body of GET /
type RootResponse struct {
	Message string `json:"message"`
	Health  string `json:"health"`
}

// Health godoc
// @Summary      Health check
// @Description  Report liveness. Served outside /api/v1.
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:      HealthStatusHealthy,
		Service:     h.service,
		Version:     h.version,
		Environment: h.environment,
	})
}

// Root godoc
// @Summary      Service info
// @Description  Name the service and point at the health endpoint. Served outside /api/v1.
// @Tags         system
// @Produce      json
// @Success      200 {object} RootResponse
// @Router       / [get]
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, RootResponse{
		Message: h.title,
		Health:  "/health",
	})
}
