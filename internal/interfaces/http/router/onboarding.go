package router

import (
	"github.com/gin-gonic/gin"
	"github.com/napment/onboarding/internal/interfaces/http/handler"
)

// OnboardingHandlers are the handlers served under the versioned API
type OnboardingHandlers struct {
	Session  *handler.SessionHandler
	Platform *handler.PlatformHandler
	Config   *handler.ConfigHandler
	Deploy   *handler.DeployHandler
}

// RegisterOnboardingRoutes registers the onboarding API groups on r.
// oauthMiddleware runs only on the Shopify connect routes.
func RegisterOnboardingRoutes(r *Router, h OnboardingHandlers, oauthMiddleware ...gin.HandlerFunc) {
	sessionRoutes := NewDomainGroup("/sessions")
	sessionRoutes.POST("", h.Session.Create)
	sessionRoutes.GET("/:id", h.Session.Get)
	sessionRoutes.PATCH("/:id", h.Session.Update)
	r.Register(sessionRoutes)

	platformRoutes := NewDomainGroup("/platforms")
	platformRoutes.GET("", h.Platform.List)
	shopifyRoutes := platformRoutes.Group("/shopify").Use(oauthMiddleware...)
	shopifyRoutes.POST("/auth-url", h.Platform.AuthURL)
	shopifyRoutes.GET("/callback", h.Platform.Callback)
	r.Register(platformRoutes)

	configRoutes := NewDomainGroup("/config")
	configRoutes.GET("/brand-templates", h.Config.BrandTemplates)
	configRoutes.GET("/agent-personas", h.Config.AgentPersonas)
	r.Register(configRoutes)

	deployRoutes := NewDomainGroup("/deploy")
	deployRoutes.POST("/:id", h.Deploy.Deploy)
	r.Register(deployRoutes)
}

// RegisterSystemRoutes registers the unversioned health and root endpoints
func RegisterSystemRoutes(engine *gin.Engine, h *handler.SystemHandler) {
	engine.GET("/health", h.Health)
	engine.GET("/", h.Root)
}
