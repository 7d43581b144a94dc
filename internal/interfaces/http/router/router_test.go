package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	group := NewDomainGroup("/test")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	r.Register(group)
	r.Setup()

	w := serve(engine, http.MethodGet, "/api/v1/test/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestRouterUse(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine).Use(func(c *gin.Context) {
		c.Header("X-API", "v1")
		c.Next()
	})

	group := NewDomainGroup("/test")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	r.Register(group)
	r.Setup()
	engine.GET("/outside", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	assert.Equal(t, "v1", serve(engine, http.MethodGet, "/api/v1/test/ping").Header().Get("X-API"))
	assert.Empty(t, serve(engine, http.MethodGet, "/outside").Header().Get("X-API"))
}

func TestDomainGroup(t *testing.T) {
	t.Run("methods", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("/items")
		g.GET("", func(c *gin.Context) { c.String(http.StatusOK, "list") })
		g.POST("", func(c *gin.Context) { c.String(http.StatusCreated, "create") })
		g.PATCH("/:id", func(c *gin.Context) { c.String(http.StatusOK, "patch "+c.Param("id")) })
		g.RegisterRoutes(engine.Group("/api/v1"))

		assert.Equal(t, "list", serve(engine, http.MethodGet, "/api/v1/items").Body.String())
		assert.Equal(t, http.StatusCreated, serve(engine, http.MethodPost, "/api/v1/items").Code)
		assert.Equal(t, "patch 7", serve(engine, http.MethodPatch, "/api/v1/items/7").Body.String())
	})

	t.Run("subgroup middleware stays in the subgroup", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("/platforms")
		g.GET("", func(c *gin.Context) { c.String(http.StatusOK, "list") })
		sub := g.Group("/shopify").Use(func(c *gin.Context) {
			c.AbortWithStatus(http.StatusTooManyRequests)
		})
		sub.GET("/callback", func(c *gin.Context) { c.String(http.StatusOK, "cb") })
		g.RegisterRoutes(engine.Group("/api/v1"))

		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/platforms").Code)
		assert.Equal(t, http.StatusTooManyRequests, serve(engine, http.MethodGet, "/api/v1/platforms/shopify/callback").Code)
	})
}
