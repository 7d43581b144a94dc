package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemHandler(t *testing.T) {
	h := NewSystemHandler("napment-onboarding", "1.0.0", "development", "Napment Onboarding API")
	engine := gin.New()
	engine.GET("/health", h.Health)
	engine.GET("/", h.Root)

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, HealthResponse{
			Status:      "healthy",
			Service:     "napment-onboarding",
			Version:     "1.0.0",
			Environment: "development",
		}, resp)
	})

	t.Run("root", func(t *testing.T) {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp RootResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Napment Onboarding API", resp.Message)
		assert.Equal(t, "/health", resp.Health)
	})
}
