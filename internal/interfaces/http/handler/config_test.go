package handler

import (
	"net/http"
	"testing"

	catalogapp "github.com/napment/onboarding/internal/application/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigHandler_BrandTemplates(t *testing.T) {
	srv := newTestServer(t, testClientID)

	w, env := srv.do(t, http.MethodGet, "/api/v1/config/brand-templates", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	list := decodeData[catalogapp.BrandTemplateListResponse](t, env)
	require.Len(t, list.Templates, 3)
	assert.Equal(t, "modern-dark", list.Templates[0].ID)
	assert.Equal(t, "clean-light", list.Templates[1].ID)
	assert.Equal(t, "elegant-luxury", list.Templates[2].ID)
	assert.NotEmpty(t, list.Templates[0].Colors.Primary)
}

func TestConfigHandler_AgentPersonas(t *testing.T) {
	srv := newTestServer(t, testClientID)

	w, env := srv.do(t, http.MethodGet, "/api/v1/config/agent-personas", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	list := decodeData[catalogapp.AgentPersonaListResponse](t, env)
	require.Len(t, list.Personas, 3)
	assert.Equal(t, "friendly-helper", list.Personas[0].ID)
	assert.Equal(t, "professional-expert", list.Personas[1].ID)
	assert.Equal(t, "casual-buddy", list.Personas[2].ID)
	for _, p := range list.Personas {
		assert.NotEmpty(t, p.Traits)
		assert.NotEmpty(t, p.Example)
	}
}
