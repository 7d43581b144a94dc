package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	catalogapp "github.com/napment/onboarding/internal/application/catalog"
	integrationapp "github.com/napment/onboarding/internal/application/integration"
	onboardingapp "github.com/napment/onboarding/internal/application/onboarding"
	"github.com/napment/onboarding/internal/infrastructure/cache"
	"github.com/napment/onboarding/internal/infrastructure/ecommerce"
	"github.com/napment/onboarding/internal/infrastructure/persistence"
	"github.com/napment/onboarding/internal/interfaces/http/dto"
	"github.com/napment/onboarding/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/require"
)

const (
	testClientID     = "napment-client"
	testClientSecret = "hush"
	testRedirectURI  = "https://api.bobbi.live/api/v1/platforms/shopify/callback"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// envelope is the decoded API response with the data left raw
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
}

type testServer struct {
	engine   *gin.Engine
	sessions *persistence.MemorySessionRepository
	shopify  *ecommerce.ShopifyConfig
	clock    *clockwork.FakeClock
}

func newTestServer(t *testing.T, clientID string) *testServer {
	t.Helper()

	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	shopify := ecommerce.NewShopifyConfig(clientID, testClientSecret, testRedirectURI)
	sessions := persistence.NewMemorySessionRepository()
	states := cache.NewInMemoryOAuthStateStore(clock)
	t.Cleanup(func() { _ = states.Close() })

	catalogService := catalogapp.NewCatalogService()
	connectService := integrationapp.NewConnectService(ecommerce.NewShopifyAdapter(shopify), states, sessions, 10*time.Minute)
	connectService.SetClock(clock)

	sessionHandler := NewSessionHandler(onboardingapp.NewSessionService(sessions))
	platformHandler := NewPlatformHandler(catalogService, connectService)
	configHandler := NewConfigHandler(catalogService)
	deployHandler := NewDeployHandler(onboardingapp.NewDeployService(sessions, onboardingapp.DeployConfig{
		StorefrontDomain: "bobbi.live",
		AdminURL:         "https://admin.bobbi.live",
		APIURL:           "https://api.bobbi.live",
	}))

	engine := gin.New()
	engine.Use(middleware.RequestID())
	api := engine.Group("/api/v1")
	api.POST("/sessions", sessionHandler.Create)
	api.GET("/sessions/:id", sessionHandler.Get)
	api.PATCH("/sessions/:id", sessionHandler.Update)
	api.GET("/platforms", platformHandler.List)
	api.POST("/platforms/shopify/auth-url", platformHandler.AuthURL)
	api.GET("/platforms/shopify/callback", platformHandler.Callback)
	api.GET("/config/brand-templates", configHandler.BrandTemplates)
	api.GET("/config/agent-personas", configHandler.AgentPersonas)
	api.POST("/deploy/:id", deployHandler.Deploy)

	return &testServer{engine: engine, sessions: sessions, shopify: shopify, clock: clock}
}

func (s *testServer) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func (s *testServer) createSession(t *testing.T) onboardingapp.SessionResponse {
	t.Helper()
	w, env := s.do(t, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var session onboardingapp.SessionResponse
	require.NoError(t, json.Unmarshal(env.Data, &session))
	return session
}

// connect runs auth-url and a signed callback for sessionID
func (s *testServer) connect(t *testing.T, sessionID, shop string) integrationapp.AuthURLResponse {
	t.Helper()
	w, env := s.do(t, http.MethodPost, "/api/v1/platforms/shopify/auth-url?session_id="+sessionID,
		map[string]string{"shop_domain": shop})
	require.Equal(t, http.StatusOK, w.Code)
	var auth integrationapp.AuthURLResponse
	require.NoError(t, json.Unmarshal(env.Data, &auth))

	w, _ = s.do(t, http.MethodGet, "/api/v1/platforms/shopify/callback?"+s.signedCallback(auth.Shop, auth.State).Encode(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	return auth
}

func (s *testServer) signedCallback(shop, state string) url.Values {
	q := url.Values{
		"code":      {"auth-code"},
		"shop":      {shop},
		"state":     {state},
		"timestamp": {"1772366400"},
	}
	q.Set("hmac", s.shopify.Sign(q))
	return q
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}
