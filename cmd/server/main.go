package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	catalogapp "github.com/napment/onboarding/internal/application/catalog"
	integrationapp "github.com/napment/onboarding/internal/application/integration"
	onboardingapp "github.com/napment/onboarding/internal/application/onboarding"
	"github.com/napment/onboarding/internal/infrastructure/cache"
	"github.com/napment/onboarding/internal/infrastructure/config"
	"github.com/napment/onboarding/internal/infrastructure/ecommerce"
	"github.com/napment/onboarding/internal/infrastructure/logger"
	"github.com/napment/onboarding/internal/infrastructure/persistence"
	"github.com/napment/onboarding/internal/infrastructure/telemetry"
	"github.com/napment/onboarding/internal/interfaces/http/handler"
	"github.com/napment/onboarding/internal/interfaces/http/middleware"
	"github.com/napment/onboarding/internal/interfaces/http/router"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const apiTitle = "Napment Onboarding API"

//	@title			Napment Onboarding API
//	@version		1.0
//	@description	Merchant onboarding wizard: sessions, platform OAuth connect and deploy

//	@host		localhost:8001
//	@BasePath	/api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(logger.ForEnvironment(cfg.App.Env, cfg.Log.Level, cfg.Log.Format, cfg.Log.Output))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	ctx := context.Background()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}

	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}

	lp, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log = lp.Bridge(log, zapcore.InfoLevel)

	log.Info("Starting "+apiTitle,
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	onboardingMetrics, err := telemetry.NewOnboardingMetrics(mp.Meter("napment.onboarding"))
	if err != nil {
		log.Warn("Onboarding metrics unavailable", zap.Error(err))
	}

	clock := clockwork.NewRealClock()

	// OAuth state store
	stateFactory := cache.NewOAuthStateStoreFactory(cfg.OAuth, cfg.Redis,
		cache.WithLogger(log),
		cache.WithClock(clock),
	)
	stateStore, stateCloser, err := stateFactory.CreateStore(ctx)
	if err != nil {
		log.Fatal("Failed to create OAuth state store", zap.Error(err))
	}
	defer func() {
		if err := stateCloser.Close(); err != nil {
			log.Error("Error closing OAuth state store", zap.Error(err))
		}
	}()

	// Repositories and platform adapters
	sessionRepo := persistence.NewMemorySessionRepository()
	shopifyConfig := ecommerce.NewShopifyConfig(cfg.Shopify.ClientID, cfg.Shopify.ClientSecret, cfg.Shopify.RedirectURI)
	if cfg.Shopify.Scopes != "" {
		shopifyConfig.Scopes = cfg.Shopify.Scopes
	}
	if !shopifyConfig.IsConfigured() {
		log.Warn("Shopify client ID not set; auth-url requests will fail")
	}

	// Application services
	sessionService := onboardingapp.NewSessionService(sessionRepo)
	sessionService.SetMetrics(onboardingMetrics)
	deployService := onboardingapp.NewDeployService(sessionRepo, onboardingapp.DeployConfig{
		StorefrontDomain: cfg.Napment.StorefrontDomain,
		AdminURL:         cfg.Napment.AdminURL,
		APIURL:           cfg.Napment.APIURL,
	})
	deployService.SetMetrics(onboardingMetrics)
	connectService := integrationapp.NewConnectService(
		ecommerce.NewShopifyAdapter(shopifyConfig),
		stateStore,
		sessionRepo,
		cfg.OAuth.StateTTL,
	)
	connectService.SetMetrics(onboardingMetrics)
	connectService.SetClock(clock)
	catalogService := catalogapp.NewCatalogService()

	// Set Gin mode based on environment
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order: request ID first so every later layer can read it,
	// tracing before logging so log lines carry the trace ID.
	engine.Use(middleware.RequestID())
	tracingCfg := middleware.DefaultTracingConfig()
	tracingCfg.ServiceName = cfg.Telemetry.ServiceName
	tracingCfg.Enabled = tp.IsEnabled()
	tracingCfg.TracerProvider = tp
	engine.Use(middleware.TracingWithConfig(tracingCfg))
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: mp,
		Enabled:       mp.IsEnabled(),
	}))
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SecureWithConfig(securityConfig(cfg)))
	engine.Use(middleware.CORSWithConfig(corsConfig(cfg)))
	engine.Use(middleware.BodyLimit(middleware.DefaultMaxBodyBytes))

	var oauthMiddleware []gin.HandlerFunc
	if cfg.HTTP.AuthRateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow, clock)
		oauthMiddleware = append(oauthMiddleware, middleware.RateLimit(limiter))
		log.Info("OAuth rate limiting enabled",
			zap.Int("requests", cfg.HTTP.AuthRateLimitRequests),
			zap.Duration("window", cfg.HTTP.AuthRateLimitWindow),
		)
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	router.RegisterOnboardingRoutes(r, router.OnboardingHandlers{
		Session:  handler.NewSessionHandler(sessionService),
		Platform: handler.NewPlatformHandler(catalogService, connectService),
		Config:   handler.NewConfigHandler(catalogService),
		Deploy:   handler.NewDeployHandler(deployService),
	}, oauthMiddleware...)
	r.Setup()
	router.RegisterSystemRoutes(engine, handler.NewSystemHandler(
		cfg.Telemetry.ServiceName, cfg.App.Version, cfg.App.Env, apiTitle,
	))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	for name, shutdown := range map[string]func(context.Context) error{
		"tracer": tp.Shutdown,
		"meter":  mp.Shutdown,
		"logs":   lp.Shutdown,
	} {
		if err := shutdown(shutdownCtx); err != nil {
			log.Error("Telemetry shutdown failed", zap.String("provider", name), zap.Error(err))
		}
	}

	log.Info("Server exited gracefully")
}

// corsConfig applies the configured origins, methods and headers to the defaults
func corsConfig(cfg *config.Config) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	return cors
}

// securityConfig enables HSTS when the public API is served over HTTPS
func securityConfig(cfg *config.Config) middleware.SecurityConfig {
	sec := middleware.DefaultSecurityConfig()
	sec.HSTSEnabled = cfg.App.IsProduction() && strings.HasPrefix(cfg.Napment.APIURL, "https://")
	return sec
}
