package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Shopify   ShopifyConfig
	Napment   NapmentConfig
	OAuth     OAuthConfig
	Redis     RedisConfig
	Telemetry TelemetryConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name    string
	Version string
	Env     string
	Port    string
}

// IsProduction reports whether the app runs in production
func (a AppConfig) IsProduction() bool {
	return a.Env == "production"
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout           time.Duration
	WriteTimeout          time.Duration
	IdleTimeout           time.Duration
	MaxHeaderBytes        int
	AuthRateLimitEnabled  bool          // Rate limit the OAuth endpoints per client IP
	AuthRateLimitRequests int           // Max OAuth requests per window (default: 20)
	AuthRateLimitWindow   time.Duration // OAuth rate limit window (default: 1 minute)
	CORSAllowOrigins      []string
	CORSAllowMethods      []string
	CORSAllowHeaders      []string
	TrustedProxies        []string
}

// ShopifyConfig holds Shopify OAuth app credentials
type ShopifyConfig struct {
	ClientID     string
	ClientSecret string
	Scopes       string
	RedirectURI  string // defaults to <napment.api_url>/api/v1/platforms/shopify/callback
}

// NapmentConfig holds the public endpoints of the Napment platform
type NapmentConfig struct {
	APIURL           string
	AdminURL         string
	StorefrontDomain string
}

// OAuthConfig holds OAuth state handling settings
type OAuthConfig struct {
	StateStore          string        // memory or redis
	StateTTL            time.Duration // how long an issued state stays valid
	AllowMemoryFallback bool          // fall back to memory when redis is unreachable
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host      string
	Port      int
	Password  string
	DB        int
	KeyPrefix string
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool          // Whether to enable OpenTelemetry
	CollectorEndpoint string        // OTEL Collector endpoint (e.g., "localhost:4317")
	SamplingRatio     float64       // Sampling ratio (0.0-1.0, 1.0 = 100%)
	ServiceName       string        // Service name for traces
	Insecure          bool          // Use insecure (non-TLS) connection (development only)
	MetricsEnabled    bool          // Export metrics through the collector
	MetricsInterval   time.Duration // Metric export interval
}

// envAliases maps config keys to the plain environment variable names
// used by existing deployments
var envAliases = map[string]string{
	"app.env":                 "ENVIRONMENT",
	"app.port":                "API_PORT",
	"http.cors_allow_origins": "CORS_ORIGINS",
	"shopify.client_id":       "SHOPIFY_CLIENT_ID",
	"shopify.client_secret":   "SHOPIFY_CLIENT_SECRET",
	"shopify.scopes":          "SHOPIFY_SCOPES",
	"napment.api_url":         "NAPMENT_API_URL",
}

// Load loads configuration from .env, TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with ONBOARDING_ prefix (e.g., ONBOARDING_SHOPIFY_CLIENT_ID)
// 2. Plain environment variables (SHOPIFY_CLIENT_ID, API_PORT, ...)
// 3. config.toml
// 4. Built-in defaults
//
// A .env file in the working directory is loaded first; it never overrides
// variables already set in the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	// Set config file settings
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Enable environment variable override
	v.SetEnvPrefix("ONBOARDING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, alias := range envAliases {
		prefixed := "ONBOARDING_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, alias); err != nil {
			return nil, fmt.Errorf("error binding env %s: %w", alias, err)
		}
	}

	// Build config struct
	cfg := &Config{
		App: AppConfig{
			Name:    v.GetString("app.name"),
			Version: v.GetString("app.version"),
			Env:     v.GetString("app.env"),
			Port:    v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:           v.GetDuration("http.read_timeout"),
			WriteTimeout:          v.GetDuration("http.write_timeout"),
			IdleTimeout:           v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:        v.GetInt("http.max_header_bytes"),
			AuthRateLimitEnabled:  v.GetBool("http.auth_rate_limit_enabled"),
			AuthRateLimitRequests: v.GetInt("http.auth_rate_limit_requests"),
			AuthRateLimitWindow:   v.GetDuration("http.auth_rate_limit_window"),
			CORSAllowOrigins:      splitList(v.GetStringSlice("http.cors_allow_origins")),
			CORSAllowMethods:      splitList(v.GetStringSlice("http.cors_allow_methods")),
			CORSAllowHeaders:      splitList(v.GetStringSlice("http.cors_allow_headers")),
			TrustedProxies:        splitList(v.GetStringSlice("http.trusted_proxies")),
		},
		Shopify: ShopifyConfig{
			ClientID:     v.GetString("shopify.client_id"),
			ClientSecret: v.GetString("shopify.client_secret"),
			Scopes:       v.GetString("shopify.scopes"),
			RedirectURI:  v.GetString("shopify.redirect_uri"),
		},
		Napment: NapmentConfig{
			APIURL:           v.GetString("napment.api_url"),
			AdminURL:         v.GetString("napment.admin_url"),
			StorefrontDomain: v.GetString("napment.storefront_domain"),
		},
		OAuth: OAuthConfig{
			StateStore:          v.GetString("oauth.state_store"),
			StateTTL:            v.GetDuration("oauth.state_ttl"),
			AllowMemoryFallback: v.GetBool("oauth.allow_memory_fallback"),
		},
		Redis: RedisConfig{
			Host:      v.GetString("redis.host"),
			Port:      v.GetInt("redis.port"),
			Password:  v.GetString("redis.password"),
			DB:        v.GetInt("redis.db"),
			KeyPrefix: v.GetString("redis.key_prefix"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
			MetricsEnabled:    v.GetBool("telemetry.metrics_enabled"),
			MetricsInterval:   v.GetDuration("telemetry.metrics_interval"),
		},
	}

	// Rate limiting is on unless explicitly disabled
	if !v.IsSet("http.auth_rate_limit_enabled") {
		cfg.HTTP.AuthRateLimitEnabled = true
	}
	if !v.IsSet("oauth.allow_memory_fallback") {
		cfg.OAuth.AllowMemoryFallback = true
	}

	// Apply defaults for empty values
	applyDefaults(cfg)

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// splitList flattens list settings. Env vars arrive as one string that viper
// splits on whitespace, so the pieces are rejoined and read either as a JSON
// array or as comma/space separated values.
func splitList(in []string) []string {
	joined := strings.TrimSpace(strings.Join(in, " "))

	var parts []string
	if strings.HasPrefix(joined, "[") {
		if err := json.Unmarshal([]byte(joined), &parts); err != nil {
			parts = strings.Split(strings.Trim(joined, "[]"), ",")
		}
	} else {
		parts = strings.FieldsFunc(joined, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
	}

	var out []string
	for _, part := range parts {
		if p := strings.Trim(strings.TrimSpace(part), `"'`); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "napment-onboarding"
	}
	if cfg.App.Version == "" {
		cfg.App.Version = "1.0.0"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8001"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.AuthRateLimitRequests == 0 {
		cfg.HTTP.AuthRateLimitRequests = 20
	}
	if cfg.HTTP.AuthRateLimitWindow == 0 {
		cfg.HTTP.AuthRateLimitWindow = time.Minute
	}
	if len(cfg.HTTP.CORSAllowOrigins) == 0 {
		cfg.HTTP.CORSAllowOrigins = []string{
			"http://localhost:3001",
			"http://localhost:5173",
			"http://127.0.0.1:3001",
			"http://127.0.0.1:5173",
		}
	}
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	}
	if cfg.Shopify.Scopes == "" {
		cfg.Shopify.Scopes = "read_products,read_orders,read_customers"
	}
	if cfg.Napment.APIURL == "" {
		cfg.Napment.APIURL = "https://api.bobbi.live"
	}
	cfg.Napment.APIURL = strings.TrimRight(cfg.Napment.APIURL, "/")
	if cfg.Napment.AdminURL == "" {
		cfg.Napment.AdminURL = "https://admin.bobbi.live"
	}
	cfg.Napment.AdminURL = strings.TrimRight(cfg.Napment.AdminURL, "/")
	if cfg.Napment.StorefrontDomain == "" {
		cfg.Napment.StorefrontDomain = "bobbi.live"
	}
	if cfg.Shopify.RedirectURI == "" {
		cfg.Shopify.RedirectURI = cfg.Napment.APIURL + "/api/v1/platforms/shopify/callback"
	}
	if cfg.OAuth.StateStore == "" {
		cfg.OAuth.StateStore = "memory"
	}
	if cfg.OAuth.StateTTL == 0 {
		cfg.OAuth.StateTTL = 10 * time.Minute
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = "onboarding:oauth:state:"
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317" // Default gRPC endpoint
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
	if cfg.Telemetry.MetricsInterval == 0 {
		cfg.Telemetry.MetricsInterval = 30 * time.Second
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	switch c.OAuth.StateStore {
	case "memory", "redis":
	default:
		return fmt.Errorf("oauth.state_store must be 'memory' or 'redis', got %q", c.OAuth.StateStore)
	}
	if c.OAuth.StateTTL < 0 {
		return fmt.Errorf("oauth.state_ttl cannot be negative")
	}
	if c.HTTP.AuthRateLimitRequests < 0 {
		return fmt.Errorf("http.auth_rate_limit_requests cannot be negative")
	}

	// Production-specific validations
	if c.App.IsProduction() {
		// CORS must not use wildcard with credentials
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
		// Callbacks cannot be verified without the app secret
		if c.Shopify.ClientID != "" && c.Shopify.ClientSecret == "" {
			return fmt.Errorf("shopify.client_secret is required in production when shopify.client_id is set")
		}
	}

	// Validate telemetry configuration (all environments)
	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}

	return nil
}

// RedisAddr returns host:port for the Redis server
func (r *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
