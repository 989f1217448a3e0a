package config

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/jub0bs/cors"
)

// UI server config
type Config struct {
	Environment       string        `env:"ENVIRONMENT,default=dev"`
	Host              string        `env:"HOST,default=0.0.0.0"`
	Port              int           `env:"PORT,default=3000"`
	LogLevel          string        `env:"LOG_LEVEL,default=debug"`
	LogFile           string        `env:"LOG_FILE"` // when set, logs are also written to this file (rotated)
	ReadTimeout       time.Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout      time.Duration `env:"WRITE_TIMEOUT,default=120s"` // unindexed joins can be slow
	IdleTimeout       time.Duration `env:"IDLE_TIMEOUT,default=60s"`
	APIBaseURL        string        `env:"API_BASE_URL,default=http://localhost:5001"`
	TopN              int           `env:"TOP_N,default=5"` // the number of rows the backend returns - display only
	ValidateResponses bool          `env:"VALIDATE_RESPONSES,default=true"`
	SessionSecret     string        `env:"SESSION_SECRET"`
	SessionTTL        time.Duration `env:"SESSION_TTL,default=30m"`
	RateLimitRPS      int32         `env:"RATE_LIMIT_RPS,default=10"`
	RateLimitBurst    int32         `env:"RATE_LIMIT_BURST,default=20"`
	AllowedOrigins    []string      `env:"ALLOWED_ORIGINS,separator=|"`
}

var validEnvs = map[string]bool{
	"dev":     true,
	"test":    true,
	"prod":    true,
	"staging": true,
}

const (
	SessionCookieName      = "indexbench_session"
	MinSessionSecretLength = 32

	CORSMaxAgeInSeconds = 86400 // 24 hours

	ServerShutdownTimeout = 10 * time.Second
	ReadinessTimeout      = 2 * time.Second
)

// NewConfig loads the configuration from the environment and creates the CORS middleware used by the ui-api endpoints
func NewConfig() (*Config, *cors.Middleware, error) {
	var cfg Config

	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}

	if err := validateUIConfig(&cfg); err != nil {
		return nil, nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	corsMiddleware, err := NewCORSMiddleware(cfg.AllowedOrigins)
	if err != nil {
		return nil, nil, fmt.Errorf("CORS configuration failed: %w", err)
	}

	return &cfg, corsMiddleware, nil
}

func validateUIConfig(cfg *Config) error {
	if !validEnvs[cfg.Environment] {
		return fmt.Errorf("invalid environment '%s'. Valid environments: dev, test, staging, prod", cfg.Environment)
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", cfg.Port)
	}

	if cfg.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive, got %v", cfg.ReadTimeout)
	}
	if cfg.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive, got %v", cfg.WriteTimeout)
	}
	if cfg.IdleTimeout <= 0 {
		return fmt.Errorf("idle timeout must be positive, got %v", cfg.IdleTimeout)
	}

	if cfg.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL cannot be empty")
	}
	u, err := url.ParseRequestURI(cfg.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("API_BASE_URL is not a valid URL: %s", cfg.APIBaseURL)
	}
	if u.Path != "" && u.Path != "/" {
		return fmt.Errorf("API_BASE_URL should not include a path: %s", cfg.APIBaseURL)
	}
	cfg.APIBaseURL = strings.TrimSuffix(cfg.APIBaseURL, "/")

	if cfg.TopN < 1 {
		return fmt.Errorf("TOP_N must be at least 1, got %d", cfg.TopN)
	}

	if cfg.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %v", cfg.SessionTTL)
	}

	if cfg.Environment == "prod" || cfg.Environment == "staging" {
		if len(cfg.SessionSecret) < MinSessionSecretLength {
			return fmt.Errorf("SESSION_SECRET must be at least %d characters in %s environment", MinSessionSecretLength, cfg.Environment)
		}
		if len(cfg.AllowedOrigins) == 0 {
			return fmt.Errorf("ALLOWED_ORIGINS must be set in %v", cfg.Environment)
		}
		if cfg.AllowedOrigins[0] == "*" {
			return fmt.Errorf("ALLOWED_ORIGINS must not be set to '*' in %v", cfg.Environment)
		}
	}

	// default to all origins when not in prod/staging
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}

	return nil
}

// NewCORSMiddleware creates the CORS middleware for the read only ui-api endpoints
func NewCORSMiddleware(allowedOrigins []string) (*cors.Middleware, error) {
	origins := make([]string, len(allowedOrigins))
	for i, origin := range allowedOrigins {
		origins[i] = strings.TrimSpace(origin)
	}

	corsConfig := cors.Config{
		Origins: origins,
		Methods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodOptions,
		},
		RequestHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Requested-With",
		},
		MaxAgeInSeconds: CORSMaxAgeInSeconds,
	}

	return cors.NewMiddleware(corsConfig)
}
