package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	DefaultGeocodeURL   = "https://maps.apigw.ntruss.com/map-geocode/v2/geocode"
	DefaultDirectionURL = "https://maps.apigw.ntruss.com/map-direction/v1/driving"

	EvaluatorNCP       = "ncp"
	EvaluatorHaversine = "haversine"
)

// Config is built once at startup and passed to the adapters that need it.
type Config struct {
	Port     string
	LogLevel string

	APIKeyID string
	APIKey   string

	GeocodeURL   string
	DirectionURL string

	// Minimum spacing between outbound provider calls.
	RequestInterval time.Duration
	HTTPTimeout     time.Duration

	RouteEvaluator string

	DBDriver    string
	DBPath      string
	DatabaseURL string
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads the configuration from the environment.
// Credentials are required; everything else has a default.
func Load() (Config, error) {
	cfg := Config{
		Port:           Get("PORT", "8080"),
		LogLevel:       strings.ToLower(Get("LOG_LEVEL", "info")),
		APIKeyID:       Get("NCP_API_KEY_ID", ""),
		APIKey:         Get("NCP_API_KEY", ""),
		GeocodeURL:     Get("GEOCODE_URL", DefaultGeocodeURL),
		DirectionURL:   Get("DIRECTION_URL", DefaultDirectionURL),
		RouteEvaluator: strings.ToLower(Get("ROUTE_EVALUATOR", EvaluatorNCP)),
		DBDriver:       strings.ToLower(Get("DB_DRIVER", "sqlite")),
		DBPath:         Get("DB_PATH", "data/app.db"),
		DatabaseURL:    Get("DATABASE_URL", ""),
	}

	var err error
	if cfg.RequestInterval, err = getDuration("REQUEST_INTERVAL", 200*time.Millisecond); err != nil {
		return Config{}, err
	}
	if cfg.HTTPTimeout, err = getDuration("HTTP_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// DSN returns the data source name for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == "postgres" {
		return c.DatabaseURL
	}
	return c.DBPath
}

func (c Config) validate() error {
	var errs []error

	if c.APIKeyID == "" {
		errs = append(errs, errors.New("NCP_API_KEY_ID is required"))
	}
	if c.APIKey == "" {
		errs = append(errs, errors.New("NCP_API_KEY is required"))
	}

	switch c.RouteEvaluator {
	case EvaluatorNCP, EvaluatorHaversine:
	default:
		errs = append(errs, fmt.Errorf("ROUTE_EVALUATOR must be %q or %q, got %q", EvaluatorNCP, EvaluatorHaversine, c.RouteEvaluator))
	}

	switch c.DBDriver {
	case "sqlite":
	case "postgres":
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when DB_DRIVER=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", c.DBDriver))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel))
	}

	if c.RequestInterval < 0 {
		errs = append(errs, errors.New("REQUEST_INTERVAL must not be negative"))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, errors.New("HTTP_TIMEOUT must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("load config: %w", errors.Join(errs...))
	}
	return nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("load config: parse %s=%q: %w", key, raw, err)
	}
	return d, nil
}
