package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

type AppConfig struct {
	// The provider credential is injected, never compiled in.
	OpenWeatherAPIKey  string `validate:"required"`
	OpenWeatherBaseURL string `validate:"required,url"`
	IconBaseURL        string `validate:"required,url"`

	// HTTPTimeout bounds a single provider request; LookupTimeout bounds a
	// whole lookup (both requests plus rate limiting).
	HTTPTimeout   time.Duration `validate:"gt=0"`
	LookupTimeout time.Duration `validate:"gt=0"`

	// Outbound resilience.
	ProviderMaxRetries int     `validate:"gte=0,lte=10"`
	ProviderRateLimit  float64 `validate:"gt=0"`
	ProviderBurst      int     `validate:"gte=1"`

	// Session store retention.
	SessionMaxCount      int           `validate:"gte=0"` // 0 = unlimited
	SessionMaxAge        time.Duration `validate:"gte=0"` // 0 = never expire
	SessionPruneInterval time.Duration `validate:"gt=0"`

	Port string `validate:"required,numeric"`
}

// Load reads configuration from the environment, after loading envFile
// (if present), with sensible defaults.
func Load(envFile string) (*AppConfig, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			log.Printf("INFO: No .env file found or error loading it: %v", err)
		}
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.OpenWeatherBaseURL = getenvDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5")
	cfg.IconBaseURL = getenvDefault("OPENWEATHER_ICON_URL", "https://openweathermap.org/img/wn")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.LookupTimeout, err = getenvDuration("LOOKUP_TIMEOUT", "15s"); err != nil {
		return nil, err
	}

	if cfg.ProviderMaxRetries, err = getenvInt("PROVIDER_MAX_RETRIES", 0); err != nil {
		return nil, err
	}
	if cfg.ProviderRateLimit, err = getenvFloat("PROVIDER_RATE_LIMIT", 1); err != nil {
		return nil, err
	}
	if cfg.ProviderBurst, err = getenvInt("PROVIDER_BURST", 5); err != nil {
		return nil, err
	}

	if cfg.SessionMaxCount, err = getenvInt("SESSION_MAX_COUNT", 1000); err != nil {
		return nil, err
	}
	if cfg.SessionMaxAge, err = getenvDuration("SESSION_MAX_AGE", "30m"); err != nil {
		return nil, err
	}
	if cfg.SessionPruneInterval, err = getenvDuration("SESSION_PRUNE_INTERVAL", "5m"); err != nil {
		return nil, err
	}

	cfg.Port = getenvDefault("PORT", "8080")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
