// Package config reads the service configuration from the environment.
// Secrets (provider API keys) are only ever read here, never hard-coded.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the full service configuration.
type Config struct {
	Port          string
	Provider      string // "weatherapi" or "openweathermap"
	APIKey        string
	APIBaseURL    string
	DefaultCity   string
	ForecastDays  int
	CacheTTL      time.Duration
	GazetteerPath string
	ExcludeToday  bool
	Debounce      time.Duration
	RateRPS       float64
	RateBurst     int
}

// Load reads configuration from the environment, applying defaults for
// everything but the API key.
func Load() Config {
	cfg := Config{
		Port:          getEnvOrDefault("PORT", "8080"),
		Provider:      getEnvOrDefault("WEATHER_PROVIDER", "weatherapi"),
		APIKey:        os.Getenv("WEATHER_API_KEY"),
		APIBaseURL:    os.Getenv("WEATHER_API_URL"),
		DefaultCity:   getEnvOrDefault("DEFAULT_CITY", "Mumbai"),
		ForecastDays:  10,
		GazetteerPath: os.Getenv("GAZETTEER_PATH"),
		ExcludeToday:  true,
		Debounce:      600 * time.Millisecond,
		RateBurst:     3,
	}

	if v := os.Getenv("FORECAST_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ForecastDays = n
		}
	}

	// Off unless configured; each user action stays a fresh attempt.
	if v := os.Getenv("CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.CacheTTL = d
		}
	}

	if v := os.Getenv("SEARCH_DEBOUNCE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Debounce = d
		}
	}

	if v := os.Getenv("EXCLUDE_TODAY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.ExcludeToday = b
		}
	}

	if v := os.Getenv("PROVIDER_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.RateRPS = f
		}
	}
	if v := os.Getenv("PROVIDER_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RateBurst = n
		}
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
