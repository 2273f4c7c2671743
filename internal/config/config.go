package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds settings shared by every command, populated from environment variables.
type Config struct {
	LogLevel  string
	LogFormat string

	// HTTPTimeout bounds each API request. Zero disables the timeout.
	HTTPTimeout time.Duration

	// PushgatewayURL enables pushing run metrics to a Prometheus Pushgateway.
	PushgatewayURL string
}

// SkyConfig configures the NHATS observation report.
type SkyConfig struct {
	Config

	NHATSURL    string
	FetchLimit  int
	ReportLimit int
}

// PollenConfig configures the pollen summary.
type PollenConfig struct {
	Config

	APIKey      string
	GeocoderURL string
	PollenURL   string
	UserAgent   string
}

// MissingError reports a required variable that is unset or empty.
type MissingError struct {
	Var string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("%s is required", e.Var)
}

// Load reads the shared configuration, applying defaults where unset.
func Load() (*Config, error) {
	timeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("HTTP_TIMEOUT", "0s"))
	if err != nil || timeout < 0 {
		return nil, errors.New("invalid HTTP_TIMEOUT")
	}

	cfg := &Config{
		LogLevel:       sharedcfg.EnvOrDefault("LOG_LEVEL", "warn"),
		LogFormat:      sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
		HTTPTimeout:    timeout,
		PushgatewayURL: os.Getenv("PUSHGATEWAY_URL"),
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, errors.New("invalid LOG_LEVEL")
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, errors.New("invalid LOG_FORMAT")
	}

	return cfg, nil
}

// LoadSky reads the sky command configuration.
func LoadSky() (*SkyConfig, error) {
	base, err := Load()
	if err != nil {
		return nil, err
	}

	fetchLimit, err := parsePositiveInt("SKY_FETCH_LIMIT", 5)
	if err != nil {
		return nil, err
	}
	reportLimit, err := parsePositiveInt("SKY_REPORT_LIMIT", 10)
	if err != nil {
		return nil, err
	}

	return &SkyConfig{
		Config:      *base,
		NHATSURL:    sharedcfg.EnvOrDefault("NHATS_URL", "https://ssd-api.jpl.nasa.gov/nhats.api"),
		FetchLimit:  fetchLimit,
		ReportLimit: reportLimit,
	}, nil
}

// LoadPollen reads the pollen command configuration. The provider key comes
// from POLLEN_API_KEY, falling back to the older POLLEN variable; when both
// are empty a *MissingError is returned.
func LoadPollen() (*PollenConfig, error) {
	base, err := Load()
	if err != nil {
		return nil, err
	}

	apiKey := os.Getenv("POLLEN_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("POLLEN")
	}
	if apiKey == "" {
		return nil, &MissingError{Var: "POLLEN_API_KEY"}
	}

	return &PollenConfig{
		Config:      *base,
		APIKey:      apiKey,
		GeocoderURL: sharedcfg.EnvOrDefault("GEOCODER_URL", "https://nominatim.openstreetmap.org/search"),
		PollenURL:   sharedcfg.EnvOrDefault("POLLEN_URL", "https://api.ambeedata.com/latest/pollen/by-lat-lng"),
		UserAgent:   sharedcfg.EnvOrDefault("GEOCODER_USER_AGENT", "cli-tools/1.0 (pollen@local.test)"),
	}, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}
