package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"ksfit/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Analysis AnalysisConfig
	Server   ServerConfig
	Chart    ChartConfig
	Upload   UploadConfig
}

// AnalysisConfig holds the remote analysis service settings
type AnalysisConfig struct {
	BaseURL string
	Path    string
	// Timeout of zero means the client waits until the network layer resolves
	Timeout time.Duration
}

// Endpoint returns the full URL of the analyze endpoint
func (a AnalysisConfig) Endpoint() string {
	return strings.TrimRight(a.BaseURL, "/") + "/" + strings.TrimLeft(a.Path, "/")
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// ChartConfig holds chart canvas dimensions in pixels
type ChartConfig struct {
	Width  int
	Height int
}

// UploadConfig holds file channel limits
type UploadConfig struct {
	MaxBytes int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	timeout, err := getEnvDuration("ANALYSIS_TIMEOUT", 0)
	if err != nil {
		return nil, err
	}
	width, err := getEnvInt("CHART_WIDTH", 800)
	if err != nil {
		return nil, err
	}
	height, err := getEnvInt("CHART_HEIGHT", 400)
	if err != nil {
		return nil, err
	}
	maxMB, err := getEnvInt("MAX_UPLOAD_MB", 10)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Analysis: AnalysisConfig{
			BaseURL: getEnvOrDefault("ANALYSIS_URL", "http://localhost:5000"),
			Path:    getEnvOrDefault("ANALYSIS_PATH", "/analyze"),
			Timeout: timeout,
		},
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Chart: ChartConfig{
			Width:  width,
			Height: height,
		},
		Upload: UploadConfig{
			MaxBytes: int64(maxMB) * 1024 * 1024,
		},
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	u, err := url.Parse(c.Analysis.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.ConfigInvalid("ANALYSIS_URL must be an absolute http(s) URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.ConfigInvalid("ANALYSIS_URL must use http or https")
	}
	if c.Analysis.Timeout < 0 {
		return errors.ConfigInvalid("ANALYSIS_TIMEOUT cannot be negative")
	}
	if c.Chart.Width < 100 || c.Chart.Height < 100 {
		return errors.ConfigInvalid("chart dimensions must be at least 100x100")
	}
	switch c.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("GIN_MODE must be debug, release or test")
	}
	if c.Upload.MaxBytes <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.WithCode(errors.CodeConfigInvalid, errors.Wrapf(err, "%s must be an integer", key))
	}
	return intValue, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, errors.WithCode(errors.CodeConfigInvalid, errors.Wrapf(err, "%s must be a duration such as 30s", key))
	}
	return duration, nil
}
