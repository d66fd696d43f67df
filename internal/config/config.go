package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server      ServerConfig
	API         APIConfig
	Map         MapConfig
	Geocoding   GeocodingConfig
	Geolocation GeolocationConfig
}

// ServerConfig holds HTTP server settings for the dev stub
type ServerConfig struct {
	Port           string
	Env            string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// APIConfig holds events backend settings
type APIConfig struct {
	BaseURL  string
	Timeout  time.Duration
	AdminKey string
}

// MapConfig holds map engine tuning
type MapConfig struct {
	ClusterMaxZoom float64
	ClusterRadius  float64
	SelectZoom     float64
	FitPadding     float64
}

// GeocodingConfig holds the places endpoint settings
type GeocodingConfig struct {
	BaseURL     string
	AccessToken string
}

// GeolocationConfig bounds position requests for the near-me flow
type GeolocationConfig struct {
	Timeout      time.Duration
	MaximumAge   time.Duration
	HighAccuracy bool
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8081"),
			Env:            getEnv("SERVER_ENV", "development"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			AllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		API: APIConfig{
			BaseURL:  getEnv("RIDEMAP_API_URL", "http://localhost:8081"),
			Timeout:  getDurationEnv("RIDEMAP_API_TIMEOUT", 15*time.Second),
			AdminKey: getEnv("RIDEMAP_ADMIN_KEY", ""),
		},
		Map: MapConfig{
			ClusterMaxZoom: getFloatEnv("MAP_CLUSTER_MAX_ZOOM", 14),
			ClusterRadius:  getFloatEnv("MAP_CLUSTER_RADIUS", 50),
			SelectZoom:     getFloatEnv("MAP_SELECT_ZOOM", 14),
			FitPadding:     getFloatEnv("MAP_FIT_PADDING", 50),
		},
		Geocoding: GeocodingConfig{
			BaseURL:     getEnv("GEOCODING_URL", "https://api.mapbox.com/geocoding/v5/mapbox.places"),
			AccessToken: getEnv("MAPBOX_ACCESS_TOKEN", ""),
		},
		Geolocation: GeolocationConfig{
			Timeout:      getDurationEnv("GEOLOCATION_TIMEOUT", 10*time.Second),
			MaximumAge:   getDurationEnv("GEOLOCATION_MAX_AGE", time.Minute),
			HighAccuracy: getBoolEnv("GEOLOCATION_HIGH_ACCURACY", false),
		},
	}, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}

	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("RIDEMAP_API_URL is required"))
	} else if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		errs = append(errs, fmt.Errorf("RIDEMAP_API_URL must be an http(s) URL, got '%s'", c.API.BaseURL))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, errors.New("RIDEMAP_API_TIMEOUT must be positive"))
	}

	if c.Map.ClusterMaxZoom <= 0 {
		errs = append(errs, errors.New("MAP_CLUSTER_MAX_ZOOM must be positive"))
	}
	if c.Map.ClusterRadius <= 0 {
		errs = append(errs, errors.New("MAP_CLUSTER_RADIUS must be positive"))
	}
	if c.Map.SelectZoom <= 0 {
		errs = append(errs, errors.New("MAP_SELECT_ZOOM must be positive"))
	}

	if c.Geocoding.BaseURL == "" {
		errs = append(errs, errors.New("GEOCODING_URL is required"))
	}
	// The access token is only required in production: the hosted endpoint
	// rejects anonymous requests, a local fake does not.
	if c.IsProduction() && c.Geocoding.AccessToken == "" {
		errs = append(errs, errors.New("MAPBOX_ACCESS_TOKEN is required in production"))
	}

	if c.Geolocation.Timeout <= 0 {
		errs = append(errs, errors.New("GEOLOCATION_TIMEOUT must be positive"))
	}
	if c.Geolocation.MaximumAge < 0 {
		errs = append(errs, errors.New("GEOLOCATION_MAX_AGE must not be negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
