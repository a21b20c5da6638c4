package config

import (
	"fmt"
	"os"
	"time"
)

// ServicesConfig holds the base URLs of the external collaborators.
type ServicesConfig struct {
	BackendURL string
	TasteAIURL string
	Timeout    time.Duration
}

// AuthConfig holds session token settings.
type AuthConfig struct {
	JWTSecret       string
	TokenExpiration time.Duration
}

// MapsConfig holds Google Maps platform settings.
type MapsConfig struct {
	APIKey   string
	CacheTTL time.Duration
}

type Config struct {
	Services   ServicesConfig
	Auth       AuthConfig
	Maps       MapsConfig
	ServerPort string
}

func Load() (*Config, error) {
	cfg := &Config{
		Services: ServicesConfig{
			BackendURL: getEnvOrDefault("BACKEND_URL", "http://localhost:8080/api"),
			TasteAIURL: getEnvOrDefault("TASTE_AI_URL", "http://localhost:8001/api"),
			Timeout:    30 * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret:       os.Getenv("JWT_SECRET_KEY"),
			TokenExpiration: 24 * time.Hour,
		},
		Maps: MapsConfig{
			APIKey:   os.Getenv("GOOGLE_MAPS_API_KEY"),
			CacheTTL: time.Hour,
		},
		ServerPort: getEnvOrDefault("SERVER_PORT", "8091"),
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
