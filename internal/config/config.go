// Package config loads the application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/cyril-numerily/dashboard-numerily-sub000/internal/engine"
)

// Config holds application configuration
type Config struct {
	Env  string
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Auth: tokens are issued by the hosted auth provider and signed with
	// JWTSecret. Only users whose app_metadata.role equals AdminRole get in.
	JWTSecret string
	AdminRole string

	CORSOrigins    []string
	Features       engine.Visibility
	CurrencySymbol string
}

var appConfig *Config

// Load reads the configuration from environment variables, after loading a
// .env file when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "budget"),
		DBPassword: getEnv("DB_PASSWORD", "budget"),
		DBName:     getEnv("DB_NAME", "budget"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		AdminRole: getEnv("ADMIN_ROLE", "admin"),

		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "€"),
	}

	if cfg.JWTSecret == "" {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "dev-only-secret"
	}

	features, err := engine.ParseDisabled(splitList(os.Getenv("DISABLED_FEATURES")))
	if err != nil {
		return nil, fmt.Errorf("invalid DISABLED_FEATURES: %w", err)
	}
	cfg.Features = features

	appConfig = cfg
	return cfg, nil
}

// Get returns the loaded configuration, loading it on first use.
func Get() (*Config, error) {
	if appConfig == nil {
		return Load()
	}
	return appConfig, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
