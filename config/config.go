// Package config loads the desk's settings from a .env file and the
// environment.
package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"quotationdesk/services"
)

// Config holds the settings read at startup.
type Config struct {
	APIBaseURL string
	APITimeout time.Duration
	LogLevel   string

	Branding services.Branding
}

// Load reads .env from the current directory, falling back to the parent
// directory, then builds the config from the environment.
func Load() *Config {
	errEnv := godotenv.Load()
	if errEnv != nil {
		errEnv = godotenv.Load("../.env")
	}
	if errEnv != nil && !os.IsNotExist(errEnv) {
		log.Printf("config: error loading .env file: %v", errEnv)
	}

	cfg := &Config{
		APIBaseURL: getEnv("QUOTATION_API_BASE", "http://localhost:5000/api"),
		APITimeout: getEnvAsDuration("QUOTATION_API_TIMEOUT", 15*time.Second),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		Branding: services.Branding{
			CompanyName: getEnv("COMPANY_NAME", services.DefaultBranding.CompanyName),
			Tagline:     getEnv("COMPANY_TAGLINE", services.DefaultBranding.Tagline),
			Email:       getEnv("QUOTATION_SENDER_EMAIL", services.DefaultBranding.Email),
		},
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	return cfg
}

// getEnv retrieves an environment variable or returns a fallback value.
// A variable set to blanks counts as unset.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

// getEnvAsDuration retrieves an environment variable as a time.Duration or returns a fallback.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil && value > 0 {
		return value
	}
	log.Printf("config: invalid duration for %s (%q), using default %s", key, valueStr, fallback)
	return fallback
}
