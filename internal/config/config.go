package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/huzzai/rizz-coach/internal/gemini"
	"github.com/huzzai/rizz-coach/internal/store"
)

type Config struct {
	GeminiAPIKey     string
	GeminiEndpoint   string
	GeminiModel      string
	GeminiTransports []string
	DatabaseDriver   string
	DatabaseURL      string
	HTTPPort         string
	LogLevel         string
	Production       bool

	// EnvFileLoaded reports whether a .env file was found.
	EnvFileLoaded bool
}

// LoadConfig reads a .env file if one exists, then the environment.
func LoadConfig() *Config {
	loaded := godotenv.Load() == nil
	cfg := FromEnv()
	cfg.EnvFileLoaded = loaded
	return cfg
}

// FromEnv reads the process environment only.
func FromEnv() *Config {
	return &Config{
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiEndpoint:   strings.TrimRight(getEnv("GEMINI_ENDPOINT", gemini.DefaultEndpoint), "/"),
		GeminiModel:      getEnv("GEMINI_MODEL", gemini.DefaultModel),
		GeminiTransports: getEnvAsList("GEMINI_TRANSPORTS", []string{"sdk", "rest"}),
		DatabaseDriver:   getEnv("DATABASE_DRIVER", store.DriverSQLite),
		DatabaseURL:      getEnv("DATABASE_URL", "rizz_coach.db"),
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "INFO"),
		Production:       getEnvAsBool("PRODUCTION", false),
	}
}

func (c *Config) GeminiSettings() gemini.Settings {
	return gemini.Settings{APIKey: c.GeminiAPIKey, Endpoint: c.GeminiEndpoint, Model: c.GeminiModel}
}

// Validate reports every problem at once. A missing API key is reported but the server still
// starts; completion calls then fail with a configuration error.
func (c *Config) Validate() error {
	var errs []error
	if err := c.GeminiSettings().Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(c.GeminiTransports) == 0 {
		errs = append(errs, &gemini.ConfigError{Setting: "GEMINI_TRANSPORTS"})
	}
	for _, t := range c.GeminiTransports {
		if t != "sdk" && t != "rest" {
			errs = append(errs, fmt.Errorf("GEMINI_TRANSPORTS: unknown transport %q", t))
		}
	}
	switch c.DatabaseDriver {
	case store.DriverSQLite, store.DriverPostgres, store.DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("DATABASE_DRIVER: unsupported driver %q", c.DatabaseDriver))
	}
	return errors.Join(errs...)
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
