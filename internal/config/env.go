package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultPort            = "8080"
	DefaultPromptRateLimit = "30-M"
	DefaultAPIEndpoint     = "http://localhost:8080"
)

// loads configuration from environment variables
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	databaseURL := os.Getenv("DATABASE_URL")
	jwtSecret := os.Getenv("JWT_SECRET")

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	sampleRate := 1.0
	if raw := os.Getenv("OTEL_SAMPLE_RATE"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("OTEL_SAMPLE_RATE must be a number: %w", err)
		}
		sampleRate = parsed
	}

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		sessionSecret = jwtSecret
	}

	return &Config{
		DatabaseURL:     databaseURL,
		RedisURL:        os.Getenv("REDIS_URL"),
		JWTSecret:       jwtSecret,
		SessionSecret:   sessionSecret,
		Environment:     getEnv("ENVIRONMENT", "development"),
		Port:            getEnv("PORT", DefaultPort),
		BaseURL:         os.Getenv("BASE_URL"),
		AllowedOrigins:  splitList(os.Getenv("ALLOWED_ORIGINS")),
		PromptRateLimit: getEnv("PROMPT_RATE_LIMIT", DefaultPromptRateLimit),
		OTELEndpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OTELSampleRate:  sampleRate,
	}, nil
}

// loads terminal client settings; nothing is required
func LoadClientConfig() ClientConfig {
	if err := godotenv.Load(); err != nil {
		_ = err
	}

	return ClientConfig{
		APIEndpoint: strings.TrimRight(getEnv("BOLTNEWER_API_ENDPOINT", DefaultAPIEndpoint), "/"),
		Token:       os.Getenv("BOLTNEWER_TOKEN"),
		SessionID:   os.Getenv("BOLTNEWER_SESSION"),
	}
}

// loads only the database url, for tools that talk to postgres directly
func LoadDatabaseURL() (string, error) {
	if err := godotenv.Load(); err != nil {
		_ = err
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return "", fmt.Errorf("DATABASE_URL environment variable is required")
	}

	return databaseURL, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
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
