package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds all application configuration values
type Config struct {
	Port               string        `validate:"required,numeric"`
	LogLevel           string        `validate:"omitempty,oneof=debug info warn error"`
	GinMode            string        `validate:"oneof=debug release test"`
	SegmentWriteKey    string
	SegmentEndpoint    string        `validate:"omitempty,url"`
	DisqualifiedURL    string        `validate:"required"`
	CompletedURL       string        `validate:"required"`
	CORSAllowedOrigins []string
	SessionCookie      string        `validate:"required"`
	SessionTTL         time.Duration `validate:"gt=0"`
}

var validate = validator.New()

// LoadConfig reads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		GinMode:            getEnv("GIN_MODE", "release"),
		SegmentWriteKey:    os.Getenv("SEGMENT_WRITE_KEY"),
		SegmentEndpoint:    os.Getenv("SEGMENT_ENDPOINT"),
		DisqualifiedURL:    getEnv("DISQUALIFIED_URL", "/sorry"),
		CompletedURL:       getEnv("COMPLETED_URL", "/thank-you"),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		SessionCookie:      getEnv("SESSION_COOKIE", "screening_session"),
		SessionTTL:         getDuration("SESSION_TTL", 30*time.Minute),
	}
}

// Validate checks the loaded values before the server starts
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
