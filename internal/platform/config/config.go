package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// JWTSecret verifies HS256 bearer tokens. Tokens are issued elsewhere; only the subject is used.
	JWTSecret string
	JWTIssuer string

	MigrationsPath string

	// RateLimit uses the ulule format, e.g. "300-M". RedisURL switches the limiter to a shared store.
	RateLimit string
	RedisURL  string

	PosthogAPIKey   string
	PosthogEndpoint string

	CORSAllowedOrigins []string

	AttachmentDir string

	// DocumentNumberWidth is the zero-padded digit count of document numbers (JE-0001 for 4).
	DocumentNumberWidth int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("ATTACHMENT_DIR", "data/attachments")
	v.SetDefault("DOCUMENT_NUMBER_WIDTH", 4)
}

// LoadConfig loads configuration from environment variables and .env file if present.
// Real environment variables override the .env file, which overrides the defaults.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:         v.GetString("PGSQL_URL"),
		Port:                v.GetString("PORT"),
		IsProduction:        v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:       v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		JWTIssuer:           v.GetString("JWT_ISSUER"),
		MigrationsPath:      v.GetString("MIGRATIONS_PATH"),
		RateLimit:           v.GetString("RATE_LIMIT"),
		RedisURL:            v.GetString("REDIS_URL"),
		PosthogAPIKey:       v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:     v.GetString("POSTHOG_ENDPOINT"),
		CORSAllowedOrigins:  splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		AttachmentDir:       v.GetString("ATTACHMENT_DIR"),
		DocumentNumberWidth: v.GetInt("DOCUMENT_NUMBER_WIDTH"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.DocumentNumberWidth < 1 || cfg.DocumentNumberWidth > 12 {
		return nil, fmt.Errorf("DOCUMENT_NUMBER_WIDTH must be between 1 and 12, got %d", cfg.DocumentNumberWidth)
	}
	return cfg, nil
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
