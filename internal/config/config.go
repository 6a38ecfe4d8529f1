// Package config reads server settings from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"

	// DevJWTSecret is the signing key used when JWT_SECRET is unset.
	// It is rejected outside the development environment.
	DevJWTSecret = "splitledger-dev-secret"
)

type Config struct {
	// Environment
	Env string

	// HTTP Server
	Port string

	// Store
	StoreBackend  string
	DBPath        string
	MongoURI      string
	MongoDatabase string

	// Auth
	JWTSecret string
	TokenTTL  time.Duration

	// AMQP, disabled when AMQPURL is empty
	AMQPURL      string
	AMQPExchange string

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads the configuration from the environment after merging in the
// variables of any files given (".env" when none are). Missing files are ignored;
// variables already set in the environment take precedence.
func Load(envFiles ...string) *Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	return &Config{
		Env:  getEnv("APP_ENV", "development"),
		Port: getEnv("PORT", "8080"),

		StoreBackend:  strings.ToLower(getEnv("STORE_BACKEND", BackendSQLite)),
		DBPath:        getEnv("DB_PATH", "./data/ledger.db"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "splitledger"),

		JWTSecret: getEnv("JWT_SECRET", DevJWTSecret),
		TokenTTL:  getEnvDuration("TOKEN_TTL", 10*time.Hour),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "splitledger"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}
}

// Addr is the listen address derived from Port.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.StoreBackend {
	case BackendSQLite:
		if c.DBPath == "" {
			errors = append(errors, "DB_PATH cannot be empty when using sqlite backend")
		}
	case BackendMongo:
		if c.MongoURI == "" {
			errors = append(errors, "MONGO_URI is required when using mongo backend")
		}
		if c.MongoDatabase == "" {
			errors = append(errors, "MONGO_DATABASE is required when using mongo backend")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid store backend '%s': must be one of [%s %s]", c.StoreBackend, BackendSQLite, BackendMongo))
	}

	if c.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET cannot be empty")
	} else if c.JWTSecret == DevJWTSecret && c.Env != "development" {
		errors = append(errors, fmt.Sprintf("JWT_SECRET must be set when APP_ENV is '%s'", c.Env))
	}
	if c.TokenTTL <= 0 {
		errors = append(errors, fmt.Sprintf("invalid token TTL %v: must be positive", c.TokenTTL))
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
