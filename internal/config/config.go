package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const EnvProduction = "production"

type Config struct {
	App      AppConfig
	Server   ServerConfig
	DynamoDB DynamoDBConfig
	Redis    RedisConfig
	Session  SessionConfig
	OTP      OTPConfig
}

type AppConfig struct {
	// Environment is "development" or "production". Production requires a
	// configured session secret and marks cookies Secure.
	Environment string
	// StoreBackend selects "dynamodb" (with Redis for challenges) or
	// "memory" for local development.
	StoreBackend string
	// PublicBaseURL is the externally visible origin used to build share
	// links.
	PublicBaseURL string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DynamoDBConfig struct {
	Endpoint  string
	Region    string
	TableName string
}

type RedisConfig struct {
	Endpoint string
	Password string
	DB       int
}

type SessionConfig struct {
	Secret string
	Expiry time.Duration
}

type OTPConfig struct {
	Expiry      time.Duration
	MaxAttempts int
}

func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Environment:   getEnv("APP_ENV", "development"),
			StoreBackend:  getEnv("STORE_BACKEND", "dynamodb"),
			PublicBaseURL: getEnv("PUBLIC_BASE_URL", "https://afritok.app"),
		},
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		DynamoDB: DynamoDBConfig{
			Endpoint:  getEnv("DYNAMODB_ENDPOINT", ""),
			Region:    getEnv("DYNAMODB_REGION", "us-east-1"),
			TableName: getEnv("DYNAMODB_TABLE_NAME", "AfritokTable"),
		},
		Redis: RedisConfig{
			Endpoint: getEnv("REDIS_ENDPOINT", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", ""),
			Expiry: getEnvAsDuration("SESSION_EXPIRY", 30*24*time.Hour),
		},
		OTP: OTPConfig{
			Expiry:      getEnvAsDuration("OTP_EXPIRY", 10*time.Minute),
			MaxAttempts: getEnvAsInt("OTP_MAX_ATTEMPTS", 5),
		},
	}

	if cfg.App.Environment == EnvProduction {
		if cfg.Session.Secret == "" {
			return nil, fmt.Errorf("SESSION_SECRET environment variable is required in production")
		}
		if len(cfg.Session.Secret) < 32 {
			return nil, fmt.Errorf("SESSION_SECRET must be at least 32 bytes (256 bits)")
		}
	}

	if cfg.App.StoreBackend != "dynamodb" && cfg.App.StoreBackend != "memory" {
		return nil, fmt.Errorf("STORE_BACKEND must be dynamodb or memory, got %q", cfg.App.StoreBackend)
	}

	return cfg, nil
}

// IsProduction reports whether the service runs with production hardening.
func (c *Config) IsProduction() bool {
	return c.App.Environment == EnvProduction
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
