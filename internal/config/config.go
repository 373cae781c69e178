package config

import (
	"os"
	"strconv"
	"strings"
)

// Store driver names accepted by CLINIC_STORE.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StoreDynamo   = "dynamo"
	StorePostgres = "postgres"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Locale drives the collation used when sorting providers and patients by name.
	Locale string

	// SeedDemoData controls whether cold-start collections are initialized with
	// the demo fixtures instead of starting empty.
	SeedDemoData bool

	StoreDriver string

	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	DatabaseURL string

	DynamoTable         string
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8080"),
		Env:          getEnv("ENV", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Locale:       getEnv("CLINIC_LOCALE", "es"),
		SeedDemoData: getEnvAsBool("CLINIC_SEED_DEMO_DATA", true),
		StoreDriver:  strings.ToLower(strings.TrimSpace(getEnv("CLINIC_STORE", StoreMemory))),

		RedisAddr:     getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		DynamoTable:         getEnv("CLINIC_BLOBS_TABLE", "clinic_blobs"),
		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
