package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Storage backend identifiers accepted in DATAROOM_STORAGE.
const (
	StorageMemory    = "memory"
	StorageLocalDisk = "localdisk"
	StoragePostgres  = "postgres"
)

type Config struct {
	Environment string
	Storage     string // memory | localdisk | postgres
	DataDir     string // localdisk: directory holding dataroom.json and blobs/
	DatabaseURL string
	TablePrefix string
	LogDir      string // when set, logs also go to rotated files in this directory
	// Debug flags
	Debug bool
}

func Load() *Config {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Environment: env,
		Storage:     getEnv("DATAROOM_STORAGE", StorageLocalDisk),
		DataDir:     getEnv("DATAROOM_DATA_DIR", "./data"),
		DatabaseURL: getEnv("DATAROOM_DB_URL", ""),
		TablePrefix: getTablePrefix(env),
		LogDir:      getEnv("DATAROOM_LOG_DIR", ""),
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true" // Enable DEBUG in dev/test by default
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	// Auto-generate based on environment
	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
