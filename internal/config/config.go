package config

import "os"

// Config holds application configuration loaded from environment variables.
type Config struct {
	DBPath   string // SHOPDB_DB, default "mydb.db"
	LogLevel string // SHOPDB_LOG_LEVEL, default "info"
	Format   string // SHOPDB_FORMAT, default "table"
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		DBPath:   envOr("SHOPDB_DB", "mydb.db"),
		LogLevel: envOr("SHOPDB_LOG_LEVEL", "info"),
		Format:   envOr("SHOPDB_FORMAT", "table"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
