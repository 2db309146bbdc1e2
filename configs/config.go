package configs

import (
	"os"

	"github.com/shopspring/decimal"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Admin    AdminConfig
	Ledger   LedgerConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration. An empty URL means no remote
// store: the service runs on the local cache alone.
type DatabaseConfig struct {
	URL string
}

// CacheConfig holds local cache configuration
type CacheConfig struct {
	Dir string
}

// AdminConfig holds the seeded administrator identity. The password is only
// ever stored as a bcrypt hash.
type AdminConfig struct {
	Email    string
	Password string
}

// LedgerConfig holds ledger defaults
type LedgerConfig struct {
	StartingBalance decimal.Decimal
}

// Load loads configuration from environment variables
func Load() *Config {
	startingBalance, err := decimal.NewFromString(getEnv("STARTING_BALANCE", "0"))
	if err != nil {
		startingBalance = decimal.Zero
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("GO_ENV", "development"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Cache: CacheConfig{
			Dir: getEnv("CACHE_DIR", "data"),
		},
		Admin: AdminConfig{
			Email:    getEnv("ADMIN_EMAIL", "admin@elitex.local"),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		Ledger: LedgerConfig{
			StartingBalance: startingBalance,
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
