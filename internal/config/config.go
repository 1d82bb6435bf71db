package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds deployment-time settings for the server.
type Config struct {
	Host     string
	Port     string
	DBPath   string
	WebDir   string
	LogLevel string

	// StrictUpdates makes PUT/PATCH re-check the create invariants.
	// See the design notes; the observed contract leaves this off.
	StrictUpdates bool
}

// Load reads configuration from the environment, honoring a .env file
// when present. Defaults reproduce the fixed local deployment: loopback
// host, port 5500, database file next to the binary.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Host:          getEnv("HOST", "127.0.0.1"),
		Port:          getEnv("PORT", "5500"),
		DBPath:        getEnv("DB_PATH", "expenses.db"),
		WebDir:        getEnv("WEB_DIR", "web"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		StrictUpdates: getEnv("STRICT_UPDATES", "") == "true",
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
