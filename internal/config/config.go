package config

import (
	"os"
)

const DefaultModel = "gemini-1.5-flash"

type Config struct {
	HTTPAddr      string
	DataPath      string
	DBDSN         string
	InventoryPath string
	FrontendDir   string
	LogLevel      string
	GeminiAPIKey  string
	GeminiModel   string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads the service configuration from the environment. An empty
// GeminiAPIKey leaves the service in offline mode.
func Load() Config {
	return Config{
		HTTPAddr:      getenv("SENTINELOPS_HTTP_ADDR", ":8000"),
		DataPath:      getenv("SENTINELOPS_DATA_PATH", "data.json"),
		DBDSN:         os.Getenv("SENTINELOPS_DB_DSN"),
		InventoryPath: os.Getenv("SENTINELOPS_INVENTORY_PATH"),
		FrontendDir:   os.Getenv("SENTINELOPS_FRONTEND_DIR"),
		LogLevel:      getenv("SENTINELOPS_LOG_LEVEL", "info"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getenv("SENTINELOPS_GEMINI_MODEL", DefaultModel),
	}
}

// AIEnabled reports whether a credential for the text generation backend is set.
func (c Config) AIEnabled() bool {
	return c.GeminiAPIKey != ""
}
