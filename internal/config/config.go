package config

import (
	"os"
	"strconv"
)

type Config struct {
	// Server
	Port        string
	Environment string

	// Redis
	RedisURL string

	// Catalog source
	CatalogURL             string
	CatalogFile            string
	CatalogSheet           string
	CatalogCacheTTLMinutes int

	// Form settings
	// FormRowCount is advisory for the frontend; the engine itself places no
	// limit on order line count.
	FormRowCount int
}

func Load() *Config {
	cacheTTL, _ := strconv.Atoi(getEnv("CATALOG_CACHE_TTL_MINUTES", "60"))
	formRows, _ := strconv.Atoi(getEnv("FORM_ROW_COUNT", "3"))

	return &Config{
		// Server
		Port:        getEnv("PORT", "8093"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// Redis
		RedisURL: getEnv("REDIS_URL", ""),

		// Catalog source - URL takes precedence over a local file
		CatalogURL:             getEnv("CATALOG_URL", ""),
		CatalogFile:            getEnv("CATALOG_FILE", "data/farmer_offer_data.xlsx"),
		CatalogSheet:           getEnv("CATALOG_SHEET", ""),
		CatalogCacheTTLMinutes: cacheTTL,

		// Form settings
		FormRowCount: formRows,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
