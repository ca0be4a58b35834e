package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// File-backed stores. The order log is the source of truth; the menu
	// file is optional and falls back to the embedded catalog.
	OrdersFile  string
	DriversFile string
	CostsFile   string
	MenuFile    string

	// Optional Postgres mirror for external analytics tooling. Empty
	// disables mirroring.
	DatabaseURL string

	AllowOrigins []string
}

func Load() *Config {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		OrdersFile:  getEnv("ORDERS_FILE", "order_history.json"),
		DriversFile: getEnv("DRIVERS_FILE", "drivers.json"),
		CostsFile:   getEnv("COSTS_FILE", "product_costs.json"),
		MenuFile:    getEnv("MENU_FILE", ""),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		AllowOrigins: []string{
			getEnv("CORS_ORIGIN", "http://localhost:3000"),
			"http://localhost:5173",
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
