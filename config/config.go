package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config carries everything the server needs at startup. Values come
// from the environment (a .env file is loaded by the entrypoint);
// connections are opened by their own packages and wired together in
// main rather than held as package globals.
type Config struct {
	Port        string
	FrontendURL string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret      string
	AccessTokenTTL time.Duration

	AlphaVantageKey string
	AlphaVantageURL string
	MarketTimeout   time.Duration

	ModelsDir     string
	CompaniesFile string

	// Cron expression for the background quote refresh; empty disables it.
	PriceSyncSpec string

	LogLevel string
}

// Load reads configuration from the environment, applying defaults for
// everything except the JWT secret, which must be set.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getenv("PORT", "8080"),
		FrontendURL: getenv("FRONTEND_URL", "http://localhost:5173"),

		DBHost:     getenv("DB_HOST", "127.0.0.1"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getenv("DB_NAME", "stock_predictor"),
		DBPort:     getenv("DB_PORT", "5432"),

		RedisAddr:     getenv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		AccessTokenTTL: time.Hour,

		AlphaVantageKey: os.Getenv("ALPHA_VANTAGE_API_KEY"),
		AlphaVantageURL: getenv("ALPHA_VANTAGE_URL", "https://www.alphavantage.co"),
		MarketTimeout:   10 * time.Second,

		ModelsDir:     getenv("MODELS_DIR", "ml_models"),
		CompaniesFile: getenv("COMPANIES_FILE", "data/companies.csv"),

		PriceSyncSpec: getenv("PRICE_SYNC_SPEC", "@every 15m"),

		LogLevel: getenv("LOG_LEVEL", "info"),
	}

	if db := os.Getenv("REDIS_DB"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", db, err)
		}
		cfg.RedisDB = n
	}

	if ttl := os.Getenv("ACCESS_TOKEN_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid ACCESS_TOKEN_TTL %q: %w", ttl, err)
		}
		cfg.AccessTokenTTL = d
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	return cfg, nil
}

// DSN builds the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
