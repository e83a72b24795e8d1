package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string

	// DatabaseURL selects the Postgres backend when set; otherwise the
	// embedded SQLite store at SQLitePath is used.
	DatabaseURL string
	SQLitePath  string

	EmbedderURL     string
	EmbedderTimeout time.Duration

	// MatchThreshold is the minimum cosine similarity for a login match;
	// AmbiguityMargin is the required gap to the runner-up candidate.
	MatchThreshold  float64
	AmbiguityMargin float64

	// MinOpeningDeposit is in minor units.
	MinOpeningDeposit int64

	WebhookURL    string
	WebhookSecret string
}

// LoadConfig reads .env file and returns a Config struct
func LoadConfig() *Config {
	// Try loading .env file (it might not exist in Production, which is fine)
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file found, relying on System Env Variables")
	}

	return &Config{
		Port:              getEnv("PORT", "3000"),
		Env:               getEnv("ENV", "development"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		SQLitePath:        getEnv("SQLITE_PATH", "dashcash.db"),
		EmbedderURL:       getEnv("EMBEDDER_URL", "http://localhost:9090"),
		EmbedderTimeout:   time.Duration(getEnvInt("EMBEDDER_TIMEOUT_MS", 10000)) * time.Millisecond,
		MatchThreshold:    getEnvFloat("MATCH_THRESHOLD", 0.75),
		AmbiguityMargin:   getEnvFloat("AMBIGUITY_MARGIN", 0.05),
		MinOpeningDeposit: getEnvInt("MIN_OPENING_DEPOSIT", 1000),
		WebhookURL:        getEnv("WEBHOOK_URL", ""),
		WebhookSecret:     getEnv("WEBHOOK_SECRET", ""),
	}
}

// Helper to get env with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
		slog.Warn("Ignoring non-integer env value", "key", key, "value", value)
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		slog.Warn("Ignoring non-numeric env value", "key", key, "value", value)
	}
	return fallback
}
