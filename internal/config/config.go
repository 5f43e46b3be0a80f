package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full environment surface. Every field has a default so a
// bare `go run` works against a local sqlite file; only the Gemini key is
// genuinely required for live coach calls.
type Config struct {
	Port   string
	DBFile string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	CacheTTL        time.Duration
	Retries         int
	BackoffBase     float64
	BackoffCap      float64
	MaxOutputTokens int

	RedisHost     string
	RedisPort     string
	RedisPassword string
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:   envStr("PORT", "8080"),
		DBFile: envStr("DB_FILE", "./data/lifeops.db"),

		GeminiAPIKey:  envStr("GEMINI_API_KEY", ""),
		GeminiModel:   envStr("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiBaseURL: envStr("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),

		CacheTTL:        time.Duration(envInt("SNIX_CACHE_TTL_SEC", 900)) * time.Second,
		Retries:         envInt("SNIX_RETRIES", 3),
		BackoffBase:     envFloat("SNIX_BACKOFF_BASE", 0.8),
		BackoffCap:      envFloat("SNIX_BACKOFF_CAP", 8.0),
		MaxOutputTokens: envInt("SNIX_MAX_OUTPUT_TOKENS", 800),

		RedisHost:     envStr("REDIS_HOST", ""),
		RedisPort:     envStr("REDIS_PORT", "6379"),
		RedisPassword: envStr("REDIS_PASSWORD", ""),
	}
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
