package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Username             string
	Addr                 string
	DBPath               string
	LogLevel             string
	HTTPTimeout          time.Duration
	FetchDelay           time.Duration
	SyncWorkerCount      int
	SyncQueueSize        int
	ZeroDeltaMinInterval time.Duration
}

// DefaultZeroDeltaMinInterval is how much time must have passed since the
// previous stats pull before a same-day zero-change rating snapshot is
// recorded again.
const DefaultZeroDeltaMinInterval = 6 * time.Hour

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the tool still runs when .env is absent.
	_ = godotenv.Load()

	return Config{
		Username:             os.Getenv("CHESSLOG_USERNAME"),
		Addr:                 envOr("ADDR", ":8080"),
		DBPath:               envOr("DB_PATH", "file:chesslog.db"),
		LogLevel:             envOr("LOG_LEVEL", "INFO"),
		HTTPTimeout:          envDurOr("HTTP_TIMEOUT", 30*time.Second),
		FetchDelay:           envDurOr("FETCH_DELAY", 500*time.Millisecond),
		SyncWorkerCount:      envIntOr("SYNC_WORKER_COUNT", 1),
		SyncQueueSize:        envIntOr("SYNC_QUEUE_SIZE", 8),
		ZeroDeltaMinInterval: envDurOr("ZERO_DELTA_MIN_INTERVAL", DefaultZeroDeltaMinInterval),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %v", key, v, def)
	}
	return def
}
