package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr               string
	DBPath             string
	LogLevel           string
	HorizonDays        int
	RefreshWorkerCount int
	RefreshQueueSize   int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:               envOr("ADDR", ":8080"),
		DBPath:             envOr("DB_PATH", "file:studyflow.db"),
		LogLevel:           envOr("LOG_LEVEL", "INFO"),
		HorizonDays:        envIntOr("HORIZON_DAYS", 7),
		RefreshWorkerCount: envIntOr("REFRESH_WORKER_COUNT", 2),
		RefreshQueueSize:   envIntOr("REFRESH_QUEUE_SIZE", 32),
	}
}

// Validate checks the configuration for values the server cannot start with.
// All problems are reported at once.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	if c.HorizonDays < 1 || c.HorizonDays > 30 {
		problems = append(problems, fmt.Sprintf("HORIZON_DAYS must be between 1 and 30, got %d", c.HorizonDays))
	}
	if c.RefreshWorkerCount < 1 {
		problems = append(problems, fmt.Sprintf("REFRESH_WORKER_COUNT must be at least 1, got %d", c.RefreshWorkerCount))
	}
	if c.RefreshQueueSize < 1 {
		problems = append(problems, fmt.Sprintf("REFRESH_QUEUE_SIZE must be at least 1, got %d", c.RefreshQueueSize))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
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
