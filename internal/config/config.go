// internal/config/config.go
package config

import (
	"os"
	"strconv"
)

// DefaultBindAddr is where the server listens when nothing else is configured.
const DefaultBindAddr = "127.0.0.1:54123"

// Config carries process configuration resolved at startup. It is threaded
// explicitly through constructors; there is no package-level mutable state.
type Config struct {
	// BindAddr is the UDP host:port the server listens on.
	BindAddr string

	// ServerAddr is where clients send datagrams (cmd/client only).
	ServerAddr string

	// RedisAddr enables the match-history recorder when non-empty.
	RedisAddr string
	// RedisDB selects the Redis logical database.
	RedisDB int
	// HistoryQueue is the Redis list that receives match action records.
	HistoryQueue string

	// LogLevel is a logrus level name ("debug", "info", ...).
	LogLevel string
}

// Load resolves configuration from the environment with defaults:
//   - BIND_ADDR (default "127.0.0.1:54123")
//   - SERVER_ADDR (default same as BIND_ADDR default)
//   - REDIS_ADDR (default empty: history recording disabled)
//   - REDIS_DB (optional, default 0)
//   - HISTORY_QUEUE_NAME (default "guessing_game_actions")
//   - LOG_LEVEL (default "info")
func Load() Config {
	return Config{
		BindAddr:     getEnv("BIND_ADDR", DefaultBindAddr),
		ServerAddr:   getEnv("SERVER_ADDR", DefaultBindAddr),
		RedisAddr:    getEnv("REDIS_ADDR", ""),
		RedisDB:      getEnvInt("REDIS_DB", 0),
		HistoryQueue: getEnv("HISTORY_QUEUE_NAME", "guessing_game_actions"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}
}

// getEnv is a helper to read an environment variable or return a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt is a helper to parse an environment variable as integer, else a
// default value.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
