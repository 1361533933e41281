package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/oakmount/taskhub/internal/taskhub/orchestrator"
)

type Config struct {
	StorageBackend string // Storage backend (sqlite, json) (default: sqlite)
	DatabaseFile   string // Path to SQLite database file (default: ./taskhub.db)
	UsersFile      string // Path to users JSON document (json backend) (default: ./users.json)
	TasksFile      string // Path to tasks JSON document (json backend) (default: ./tasks.json)

	JWTSecret string        // Required: shared secret for signing access tokens
	Issuer    string        // Issuer claim for tokens (default: taskhub)
	TokenTTL  time.Duration // Access token lifetime (default: 30m)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	// Local development keeps its settings in a .env file. Missing file is fine.
	_ = godotenv.Load()

	return Config{
		StorageBackend: getEnvOrDefault("TASKHUB_STORAGE_BACKEND", orchestrator.BackendSQLite),
		DatabaseFile:   getEnvOrDefault("TASKHUB_DATABASE_FILE", "taskhub.db"),
		UsersFile:      getEnvOrDefault("TASKHUB_USERS_FILE", "users.json"),
		TasksFile:      getEnvOrDefault("TASKHUB_TASKS_FILE", "tasks.json"),

		JWTSecret: os.Getenv("TASKHUB_JWT_SECRET"),
		Issuer:    getEnvOrDefault("TASKHUB_ISSUER", "taskhub"),
		TokenTTL:  getEnvDurationOrDefault("TASKHUB_TOKEN_TTL", 30*time.Minute),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// OrchestratorConfig maps the app configuration onto the composition root.
func (c Config) OrchestratorConfig() orchestrator.Config {
	return orchestrator.Config{
		Backend:      c.StorageBackend,
		DatabaseFile: c.DatabaseFile,
		UsersFile:    c.UsersFile,
		TasksFile:    c.TasksFile,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
