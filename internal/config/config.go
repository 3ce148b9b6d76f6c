package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for quiz-server
type Config struct {
	Server    ServerConfig
	Quiz      QuizConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Cleanup   CleanupConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host        string
	Port        int
	FrontendDir string
}

// QuizConfig holds quiz engine configuration
type QuizConfig struct {
	QuestionsFile string // YAML file or directory; empty uses the built-in bank
	UndoPolicy    string
	MaxSessions   int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Address  string // empty disables rate limiting
	Password string
	DB       int
}

// RateLimitConfig holds per-client request limits
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// CleanupConfig holds idle-session cleanup configuration
type CleanupConfig struct {
	Interval   time.Duration
	SessionTTL time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level slog.Level
}

// Load loads configuration from environment variables.
// A .env file in the working directory is applied first if present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			Port:        getEnvAsInt("PORT", getEnvAsInt("SERVER_PORT", 8080)),
			FrontendDir: getEnv("FRONTEND_DIR", "./frontend"),
		},
		Quiz: QuizConfig{
			QuestionsFile: getEnv("QUESTIONS_FILE", ""),
			UndoPolicy:    getEnv("QUIZ_UNDO_POLICY", "reopen"),
			MaxSessions:   getEnvAsInt("QUIZ_MAX_SESSIONS", 10000),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		RateLimit: RateLimitConfig{
			Requests: getEnvAsInt("RATE_LIMIT_REQUESTS", 120),
			Window:   getEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
		Cleanup: CleanupConfig{
			Interval:   getEnvAsDuration("CLEANUP_INTERVAL", 5*time.Minute),
			SessionTTL: getEnvAsDuration("SESSION_IDLE_TTL", 2*time.Hour),
		},
		Log: LogConfig{
			Level: getEnvAsLogLevel("LOG_LEVEL", slog.LevelInfo),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch strings.ToLower(c.Quiz.UndoPolicy) {
	case "", "reopen", "locked":
	default:
		return fmt.Errorf("invalid undo policy: %q (want reopen or locked)", c.Quiz.UndoPolicy)
	}

	if c.Quiz.MaxSessions < 0 {
		return fmt.Errorf("max sessions must not be negative: %d", c.Quiz.MaxSessions)
	}

	if c.Redis.Address != "" && (c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0) {
		return fmt.Errorf("rate limit requires positive requests and window")
	}

	if c.Cleanup.SessionTTL <= 0 {
		return fmt.Errorf("session idle ttl must be positive")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsLogLevel(key string, defaultValue slog.Level) slog.Level {
	if value, exists := os.LookupEnv(key); exists {
		var level slog.Level
		if err := level.UnmarshalText([]byte(value)); err == nil {
			return level
		}
	}
	return defaultValue
}
