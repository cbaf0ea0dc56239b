package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type GeminiConfig struct {
	APIKey string
	Model  string
}

type ActivityAPIConfig struct {
	BaseURL   string
	AuthToken string
	Timeout   time.Duration
}

type SessionConfig struct {
	IdleTTL         time.Duration
	CleanupInterval time.Duration
}

type PlannerConfig struct {
	TurnTimeout   time.Duration
	MaxToolRounds int
}

type Config struct {
	Gemini      GeminiConfig
	ActivityAPI ActivityAPIConfig
	Session     SessionConfig
	Planner     PlannerConfig
	ServerPort  string
}

func Load() (*Config, error) {
	cfg := &Config{
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		},
		ActivityAPI: ActivityAPIConfig{
			BaseURL:   getEnvOrDefault("ACTIVITY_API_URL", "https://api.limor.us/passenger_ls/v1/activity"),
			AuthToken: os.Getenv("ACTIVITY_API_TOKEN"),
			Timeout:   getEnvDuration("ACTIVITY_API_TIMEOUT", 15*time.Second),
		},
		Session: SessionConfig{
			IdleTTL:         getEnvDuration("SESSION_IDLE_TTL", 24*time.Hour),
			CleanupInterval: getEnvDuration("SESSION_CLEANUP_INTERVAL", time.Hour),
		},
		Planner: PlannerConfig{
			TurnTimeout:   getEnvDuration("PLANNER_TURN_TIMEOUT", 60*time.Second),
			MaxToolRounds: getEnvInt("PLANNER_MAX_TOOL_ROUNDS", 8),
		},
		ServerPort: getEnvOrDefault("SERVER_PORT", "8091"),
	}

	if cfg.Gemini.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
