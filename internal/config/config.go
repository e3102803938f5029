package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/blindattack4/backend/internal/domain"
)

type Config struct {
	Port              string
	AllowedOrigins    []string
	FrontendURL       string
	JWTSecret         string
	GameTokenTTL      time.Duration
	DefaultDifficulty domain.Difficulty
	BlindMode         bool
	RedisURL          string
	RedisPassword     string
	RedisDB           int
	ReplayTTL         time.Duration
	ReplaySaveTimeout time.Duration
	SessionIdle       time.Duration
	CleanupInterval   time.Duration
	ShutdownTimeout   time.Duration
	AISeed            uint64
	LogLevel          string
	OTLPEndpoint      string
}

var AppConfig *Config

// LoadEnvFiles loads .env from the working directory or its parent. Missing
// files are not an error; the process environment still applies.
func LoadEnvFiles() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			slog.Info("No .env file found")
		}
	}
}

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOrigins := []string{frontendURL}
	for _, origin := range strings.Split(GetEnv("ALLOWED_ORIGINS", ""), ",") {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" && trimmed != frontendURL {
			allowedOrigins = append(allowedOrigins, trimmed)
		}
	}

	// Security
	jwtSecret := GetEnv("JWT_SECRET", "your-secret-key-change-this-in-production")
	tokenTTL := time.Duration(GetEnvAsInt("GAME_TOKEN_TTL_MINUTES", 240)) * time.Minute

	// Game
	difficulty, err := domain.ParseDifficulty(GetEnv("DEFAULT_DIFFICULTY", string(domain.Medium)))
	if err != nil {
		slog.Warn("Invalid DEFAULT_DIFFICULTY, using medium", "error", err)
		difficulty = domain.Medium
	}

	AppConfig = &Config{
		Port:              port,
		AllowedOrigins:    allowedOrigins,
		FrontendURL:       frontendURL,
		JWTSecret:         jwtSecret,
		GameTokenTTL:      tokenTTL,
		DefaultDifficulty: difficulty,
		BlindMode:         GetEnvAsBool("BLIND_MODE", true),
		RedisURL:          GetEnv("REDIS_URL", ""),
		RedisPassword:     GetEnv("REDIS_PASSWORD", ""),
		RedisDB:           GetEnvAsInt("REDIS_DB", 0),
		ReplayTTL:         time.Duration(GetEnvAsInt("REPLAY_TTL_MINUTES", 24*60)) * time.Minute,
		ReplaySaveTimeout: GetEnvAsDuration("REPLAY_SAVE_TIMEOUT", 5*time.Second),
		SessionIdle:       time.Duration(GetEnvAsInt("SESSION_IDLE_MINUTES", 60)) * time.Minute,
		CleanupInterval:   time.Duration(GetEnvAsInt("CLEANUP_INTERVAL_MINUTES", 10)) * time.Minute,
		ShutdownTimeout:   GetEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		AISeed:            uint64(max(GetEnvAsInt("AI_SEED", 0), 0)),
		LogLevel:          GetEnv("LOG_LEVEL", "info"),
		OTLPEndpoint:      GetEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	return AppConfig
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		slog.Warn("Invalid integer value, using default", "key", key, "value", valueStr, "default", defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		slog.Warn("Invalid boolean value, using default", "key", key, "value", valueStr, "default", defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsDuration parses Go duration syntax ("90s", "5m").
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		slog.Warn("Invalid duration value, using default", "key", key, "value", valueStr, "default", defaultValue)
		return defaultValue
	}
	return value
}
