package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/blindattack4/backend/internal/domain"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "FRONTEND_URL", "ALLOWED_ORIGINS", "DEFAULT_DIFFICULTY", "BLIND_MODE", "AI_SEED", "REDIS_URL", "GAME_TOKEN_TTL_MINUTES", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	assert.Same(t, AppConfig, cfg)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, domain.Medium, cfg.DefaultDifficulty)
	assert.True(t, cfg.BlindMode)
	assert.Zero(t, cfg.AISeed)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, 4*time.Hour, cfg.GameTokenTTL)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("FRONTEND_URL", "https://play.example")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example, ,https://play.example,https://b.example")
	t.Setenv("DEFAULT_DIFFICULTY", "very_hard")
	t.Setenv("BLIND_MODE", "false")
	t.Setenv("AI_SEED", "42")
	t.Setenv("SESSION_IDLE_MINUTES", "15")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg := LoadConfig()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, []string{"https://play.example", "https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, domain.VeryHard, cfg.DefaultDifficulty)
	assert.False(t, cfg.BlindMode)
	assert.Equal(t, uint64(42), cfg.AISeed)
	assert.Equal(t, 15*time.Minute, cfg.SessionIdle)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfigFallsBackOnBadValues(t *testing.T) {
	t.Setenv("DEFAULT_DIFFICULTY", "nightmare")
	t.Setenv("AI_SEED", "-5")

	cfg := LoadConfig()
	assert.Equal(t, domain.Medium, cfg.DefaultDifficulty)
	assert.Zero(t, cfg.AISeed)
}

func TestEnvGetters(t *testing.T) {
	t.Setenv("X_INT", "12")
	t.Setenv("X_BAD_INT", "twelve")
	t.Setenv("X_BOOL", "1")
	t.Setenv("X_BAD_BOOL", "maybe")
	t.Setenv("X_DUR", "90s")
	t.Setenv("X_BAD_DUR", "soon")

	assert.Equal(t, 12, GetEnvAsInt("X_INT", 1))
	assert.Equal(t, 1, GetEnvAsInt("X_BAD_INT", 1))
	assert.Equal(t, 7, GetEnvAsInt("X_MISSING", 7))
	assert.True(t, GetEnvAsBool("X_BOOL", false))
	assert.True(t, GetEnvAsBool("X_BAD_BOOL", true))
	assert.Equal(t, 90*time.Second, GetEnvAsDuration("X_DUR", time.Second))
	assert.Equal(t, time.Second, GetEnvAsDuration("X_BAD_DUR", time.Second))
	assert.Equal(t, "fallback", GetEnv("X_MISSING", "fallback"))
}
