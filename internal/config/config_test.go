package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"MODE", "HTTP_ADDR", "SESSION_DRIVER", "SESSION_TTL", "MAX_UPLOAD_BYTES", "SESSION_COOKIE_SECURE"} {
		t.Setenv(k, "")
	}
	cfg := FromEnv(filepath.Join(t.TempDir(), "missing.env"))

	require.Equal(t, ModeOffline, cfg.Mode)
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, "memory", cfg.SessionDriver)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.EqualValues(t, 10<<20, cfg.MaxUploadBytes)
	require.False(t, cfg.SecureCookie)
	require.Equal(t, cfg.CORSOriginsOffline, cfg.CORSOrigins())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("MODE", "online")
	t.Setenv("SESSION_DRIVER", "redis")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("CORS_ORIGINS_ONLINE", " https://a.example , ,https://b.example")
	t.Setenv("SESSION_COOKIE_SECURE", "")

	cfg := FromEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.Equal(t, ModeOnline, cfg.Mode)
	require.Equal(t, "redis", cfg.SessionDriver)
	require.Equal(t, 2, cfg.RedisDB)
	require.Equal(t, 90*time.Minute, cfg.SessionTTL)
	require.True(t, cfg.SecureCookie)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins())
}

func TestFromEnvReadsDotEnvFile(t *testing.T) {
	t.Setenv("QUIZ_TITLE", "")
	require.NoError(t, os.Unsetenv("QUIZ_TITLE"))
	t.Setenv("HTTP_ADDR", ":9999")
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("QUIZ_TITLE=Chemistry Unit 3\nHTTP_ADDR=:1234\n"), 0o600))

	cfg := FromEnv(path)
	require.Equal(t, "Chemistry Unit 3", cfg.QuizTitle)
	// variables already in the environment win over the file
	require.Equal(t, ":9999", cfg.HTTPAddr)
}

func TestEnvHelpersFallBack(t *testing.T) {
	t.Setenv("X_INT", "abc")
	t.Setenv("X_DUR", "-5s")
	t.Setenv("X_BOOL", "maybe")
	require.Equal(t, 7, envInt("X_INT", 7))
	require.Equal(t, time.Second, envDuration("X_DUR", time.Second))
	require.True(t, envBool("X_BOOL", true))
}
