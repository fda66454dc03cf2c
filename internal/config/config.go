package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	SessionDriver string // memory|sqlite|postgres|redis
	DBDSN         string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SessionTTL    time.Duration
	SessionSecret string
	SessionCookie string
	SecureCookie  bool

	AssetsPath     string // local images referenced by relative "Image" cells
	MaxUploadBytes int64

	QuizTitle    string
	QuizSubtitle string

	CORSOriginsOnline  []string
	CORSOriginsOffline []string
}

// FromEnv reads the process environment, after loading any .env files found
// in the working directory.
func FromEnv(envFiles ...string) Config {
	loadDotEnv(envFiles...)

	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	return Config{
		Mode:               mode,
		HTTPAddr:           envOr("HTTP_ADDR", ":8080"),
		SessionDriver:      envOr("SESSION_DRIVER", "memory"),
		DBDSN:              envOr("DB_DSN", ""),
		RedisAddr:          envOr("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            envInt("REDIS_DB", 0),
		SessionTTL:         envDuration("SESSION_TTL", 24*time.Hour),
		SessionSecret:      envOr("SESSION_SECRET", "supersecret-dev-key"),
		SessionCookie:      envOr("SESSION_COOKIE", "quiz_session"),
		SecureCookie:       envBool("SESSION_COOKIE_SECURE", mode == ModeOnline),
		AssetsPath:         envOr("ASSETS_PATH", "./assets"),
		MaxUploadBytes:     int64(envInt("MAX_UPLOAD_BYTES", 10<<20)),
		QuizTitle:          envOr("QUIZ_TITLE", "AP CALCULUS MULTIPLE CHOICE EXAMINATION"),
		QuizSubtitle:       envOr("QUIZ_SUBTITLE", "Advanced Placement Mathematics Assessment"),
		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", "https://quiz.mindengage.ai"),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000,http://localhost:8080"),
	}
}

// CORSOrigins returns the allow-list for the configured mode.
func (c Config) CORSOrigins() []string {
	if c.Mode == ModeOnline {
		return c.CORSOriginsOnline
	}
	return c.CORSOriginsOffline
}

func loadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		// missing files are fine; variables already set win
		_ = godotenv.Load(f)
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func envInt(k string, def int) int {
	n, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return def
	}
	return n
}
func envDuration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(k))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
