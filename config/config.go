package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// RangeCutoff is a policy-defined date boundary. Projections for a cutoff
// assume the student attends every remaining lecture up to End.
type RangeCutoff struct {
	Key   string
	Label string
	End   time.Time
}

// Config holds every knob the service needs. It is loaded once in main and
// passed into constructors; nothing reads the environment after startup.
type Config struct {
	Port        string
	DatabaseURL string
	RedisAddr   string
	JWTSecret   []byte

	// Academic policy
	CalendarYear  string
	SemesterStart time.Time
	RangeCutoffs  []RangeCutoff
	LookaheadDays int

	// Default attended state for backfilled rows. The product assumes
	// "present until marked otherwise"; keep it a knob rather than a
	// hard-coded assumption.
	DefaultAttended bool
}

// Load reads .env (if present) and the environment into a Config.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment")
	}

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     os.Getenv("DB_URL"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		JWTSecret:       []byte(getEnv("JWT_SECRET", "fallback_secret_key_change_me")),
		CalendarYear:    getEnv("CALENDAR_YEAR", "2025-2026"),
		SemesterStart:   getEnvDate("SEMESTER_START", time.Date(2026, time.January, 27, 0, 0, 0, 0, time.UTC)),
		LookaheadDays:   getEnvInt("SYNC_LOOKAHEAD_DAYS", 2),
		DefaultAttended: getEnvBool("DEFAULT_ATTENDED", true),
	}

	// Term checkpoints used by the college's defaulter lists. Arbitrary
	// extra cutoffs can be appended by callers before wiring handlers.
	cfg.RangeCutoffs = []RangeCutoff{
		{Key: "defaulter1", Label: "Defaulter 1", End: time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)},
		{Key: "defaulter2", Label: "Defaulter 2", End: time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC)},
		{Key: "final", Label: "Final", End: time.Date(2026, time.May, 15, 0, 0, 0, 0, time.UTC)},
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("Invalid integer in environment, using default", "key", key, "value", v)
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("Invalid boolean in environment, using default", "key", key, "value", v)
		return fallback
	}
	return b
}

func getEnvDate(key string, fallback time.Time) time.Time {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	t, err := time.ParseInLocation("2006-01-02", v, time.UTC)
	if err != nil {
		slog.Warn("Invalid date in environment, using default", "key", key, "value", v)
		return fallback
	}
	return t
}
