package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config keeps runtime settings for the service.
type Config struct {
	HTTPAddr         string
	DatabaseURL      string
	GeminiAPIKey     string
	GeminiModel      string
	ReminderInterval time.Duration
}

// Load reads configuration from environment variables with sane defaults.
// A missing DATABASE_URL or GEMINI_API_KEY is not an error: the process
// starts anyway and the corresponding feature degrades (data operations
// fail per-request, prep steps fall back to the fixed defaults).
func Load() Config {
	cfg := Config{
		HTTPAddr:         strings.TrimSpace(os.Getenv("HTTP_ADDR")),
		DatabaseURL:      strings.TrimSpace(os.Getenv("DATABASE_URL")),
		GeminiAPIKey:     strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:      strings.TrimSpace(os.Getenv("GEMINI_MODEL")),
		ReminderInterval: parseInterval(strings.TrimSpace(os.Getenv("REMINDER_INTERVAL_MINUTES"))),
	}

	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	if cfg.GeminiModel == "" {
		cfg.GeminiModel = "gemini-2.0-flash"
	}

	return cfg
}

// parseInterval converts a minute count to a duration. Empty means the
// default of 15 minutes; "0" or a negative value disables the reminder sweep.
func parseInterval(raw string) time.Duration {
	if raw == "" {
		return 15 * time.Minute
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		return 0
	}
	return time.Duration(minutes) * time.Minute
}
