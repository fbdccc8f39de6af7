package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	DBPath        string
	ListenAddr    string
	BaseURL       string
	TimezoneName  string
	Location      *time.Location
	StaticDir     string
	DBBusyTimeout time.Duration
	DBLockTimeout time.Duration
	LogLevel      string
	LogPretty     bool
	LogFile       string
}

func Load() (Config, error) {
	initEnvFile()
	cfg := Config{
		DBPath:       envOr("BNOTE_DB_PATH", "note.db"),
		ListenAddr:   envOr("BNOTE_LISTEN_ADDR", "127.0.0.1:8080"),
		BaseURL:      NormalizeBaseURL(os.Getenv("BNOTE_BASE_URL")),
		TimezoneName: envOr("BNOTE_TIMEZONE", "Local"),
		StaticDir:    envOr("BNOTE_STATIC_DIR", "static"),
		LogLevel:     os.Getenv("BNOTE_LOG_LEVEL"),
		LogPretty:    parseBool(os.Getenv("BNOTE_LOG_PRETTY")),
		LogFile:      strings.TrimSpace(os.Getenv("BNOTE_LOG_FILE")),
	}
	cfg.DBBusyTimeout = parseDurationOr("BNOTE_DB_BUSY_TIMEOUT", 5*time.Second)
	cfg.DBLockTimeout = parseDurationOr("BNOTE_DB_LOCK_TIMEOUT", 2*time.Second)

	loc, err := LoadLocation(cfg.TimezoneName)
	if err != nil {
		return cfg, err
	}
	cfg.Location = loc
	return cfg, nil
}

// LoadLocation resolves an IANA zone name. Empty and "Local" map to the
// process local zone.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}

// NormalizeBaseURL trims whitespace and any trailing slash so links can be
// built as BaseURL + "/path". A bare "/" means mounted at root.
func NormalizeBaseURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			return d
		}
	}
	return fallback
}

func parseBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
