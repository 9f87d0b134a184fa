package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	DEFAULT_API_URL             = "http://localhost:8000"
	DEFAULT_CONFIDENCE_FLOOR    = 0.7
	DEFAULT_MAX_UPLOAD_MB       = 10
	DEFAULT_HEALTHCHECK_SECONDS = 300
)

// Config holds the tunables every component reads at startup. The confidence
// floor and upload ceiling are policy values, not invariants, so they stay
// overridable from the environment.
type Config struct {
	APIBaseURL      string
	ConfidenceFloor float64
	MaxUploadBytes  int64
	HealthInterval  time.Duration
	TokenStore      string // "file" or "valkey"
	TokenFile       string // optional override for the file store path
}

func FromEnv() Config {
	cfg := Config{
		APIBaseURL:      DEFAULT_API_URL,
		ConfidenceFloor: DEFAULT_CONFIDENCE_FLOOR,
		MaxUploadBytes:  DEFAULT_MAX_UPLOAD_MB << 20,
		HealthInterval:  DEFAULT_HEALTHCHECK_SECONDS * time.Second,
		TokenStore:      "file",
		TokenFile:       os.Getenv("SENTIVIEW_TOKEN_FILE"),
	}

	if v := os.Getenv("SENTIMENT_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}

	if v := os.Getenv("SENTIMENT_CONFIDENCE_FLOOR"); v != "" {
		floor, err := strconv.ParseFloat(v, 64)
		if err != nil || floor < 0 || floor > 1 {
			slog.Warn("[Config] Ignoring invalid confidence floor",
				slog.String("value", v))
		} else {
			cfg.ConfidenceFloor = floor
		}
	}

	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		mb, err := strconv.ParseInt(v, 10, 64)
		if err != nil || mb <= 0 {
			slog.Warn("[Config] Ignoring invalid upload ceiling",
				slog.String("value", v))
		} else {
			cfg.MaxUploadBytes = mb << 20
		}
	}

	if v := os.Getenv("HEALTHCHECK_INTERVAL"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			slog.Warn("[Config] Ignoring invalid healthcheck interval",
				slog.String("value", v))
		} else {
			cfg.HealthInterval = time.Duration(secs) * time.Second
		}
	}

	if v := os.Getenv("TOKEN_STORE"); v != "" {
		cfg.TokenStore = v
	}

	return cfg
}
