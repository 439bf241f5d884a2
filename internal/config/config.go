package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultAPIURL matches the backend's development address. In a deployed
	// monolith the CLI is pointed at the public origin via CAREERTRACK_API_URL.
	DefaultAPIURL = "http://127.0.0.1:5000"

	DefaultHTTPTimeout = 30 * time.Second
)

type Config struct {
	// APIURL is the base URL of the career-readiness API.
	APIURL string
	// DBPath is the local sqlite file holding the persisted session.
	DBPath string
	// HTTPTimeout bounds every outbound request.
	HTTPTimeout time.Duration
}

// Load reads configuration from an optional .env file and the environment.
// A missing .env is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		APIURL:      DefaultAPIURL,
		HTTPTimeout: DefaultHTTPTimeout,
	}
	if v := os.Getenv("CAREERTRACK_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("CAREERTRACK_DB"); v != "" {
		cfg.DBPath = v
	} else {
		path, err := DefaultDBPath()
		if err != nil {
			return Config{}, err
		}
		cfg.DBPath = path
	}
	if v := os.Getenv("CAREERTRACK_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse CAREERTRACK_HTTP_TIMEOUT: %w", err)
		}
		cfg.HTTPTimeout = d
	}
	return cfg, nil
}

// DefaultDBPath returns the default CareerTrack session DB location.
func DefaultDBPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(homeDir, ".careertrack.db"), nil
}
