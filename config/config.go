// Package config loads service configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
)

const defaultPort = "8086"

// Config is the full service configuration. Required fields are validated at
// load time so a misconfigured deployment fails before serving.
type Config struct {
	// AuthToken guards the HTTP API (Bearer auth).
	AuthToken string
	// ClistAPIKey authenticates contest lookups against clist.by.
	ClistAPIKey string

	// DefaultHandle fills identity parameters when the caller omits them.
	DefaultHandle string
	// Port is the HTTP listen port.
	Port string
	// KeepaliveURL, when set, is pinged periodically to keep the host warm.
	KeepaliveURL string
	// OwnerID is returned by the validate tool.
	OwnerID string
}

// Load reads .env (if present) and the environment. Missing required values
// are an error.
func Load() (*Config, error) {
	// Absence of .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		AuthToken:     os.Getenv("AUTH_TOKEN"),
		ClistAPIKey:   os.Getenv("CLIST_API_KEY"),
		DefaultHandle: os.Getenv("DEFAULT_HANDLE"),
		Port:          os.Getenv("PORT"),
		KeepaliveURL:  os.Getenv("KEEPALIVE_URL"),
		OwnerID:       os.Getenv("OWNER_ID"),
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.AuthToken == "" {
		return nil, errors.New("AUTH_TOKEN is required")
	}
	if cfg.ClistAPIKey == "" {
		return nil, errors.New("CLIST_API_KEY is required")
	}
	return cfg, nil
}
