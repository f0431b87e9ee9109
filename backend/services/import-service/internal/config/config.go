package config

import (
	"errors"
	"fmt"
	"strings"

	libconfig "accessboard/backend/libs/config"
)

// Config defines import service configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"IMPORT_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"IMPORT_POSTGRES_DSN"`
	} `yaml:"database"`
	Presence struct {
		BaseURL string `yaml:"baseUrl" env:"IMPORT_PRESENCE_URL"`
	} `yaml:"presence"`
	MaxUploadMB  int `yaml:"maxUploadMb" env:"IMPORT_MAX_UPLOAD_MB"`
	HistoryLimit int `yaml:"historyLimit" env:"IMPORT_HISTORY_LIMIT"`
}

// Load reads configuration via the shared helper. The presence base URL is
// optional: leaving it empty disables downstream notification.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8085"
	cfg.MaxUploadMB = 32
	cfg.HistoryLimit = 50

	if err := libconfig.Load(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database dsn required")
	}
	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = 32
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 50
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8085"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// MaxUploadBytes returns the request body limit for uploads.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}
