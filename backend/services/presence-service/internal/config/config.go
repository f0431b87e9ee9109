package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "accessboard/backend/libs/config"
)

// Config defines presence service configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"PRESENCE_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"PRESENCE_POSTGRES_DSN"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" env:"PRESENCE_REDIS_ADDR"`
		Password string `yaml:"password" env:"PRESENCE_REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"PRESENCE_REDIS_DB"`
		TTL      int    `yaml:"ttlSeconds" env:"PRESENCE_REDIS_TTL"`
	} `yaml:"redis"`
	DefaultRangeDays int `yaml:"defaultRangeDays" env:"PRESENCE_DEFAULT_RANGE_DAYS"`
}

// Load reads configuration via the shared helper. Redis is optional: an
// empty addr disables the summary cache.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8084"
	cfg.Redis.TTL = 300
	cfg.DefaultRangeDays = 14

	if err := libconfig.Load(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database dsn required")
	}
	if cfg.DefaultRangeDays <= 0 {
		cfg.DefaultRangeDays = 14
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8084"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// SummaryTTL returns the cache ttl as a duration.
func (c *Config) SummaryTTL() time.Duration {
	if c.Redis.TTL <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.Redis.TTL) * time.Second
}
