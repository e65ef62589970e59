package config

import (
	"github.com/walletlabs/zscore/internal/infra/kafka"
	redisclient "github.com/walletlabs/zscore/internal/infra/redis"
	"github.com/walletlabs/zscore/internal/infra/storage/postgres"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	App      AppInfo            `yaml:"app"`
	Server   ServerConfig       `yaml:"server"`
	Kafka    kafka.Config       `yaml:"kafka"`
	Redis    redisclient.Config `yaml:"redis"`
	Database postgres.Config    `yaml:"database"`
	Logging  LoggingConfig      `yaml:"logging"`
}

// AppInfo holds service identity and environment.
type AppInfo struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"` // development, production
}

// IsDevelopment reports whether the service runs in development mode.
func (a AppInfo) IsDevelopment() bool {
	return a.Environment == "development"
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}
