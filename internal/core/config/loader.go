package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Load reads configuration from a YAML file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if cfg.Kafka.Brokers == "" {
		return nil, fmt.Errorf("kafka.brokers is required")
	}

	return &cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.App.Name == "" {
		cfg.App.Name = "zscore"
	}
	if cfg.App.Version == "" {
		cfg.App.Version = "1.0.0"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Kafka.ConsumerGroup == "" {
		cfg.Kafka.ConsumerGroup = "ai-scoring-service"
	}
	if cfg.Kafka.InputTopic == "" {
		cfg.Kafka.InputTopic = "wallet-transactions"
	}
	if cfg.Kafka.SuccessTopic == "" {
		cfg.Kafka.SuccessTopic = "wallet-scores-success"
	}
	if cfg.Kafka.FailureTopic == "" {
		cfg.Kafka.FailureTopic = "wallet-scores-failure"
	}
}
