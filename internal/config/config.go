// Where: cli/internal/config/config.go
// What: Tool configuration with defaults.
// Why: Concurrency bounds and retry policy are deployment-specific knobs.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the operator-tunable configuration, loaded from an optional YAML
// file and validated against the embedded schema.
type Config struct {
	Concurrency struct {
		Search int `yaml:"search" json:"search"`
		Delete int `yaml:"delete" json:"delete"`
	} `yaml:"concurrency" json:"concurrency"`
	Retry struct {
		MaxAttempts    int `yaml:"maxAttempts" json:"maxAttempts"`
		InitialDelayMS int `yaml:"initialDelayMs" json:"initialDelayMs"`
	} `yaml:"retry" json:"retry"`
	LogDir              string `yaml:"logDir" json:"logDir"`
	AuditDir            string `yaml:"auditDir" json:"auditDir"`
	LargeBatchThreshold int    `yaml:"largeBatchThreshold" json:"largeBatchThreshold"`
}

// Default returns the built-in configuration.
func Default() Config {
	var cfg Config
	cfg.Concurrency.Search = 8
	cfg.Concurrency.Delete = 4
	cfg.Retry.MaxAttempts = 3
	cfg.Retry.InitialDelayMS = 500
	cfg.LogDir = "logs"
	cfg.AuditDir = "logs"
	cfg.LargeBatchThreshold = 100
	return cfg
}

// InitialDelay converts the configured retry delay to a duration.
func (c Config) InitialDelay() time.Duration {
	return time.Duration(c.Retry.InitialDelayMS) * time.Millisecond
}

// Load reads and validates a config file, merging it over the defaults.
// An empty path or a missing default file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = "azsnap.yml"
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := validateConfig(raw); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
