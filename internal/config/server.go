package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// ServerConfig holds settings for `arcade serve`. Values come from an
// optional YAML file, then ARCADE_* environment variables; command-line
// flags are applied on top by the caller.
type ServerConfig struct {
	Address     string        `yaml:"address" env:"ARCADE_SSH_ADDR" env-default:":23234"`
	HostKeyPath string        `yaml:"host-key" env:"ARCADE_HOST_KEY"`
	DBPath      string        `yaml:"db" env:"ARCADE_DB" env-default:"~/.arcade/scores.db"`
	IdleTimeout time.Duration `yaml:"idle-timeout" env:"ARCADE_IDLE_TIMEOUT" env-default:"30m"`
	MetricsAddr string        `yaml:"metrics-addr" env:"ARCADE_METRICS_ADDR"` // Empty disables /metrics
	LogLevel    string        `yaml:"log-level" env:"ARCADE_LOG_LEVEL" env-default:"info"`
}

// LoadServer reads the server configuration. path may be empty, in which case
// only the environment and defaults are used.
func LoadServer(path string) (ServerConfig, error) {
	var cfg ServerConfig

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return cfg, fmt.Errorf("unable to read server environment: %w", err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return cfg, fmt.Errorf("unable to load server config %s: %w", path, err)
	}
	return cfg, nil
}
