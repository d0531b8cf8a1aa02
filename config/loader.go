package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable that overrides the config file path
const EnvConfigPath = "CAMPUSMAP_CONFIG"

const (
	DefaultPort            = 16181
	DefaultShutdownTimeout = 10
	DefaultTimeoutMS       = 5000
	DefaultCacheTTLSeconds = 30
	DefaultMaxPerStop      = 3
)

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads and validates the application configuration into Config.
// CAMPUSMAP_CONFIG wins when set; otherwise the first readable default path is used.
func LoadAppConfig() error {
	paths := []string{"config.yml", "./config/config.yml"}
	if p := os.Getenv(EnvConfigPath); p != "" {
		paths = []string{p}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	cfg, err := Parse(data)
	if err != nil {
		return err
	}
	Config = cfg
	return nil
}

// Parse decodes and validates YAML configuration and fills in defaults
func Parse(data []byte) (AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("invalid config yaml: %w", err)
	}
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return AppConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Predictions.TimeoutMS == 0 {
		cfg.Predictions.TimeoutMS = DefaultTimeoutMS
	}
	if cfg.Predictions.CacheTTLSeconds == 0 {
		cfg.Predictions.CacheTTLSeconds = DefaultCacheTTLSeconds
	}
	if cfg.Predictions.MaxPerStop == 0 {
		cfg.Predictions.MaxPerStop = DefaultMaxPerStop
	}
}
