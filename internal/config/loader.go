package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	defaultConfigPath = "config/config.yaml"
	envPrefix         = "TENNIS_EDGE"
)

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional fields.
// A missing file is not an error; defaults and environment variables apply.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	v := newViper()
	SetDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// SetDefaults registers default values for every optional setting
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "tennis-edge")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("staking.kelly_multiplier", 0.5)
	v.SetDefault("staking.max_fraction", 0.25)
	v.SetDefault("staking.ev_epsilon", 1e-6)
	v.SetDefault("staking.side_policy", "best_ev")

	v.SetDefault("backtest.initial_bankroll", 1000.0)
	v.SetDefault("backtest.tie_break", "input_order")
	v.SetDefault("backtest.on_invalid", "abort")
	v.SetDefault("backtest.monte_carlo_iterations", 1000)
	v.SetDefault("backtest.monte_carlo_seed", 42)
	v.SetDefault("backtest.parallelism", 4)
	v.SetDefault("backtest.sweep_multipliers", []float64{0.1, 0.25, 0.5, 0.75, 1.0})
	v.SetDefault("backtest.output_path", "output")

	v.SetDefault("calibration.bin_count", 10)

	v.SetDefault("feed.odds_format", "decimal")
	v.SetDefault("feed.oracle", "none")

	v.SetDefault("model_service.url", "")
	v.SetDefault("model_service.api_key", "")
	v.SetDefault("model_service.timeout_seconds", 10)
	v.SetDefault("model_service.retry_attempts", 3)
	v.SetDefault("model_service.rate_limit", 5.0)
	v.SetDefault("model_service.cache_ttl_seconds", 300)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "tennis_edge")
	v.SetDefault("database.user", "tennis_edge")
	v.SetDefault("database.password", "")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_idle_connections", 2)

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.textfile_path", "")
}

// ReloadFromEnv reloads the configuration when TENNIS_EDGE_CONFIG_PATH is set
func ReloadFromEnv(cfg *Config) error {
	if envPath := os.Getenv(envPrefix + "_CONFIG_PATH"); envPath != "" {
		newCfg, err := LoadWithDefaults(envPath)
		if err != nil {
			return err
		}
		*cfg = *newCfg
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	// TENNIS_EDGE_STAKING_MAX_FRACTION overrides staking.max_fraction
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}
