// Package config provides configuration management for the tennis-edge tool.
package config

import (
	"net"
	"net/url"
	"strconv"
)

// Config represents the complete application configuration
type Config struct {
	App          AppConfig          `mapstructure:"app" validate:"required"`
	Staking      StakingConfig      `mapstructure:"staking" validate:"required"`
	Backtest     BacktestConfig     `mapstructure:"backtest" validate:"required"`
	Calibration  CalibrationConfig  `mapstructure:"calibration" validate:"required"`
	Feed         FeedConfig         `mapstructure:"feed"`
	ModelService ModelServiceConfig `mapstructure:"model_service"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Metrics      MetricsConfig      `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// StakingConfig holds the risk parameters applied to every decision
type StakingConfig struct {
	KellyMultiplier float64 `mapstructure:"kelly_multiplier" validate:"gt=0,lte=1"`
	MaxFraction     float64 `mapstructure:"max_fraction" validate:"gt=0,lte=1"`
	EVEpsilon       float64 `mapstructure:"ev_epsilon" validate:"gte=0"`
	SidePolicy      string  `mapstructure:"side_policy" validate:"required,oneof=best_ev"`
}

// BacktestConfig represents bankroll simulation configuration
type BacktestConfig struct {
	InitialBankroll      float64   `mapstructure:"initial_bankroll" validate:"required,gt=0"`
	TieBreak             string    `mapstructure:"tie_break" validate:"required,oneof=input_order match_id"`
	OnInvalid            string    `mapstructure:"on_invalid" validate:"required,oneof=abort skip"`
	MonteCarloIterations int       `mapstructure:"monte_carlo_iterations" validate:"gte=0"`
	MonteCarloSeed       int64     `mapstructure:"monte_carlo_seed"`
	Parallelism          int       `mapstructure:"parallelism" validate:"gte=0"`
	SweepMultipliers     []float64 `mapstructure:"sweep_multipliers" validate:"dive,gt=0,lte=1"`
	OutputPath           string    `mapstructure:"output_path"`
}

// CalibrationConfig configures reliability binning
type CalibrationConfig struct {
	BinCount int `mapstructure:"bin_count" validate:"gte=2"`
}

// FeedConfig describes how opportunity files are read
type FeedConfig struct {
	OddsFormat string `mapstructure:"odds_format" validate:"omitempty,oddsformat"`
	Oracle     string `mapstructure:"oracle" validate:"omitempty,oneof=none rank market http"`
}

// ModelServiceConfig represents the external probability model service
type ModelServiceConfig struct {
	URL             string  `mapstructure:"url" validate:"omitempty,url"`
	APIKey          string  `mapstructure:"api_key"`
	TimeoutSeconds  int     `mapstructure:"timeout_seconds" validate:"gte=0"`
	RetryAttempts   int     `mapstructure:"retry_attempts" validate:"gte=0"`
	RateLimit       float64 `mapstructure:"rate_limit" validate:"gte=0"`
	CacheTTLSeconds int     `mapstructure:"cache_ttl_seconds" validate:"gte=0"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name               string `mapstructure:"name"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"gte=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"gte=0"`
}

// MetricsConfig represents metrics export configuration
type MetricsConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	TextfilePath string `mapstructure:"textfile_path"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// DSN returns a PostgreSQL connection URL with escaped credentials
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	return u.String()
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return c.Database.DSN()
}
