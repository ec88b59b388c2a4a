package backtest

import (
	"fmt"
	"math"

	"github.com/yourusername/tennis-edge/internal/config"
	"github.com/yourusername/tennis-edge/internal/strategy"
)

// TieBreak orders opportunities that share a date
type TieBreak string

const (
	TieBreakInputOrder TieBreak = "input_order"
	TieBreakMatchID    TieBreak = "match_id"
)

// InvalidPolicy decides what happens to a malformed opportunity
type InvalidPolicy string

const (
	OnInvalidAbort InvalidPolicy = "abort"
	OnInvalidSkip  InvalidPolicy = "skip"
)

// Config is the explicit per-run configuration of a simulation
type Config struct {
	InitialBankroll      float64       `json:"initial_bankroll"`
	KellyMultiplier      float64       `json:"kelly_multiplier"`
	MaxFraction          float64       `json:"max_fraction"`
	EVEpsilon            float64       `json:"ev_epsilon"`
	TieBreak             TieBreak      `json:"tie_break"`
	OnInvalid            InvalidPolicy `json:"on_invalid"`
	BinCount             int           `json:"bin_count"`
	MonteCarloIterations int           `json:"monte_carlo_iterations"`
	MonteCarloSeed       int64         `json:"monte_carlo_seed"`
	Parallelism          int           `json:"parallelism"`
	SweepMultipliers     []float64     `json:"sweep_multipliers,omitempty"`
	OutputPath           string        `json:"output_path,omitempty"`
}

// DefaultConfig returns half-Kelly staking on a bankroll of 1000
func DefaultConfig() Config {
	return Config{
		InitialBankroll:      1000,
		KellyMultiplier:      strategy.DefaultKellyMultiplier,
		MaxFraction:          strategy.DefaultMaxFraction,
		EVEpsilon:            strategy.DefaultEVEpsilon,
		TieBreak:             TieBreakInputOrder,
		OnInvalid:            OnInvalidAbort,
		BinCount:             10,
		MonteCarloIterations: 1000,
		MonteCarloSeed:       42,
		Parallelism:          4,
	}
}

// FromConfig converts app config to simulation config
func FromConfig(cfg *config.Config) (Config, error) {
	if cfg == nil {
		return Config{}, fmt.Errorf("config is required")
	}

	bt := Config{
		InitialBankroll:      cfg.Backtest.InitialBankroll,
		KellyMultiplier:      cfg.Staking.KellyMultiplier,
		MaxFraction:          cfg.Staking.MaxFraction,
		EVEpsilon:            cfg.Staking.EVEpsilon,
		TieBreak:             TieBreak(cfg.Backtest.TieBreak),
		OnInvalid:            InvalidPolicy(cfg.Backtest.OnInvalid),
		BinCount:             cfg.Calibration.BinCount,
		MonteCarloIterations: cfg.Backtest.MonteCarloIterations,
		MonteCarloSeed:       cfg.Backtest.MonteCarloSeed,
		Parallelism:          cfg.Backtest.Parallelism,
		SweepMultipliers:     append([]float64(nil), cfg.Backtest.SweepMultipliers...),
		OutputPath:           cfg.Backtest.OutputPath,
	}
	if bt.TieBreak == "" {
		bt.TieBreak = TieBreakInputOrder
	}
	if bt.OnInvalid == "" {
		bt.OnInvalid = OnInvalidAbort
	}

	return bt, bt.Validate()
}

// Validate validates simulation parameters
func (c Config) Validate() error {
	if math.IsNaN(c.InitialBankroll) || math.IsInf(c.InitialBankroll, 0) || c.InitialBankroll <= 0 {
		return fmt.Errorf("initial bankroll must be positive")
	}
	if math.IsNaN(c.KellyMultiplier) || c.KellyMultiplier <= 0 || c.KellyMultiplier > 1 {
		return fmt.Errorf("kelly multiplier must be in (0,1]")
	}
	if math.IsNaN(c.MaxFraction) || c.MaxFraction <= 0 || c.MaxFraction > 1 {
		return fmt.Errorf("max fraction must be in (0,1]")
	}
	if c.EVEpsilon < 0 {
		return fmt.Errorf("ev epsilon cannot be negative")
	}
	switch c.TieBreak {
	case TieBreakInputOrder, TieBreakMatchID:
	default:
		return fmt.Errorf("unknown tie break %q", c.TieBreak)
	}
	switch c.OnInvalid {
	case OnInvalidAbort, OnInvalidSkip:
	default:
		return fmt.Errorf("unknown invalid-record policy %q", c.OnInvalid)
	}
	if c.BinCount != 0 && c.BinCount < 2 {
		return fmt.Errorf("bin count must be at least 2")
	}
	if c.MonteCarloIterations < 0 {
		return fmt.Errorf("monte carlo iterations cannot be negative")
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism cannot be negative")
	}
	for _, m := range c.SweepMultipliers {
		if math.IsNaN(m) || m <= 0 || m > 1 {
			return fmt.Errorf("sweep multiplier %v must be in (0,1]", m)
		}
	}
	return nil
}

// NewStrategy builds the Kelly value strategy described by the staking parameters
func (c Config) NewStrategy() *strategy.KellyValueStrategy {
	s := strategy.NewKellyValueStrategy()
	s.KellyMultiplier = c.KellyMultiplier
	s.MaxFraction = c.MaxFraction
	s.EVEpsilon = c.EVEpsilon
	return s
}

// WithKellyMultiplier returns a copy staking with a different multiplier
func (c Config) WithKellyMultiplier(m float64) Config {
	c.KellyMultiplier = m
	c.SweepMultipliers = append([]float64(nil), c.SweepMultipliers...)
	return c
}

func (c Config) parallelism() int {
	if c.Parallelism <= 0 {
		return 1
	}
	return c.Parallelism
}
