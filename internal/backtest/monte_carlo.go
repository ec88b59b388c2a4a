package backtest

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/yourusername/tennis-edge/internal/models"
)

// MonteCarloConfig configures order-resampling simulation
type MonteCarloConfig struct {
	Iterations  int
	Seed        int64
	Parallelism int
}

// MonteCarloResult represents the distribution of outcomes across resampled orders
type MonteCarloResult struct {
	Iterations          int                `json:"iterations"`
	Seed                int64              `json:"seed"`
	MeanROI             float64            `json:"mean_roi"`
	StdROI              float64            `json:"std_roi"`
	MeanMaxDrawdown     float64            `json:"mean_max_drawdown"`
	ProbabilityOfProfit float64            `json:"probability_of_profit"`
	ProbabilityOfRuin   float64            `json:"probability_of_ruin"`
	Percentiles         map[string]float64 `json:"percentiles"`
	ConfidenceIntervals map[string]float64 `json:"confidence_intervals"`
	Distribution        []float64          `json:"distribution"`
}

// MonteCarloConfigFrom derives the resampling settings from a run config
func MonteCarloConfigFrom(cfg Config) MonteCarloConfig {
	return MonteCarloConfig{
		Iterations:  cfg.MonteCarloIterations,
		Seed:        cfg.MonteCarloSeed,
		Parallelism: cfg.parallelism(),
	}
}

// RunMonteCarlo shuffles the order of the stream once per iteration and
// replays each shuffle in an independent simulation. The original sorted
// dates are re-stamped onto the shuffled records so every replay remains
// chronological. Iteration i uses seed cfg.Seed+i, so the distribution is
// reproducible regardless of parallelism.
func (s *Simulator) RunMonteCarlo(ctx context.Context, stream []models.BetOpportunity, cfg MonteCarloConfig) (MonteCarloResult, error) {
	if cfg.Iterations <= 0 {
		return MonteCarloResult{}, fmt.Errorf("monte carlo iterations must be positive")
	}
	if err := ValidateOrder(stream); err != nil {
		return MonteCarloResult{}, err
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = 1
	}

	ordered := OrderStream(stream, s.config.TieBreak)

	// the shuffled order is the replay order
	iterCfg := s.config
	iterCfg.TieBreak = TieBreakInputOrder
	runner := s.withMode(modeMonteCarlo)
	runner.config = iterCfg

	finals := make([]float64, cfg.Iterations)
	rois := make([]float64, cfg.Iterations)
	drawdowns := make([]float64, cfg.Iterations)
	bankrupt := make([]bool, cfg.Iterations)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallelism)
	for i := 0; i < cfg.Iterations; i++ {
		i := i
		g.Go(func() error {
			shuffled := shuffleStream(ordered, cfg.Seed+int64(i))
			result, err := runner.run(gctx, shuffled)
			if err != nil {
				return fmt.Errorf("monte carlo iteration %d: %w", i, err)
			}
			summary := Summarize(result.Ledger)
			finals[i] = summary.FinalBankroll
			rois[i] = summary.ROI
			drawdowns[i] = summary.MaxDrawdown
			bankrupt[i] = result.Status == StatusBankrupt
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return MonteCarloResult{}, err
	}

	ruined := 0
	for _, b := range bankrupt {
		if b {
			ruined++
		}
	}

	return MonteCarloResult{
		Iterations:          cfg.Iterations,
		Seed:                cfg.Seed,
		MeanROI:             average(rois),
		StdROI:              stddev(rois),
		MeanMaxDrawdown:     average(drawdowns),
		ProbabilityOfProfit: probabilityAbove(finals, s.config.InitialBankroll),
		ProbabilityOfRuin:   float64(ruined) / float64(cfg.Iterations),
		Percentiles: map[string]float64{
			"p05": percentile(finals, 0.05),
			"p25": percentile(finals, 0.25),
			"p50": percentile(finals, 0.50),
			"p75": percentile(finals, 0.75),
			"p95": percentile(finals, 0.95),
		},
		ConfidenceIntervals: CalculateConfidenceIntervals(finals, []float64{0.9, 0.95, 0.99}),
		Distribution:        finals,
	}, nil
}

func shuffleStream(ordered []models.BetOpportunity, seed int64) []models.BetOpportunity {
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(len(ordered))
	shuffled := make([]models.BetOpportunity, len(ordered))
	for j, k := range perm {
		shuffled[j] = ordered[k].WithDate(ordered[j].Date)
	}
	return shuffled
}

// CalculateConfidenceIntervals returns the width of the central interval for each level
func CalculateConfidenceIntervals(distribution []float64, levels []float64) map[string]float64 {
	results := make(map[string]float64)
	for _, level := range levels {
		p := (1.0 - level) / 2.0
		low := percentile(distribution, p)
		high := percentile(distribution, 1.0-p)
		results[formatPercent(level)] = high - low
	}
	return results
}

// ToJSON exports the monte carlo result to JSON
func (m MonteCarloResult) ToJSON() string {
	data, _ := json.Marshal(m)
	return string(data)
}

func probabilityAbove(values []float64, threshold float64) float64 {
	if len(values) == 0 {
		return 0
	}
	count := 0
	for _, v := range values {
		if v > threshold {
			count++
		}
	}
	return float64(count) / float64(len(values))
}

func formatPercent(level float64) string {
	return fmt.Sprintf("%.0f%%", level*100)
}
