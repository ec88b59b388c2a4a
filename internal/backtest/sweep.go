package backtest

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/yourusername/tennis-edge/internal/models"
)

// SweepPoint is the outcome of one Kelly multiplier
type SweepPoint struct {
	KellyMultiplier float64 `json:"kelly_multiplier"`
	Status          Status  `json:"status"`
	Skipped         int     `json:"skipped"`
	Summary         Summary `json:"summary"`
}

// SweepResult holds one point per multiplier, in input order
type SweepResult struct {
	Points []SweepPoint `json:"points"`
	// BestIndex is the non-bankrupt point with the highest ROI, or -1
	BestIndex int `json:"best_index"`
}

// Best returns the best point, if any run survived
func (r SweepResult) Best() (SweepPoint, bool) {
	if r.BestIndex < 0 || r.BestIndex >= len(r.Points) {
		return SweepPoint{}, false
	}
	return r.Points[r.BestIndex], true
}

// RunSweep replays the stream once per Kelly multiplier, each run with its
// own state and a Kelly value strategy sharing the simulator's other
// staking parameters.
func (s *Simulator) RunSweep(ctx context.Context, stream []models.BetOpportunity, multipliers []float64) (SweepResult, error) {
	if len(multipliers) == 0 {
		return SweepResult{}, fmt.Errorf("at least one kelly multiplier is required")
	}
	if err := ValidateOrder(stream); err != nil {
		return SweepResult{}, err
	}

	runners := make([]*Simulator, len(multipliers))
	for i, m := range multipliers {
		cfg := s.config.WithKellyMultiplier(m)
		runner, err := NewSimulator(cfg, cfg.NewStrategy(), s.logger)
		if err != nil {
			return SweepResult{}, fmt.Errorf("kelly multiplier %v: %w", m, err)
		}
		runners[i] = runner.withMode(modeSweep)
	}

	ordered := OrderStream(stream, s.config.TieBreak)
	points := make([]SweepPoint, len(multipliers))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.parallelism())
	for i, runner := range runners {
		i, runner := i, runner
		g.Go(func() error {
			result, err := runner.run(gctx, ordered)
			if err != nil {
				return fmt.Errorf("kelly multiplier %v: %w", multipliers[i], err)
			}
			points[i] = SweepPoint{
				KellyMultiplier: multipliers[i],
				Status:          result.Status,
				Skipped:         result.Skipped,
				Summary:         Summarize(result.Ledger),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return SweepResult{}, err
	}

	return SweepResult{Points: points, BestIndex: bestSweepIndex(points)}, nil
}

func bestSweepIndex(points []SweepPoint) int {
	best := -1
	for i, p := range points {
		if p.Status == StatusBankrupt {
			continue
		}
		if best < 0 || p.Summary.ROI > points[best].Summary.ROI {
			best = i
		}
	}
	return best
}

// ToJSON exports the sweep result to JSON
func (r SweepResult) ToJSON() string {
	data, _ := json.Marshal(r)
	return string(data)
}
