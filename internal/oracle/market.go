package oracle

import (
	"context"
	"fmt"

	"github.com/yourusername/tennis-edge/internal/odds"
)

// MarketEstimator reads the vig-free probability off the quoted prices.
// Staking against it yields no edge, which makes it a useful control.
type MarketEstimator struct{}

// NewMarketEstimator creates a market-implied estimator
func NewMarketEstimator() *MarketEstimator {
	return &MarketEstimator{}
}

// Name returns the estimator name
func (e *MarketEstimator) Name() string {
	return "market"
}

// Estimate returns player A's fair probability
func (e *MarketEstimator) Estimate(ctx context.Context, f MatchFeatures) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if f.DecimalOddsA == 0 || f.DecimalOddsB == 0 {
		return 0, ErrMissingQuotes
	}
	market, err := odds.RemoveVig(f.DecimalOddsA, f.DecimalOddsB)
	if err != nil {
		return 0, fmt.Errorf("remove vig: %w", err)
	}
	return market.ProbabilityA, nil
}
