package backtest

import (
	"time"

	"github.com/yourusername/tennis-edge/internal/models"
)

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func newOpp(id string, d int, p, oddsA, oddsB float64, outcome models.Outcome) models.BetOpportunity {
	o := models.BetOpportunity{
		MatchID:  id,
		Date:     day(d),
		PlayerA:  "A " + id,
		PlayerB:  "B " + id,
		Estimate: models.ProbabilityEstimate{MatchID: id, ProbabilityPlayerAWins: p},
		QuoteA:   models.OddsQuote{Side: models.SidePlayerA, DecimalOdds: oddsA},
		QuoteB:   models.OddsQuote{Side: models.SidePlayerB, DecimalOdds: oddsB},
	}
	if outcome != "" {
		o.RealizedOutcome = models.OutcomePtr(outcome)
	}
	return o
}

// fixedStrategy always backs one side with a constant fraction
type fixedStrategy struct {
	side     models.Side
	fraction float64
}

func (f fixedStrategy) Name() string { return "fixed" }

func (f fixedStrategy) Decide(opp models.BetOpportunity) (models.StakeDecision, error) {
	if err := opp.Validate(false); err != nil {
		return models.StakeDecision{}, err
	}
	return models.StakeDecision{
		MatchID:        opp.MatchID,
		Side:           f.side,
		StakeFraction:  f.fraction,
		Classification: models.EVPositive,
		Probability:    opp.Estimate.ProbabilityFor(f.side),
		DecimalOdds:    opp.Quote(f.side).DecimalOdds,
	}, nil
}

func (f fixedStrategy) GetParameters() map[string]interface{} {
	return map[string]interface{}{"fraction": f.fraction}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.MonteCarloIterations = 50
	return cfg
}

// allInConfig lets a strategy stake the whole bankroll
func allInConfig() Config {
	cfg := testConfig()
	cfg.MaxFraction = 1.0
	return cfg
}

// mixedStream has positive and negative edges on both sides with mixed results
func mixedStream() []models.BetOpportunity {
	return []models.BetOpportunity{
		newOpp("m01", 0, 0.60, 2.00, 1.80, models.OutcomePlayerAWon),
		newOpp("m02", 0, 0.35, 1.50, 3.10, models.OutcomePlayerBWon),
		newOpp("m03", 1, 0.55, 2.10, 1.75, models.OutcomePlayerBWon),
		newOpp("m04", 2, 0.50, 1.91, 1.91, models.OutcomePlayerAWon),
		newOpp("m05", 3, 0.70, 1.65, 2.40, models.OutcomePlayerAWon),
		newOpp("m06", 3, 0.45, 2.50, 1.60, models.OutcomePlayerBWon),
		newOpp("m07", 4, 0.62, 1.95, 1.90, models.OutcomePlayerBWon),
		newOpp("m08", 5, 0.30, 2.90, 1.35, models.OutcomePlayerAWon),
		newOpp("m09", 6, 0.58, 2.05, 1.80, models.OutcomePlayerAWon),
		newOpp("m10", 7, 0.40, 2.20, 1.55, models.OutcomePlayerBWon),
	}
}
