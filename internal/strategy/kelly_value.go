package strategy

import (
	"fmt"

	"github.com/yourusername/tennis-edge/internal/models"
)

// KellyValueStrategy backs whichever side shows a positive expected value
// and sizes the stake with fractional Kelly.
// Only one side of a market is ever backed.
type KellyValueStrategy struct {
	NameValue       string
	KellyMultiplier float64
	MaxFraction     float64
	EVEpsilon       float64
}

// NewKellyValueStrategy creates a strategy with half-Kelly defaults
func NewKellyValueStrategy() *KellyValueStrategy {
	return &KellyValueStrategy{
		NameValue:       "kelly_value",
		KellyMultiplier: DefaultKellyMultiplier,
		MaxFraction:     DefaultMaxFraction,
		EVEpsilon:       DefaultEVEpsilon,
	}
}

// Name returns strategy name
func (s *KellyValueStrategy) Name() string {
	return s.NameValue
}

// Validate checks the risk parameters
func (s *KellyValueStrategy) Validate() error {
	if err := validateRiskBounds(s.KellyMultiplier, s.MaxFraction); err != nil {
		return err
	}
	if s.EVEpsilon < 0 {
		return fmt.Errorf("ev epsilon cannot be negative")
	}
	return nil
}

// Decide evaluates both sides of the market and returns a single decision
func (s *KellyValueStrategy) Decide(opp models.BetOpportunity) (models.StakeDecision, error) {
	if err := s.Validate(); err != nil {
		return models.StakeDecision{}, err
	}
	if err := opp.Validate(false); err != nil {
		return models.StakeDecision{}, err
	}

	best, err := s.evaluateSide(opp, models.SidePlayerA)
	if err != nil {
		return models.StakeDecision{}, err
	}
	other, err := s.evaluateSide(opp, models.SidePlayerB)
	if err != nil {
		return models.StakeDecision{}, err
	}
	if other.ExpectedValue > best.ExpectedValue {
		best = other
	}

	if best.Classification != models.EVPositive || best.StakeFraction <= 0 {
		best.Side = models.SideNoBet
		best.StakeFraction = 0
	}
	return best, nil
}

// GetParameters returns strategy parameters for exports
func (s *KellyValueStrategy) GetParameters() map[string]interface{} {
	return map[string]interface{}{
		"kelly_multiplier": s.KellyMultiplier,
		"max_fraction":     s.MaxFraction,
		"ev_epsilon":       s.EVEpsilon,
	}
}

func (s *KellyValueStrategy) evaluateSide(opp models.BetOpportunity, side models.Side) (models.StakeDecision, error) {
	p := opp.Estimate.ProbabilityFor(side)
	d := opp.Quote(side).DecimalOdds

	ev, err := ComputeEV(p, d)
	if err != nil {
		return models.StakeDecision{}, err
	}
	full, err := FullKelly(p, d)
	if err != nil {
		return models.StakeDecision{}, err
	}
	fraction, err := ComputeStakeFraction(p, d, s.KellyMultiplier, s.MaxFraction)
	if err != nil {
		return models.StakeDecision{}, err
	}

	return models.StakeDecision{
		MatchID:        opp.MatchID,
		Side:           side,
		StakeFraction:  fraction,
		ExpectedValue:  ev,
		Classification: Classify(ev, s.EVEpsilon),
		Probability:    p,
		DecimalOdds:    d,
		FullKelly:      full,
	}, nil
}
