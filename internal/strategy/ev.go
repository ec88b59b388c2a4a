package strategy

import (
	"github.com/yourusername/tennis-edge/internal/models"
)

// DefaultEVEpsilon is the dead-zone below which an edge is treated as noise
const DefaultEVEpsilon = 1e-6

// ComputeEV returns the expected profit per unit staked on a side with win
// probability p at decimal odds d: p*(d-1) - (1-p).
func ComputeEV(probability, decimalOdds float64) (float64, error) {
	if err := models.ValidateProbability(probability); err != nil {
		return 0, err
	}
	if err := models.ValidateDecimalOdds(decimalOdds); err != nil {
		return 0, err
	}
	return probability*(decimalOdds-1.0) - (1.0 - probability), nil
}

// Classify buckets an expected value using a symmetric dead zone
func Classify(ev, epsilon float64) models.EVClass {
	if epsilon < 0 {
		epsilon = 0
	}
	switch {
	case ev > epsilon:
		return models.EVPositive
	case ev < -epsilon:
		return models.EVNegative
	default:
		return models.EVNeutral
	}
}

// BreakevenProbability is the win probability at which EV is exactly zero
func BreakevenProbability(decimalOdds float64) (float64, error) {
	if err := models.ValidateDecimalOdds(decimalOdds); err != nil {
		return 0, err
	}
	return 1.0 / decimalOdds, nil
}
