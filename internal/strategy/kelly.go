package strategy

import (
	"fmt"
	"math"

	"github.com/yourusername/tennis-edge/internal/models"
)

// Staking defaults
const (
	DefaultKellyMultiplier = 0.5
	DefaultMaxFraction     = 0.25
)

// breakevenTolerance absorbs rounding in p*d around the breakeven point
const breakevenTolerance = 1e-12

// FullKelly returns the unscaled Kelly fraction (p*b - q) / b with b = d-1.
// The value is negative when the bet has no edge and exactly zero at the
// breakeven probability 1/d.
func FullKelly(probability, decimalOdds float64) (float64, error) {
	if err := models.ValidateProbability(probability); err != nil {
		return 0, err
	}
	b := decimalOdds - 1.0
	if math.IsNaN(b) || math.IsInf(b, 0) || b <= 0 {
		return 0, fmt.Errorf("%w: net odds must be positive, got %v", models.ErrInvalidOdds, b)
	}
	// p*b - q == p*d - 1
	edge := probability*decimalOdds - 1.0
	if math.Abs(edge) <= breakevenTolerance {
		return 0, nil
	}
	return edge / b, nil
}

// ComputeStakeFraction sizes a bet as a fraction of bankroll using
// fractional Kelly. Edges at or below zero never stake, and the result
// never exceeds maxFraction however large the edge.
func ComputeStakeFraction(probability, decimalOdds, kellyMultiplier, maxFraction float64) (float64, error) {
	if err := validateRiskBounds(kellyMultiplier, maxFraction); err != nil {
		return 0, err
	}
	raw, err := FullKelly(probability, decimalOdds)
	if err != nil {
		return 0, err
	}
	if raw <= 0 {
		return 0, nil
	}
	return clamp(raw*kellyMultiplier, 0, maxFraction), nil
}

func validateRiskBounds(kellyMultiplier, maxFraction float64) error {
	if math.IsNaN(kellyMultiplier) || kellyMultiplier <= 0 || kellyMultiplier > 1 {
		return fmt.Errorf("kelly multiplier must be in (0,1], got %v", kellyMultiplier)
	}
	if math.IsNaN(maxFraction) || maxFraction <= 0 || maxFraction > 1 {
		return fmt.Errorf("max fraction must be in (0,1], got %v", maxFraction)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
