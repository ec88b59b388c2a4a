package odds

import "fmt"

// FairMarket holds vig-free probabilities for a two-way market
type FairMarket struct {
	ProbabilityA float64 `json:"probability_a"`
	ProbabilityB float64 `json:"probability_b"`
	// Overround is the sum of implied probabilities minus one. Negative
	// values mean the two prices together form an arbitrage.
	Overround float64 `json:"overround"`
}

// RemoveVig strips the bookmaker margin from a two-way market using the
// multiplicative method: each implied probability is divided by their sum.
//
// Example: 1.91 / 1.91 → implied 52.36% each, overround 4.7%, fair 50/50.
func RemoveVig(decimalA, decimalB float64) (FairMarket, error) {
	impliedA, err := ImpliedProbability(decimalA)
	if err != nil {
		return FairMarket{}, fmt.Errorf("player A price: %w", err)
	}
	impliedB, err := ImpliedProbability(decimalB)
	if err != nil {
		return FairMarket{}, fmt.Errorf("player B price: %w", err)
	}

	total := impliedA + impliedB
	return FairMarket{
		ProbabilityA: impliedA / total,
		ProbabilityB: impliedB / total,
		Overround:    total - 1,
	}, nil
}
