package models

import (
	"fmt"
	"math"
	"time"
)

// Side identifies which player a wager backs
type Side string

const (
	SidePlayerA Side = "PLAYER_A"
	SidePlayerB Side = "PLAYER_B"
	SideNoBet   Side = "NO_BET"
)

// Opponent returns the other side of a two-way market
func (s Side) Opponent() Side {
	switch s {
	case SidePlayerA:
		return SidePlayerB
	case SidePlayerB:
		return SidePlayerA
	default:
		return SideNoBet
	}
}

// Outcome represents the realized result of a match
type Outcome string

const (
	OutcomePlayerAWon Outcome = "PLAYER_A_WON"
	OutcomePlayerBWon Outcome = "PLAYER_B_WON"
)

// Winner returns the side that won
func (o Outcome) Winner() Side {
	switch o {
	case OutcomePlayerAWon:
		return SidePlayerA
	case OutcomePlayerBWon:
		return SidePlayerB
	default:
		return SideNoBet
	}
}

// IsValid reports whether the outcome is one of the known values
func (o Outcome) IsValid() bool {
	return o == OutcomePlayerAWon || o == OutcomePlayerBWon
}

// OddsQuote is a bookmaker price for one side, normalized to decimal odds
type OddsQuote struct {
	Side        Side    `json:"side"`
	DecimalOdds float64 `json:"decimal_odds"`
}

// NewOddsQuote builds a quote, rejecting prices that imply certain loss
func NewOddsQuote(side Side, decimalOdds float64) (OddsQuote, error) {
	q := OddsQuote{Side: side, DecimalOdds: decimalOdds}
	return q, q.Validate()
}

// Validate checks the decimal odds invariant
func (q OddsQuote) Validate() error {
	if q.Side != SidePlayerA && q.Side != SidePlayerB {
		return fmt.Errorf("%w: quote side %q", ErrInvalidOdds, q.Side)
	}
	return ValidateDecimalOdds(q.DecimalOdds)
}

// ValidateDecimalOdds ensures odds are finite and strictly greater than 1.0
func ValidateDecimalOdds(d float64) error {
	if math.IsNaN(d) || math.IsInf(d, 0) || d <= 1.0 {
		return fmt.Errorf("%w: decimal odds must be greater than 1.0, got %v", ErrInvalidOdds, d)
	}
	return nil
}

// ValidateProbability ensures p lies strictly inside (0,1)
func ValidateProbability(p float64) error {
	if math.IsNaN(p) || p <= 0 || p >= 1 {
		return fmt.Errorf("%w: probability must be in (0,1), got %v", ErrInvalidProbability, p)
	}
	return nil
}

// ProbabilityEstimate is the model's belief that player A wins a match
type ProbabilityEstimate struct {
	MatchID                string  `json:"match_id"`
	ProbabilityPlayerAWins float64 `json:"probability_player_a_wins"`
}

// NewProbabilityEstimate builds an estimate, rejecting boundary values
func NewProbabilityEstimate(matchID string, p float64) (ProbabilityEstimate, error) {
	e := ProbabilityEstimate{MatchID: matchID, ProbabilityPlayerAWins: p}
	return e, e.Validate()
}

// Validate checks the open-interval invariant
func (e ProbabilityEstimate) Validate() error {
	return ValidateProbability(e.ProbabilityPlayerAWins)
}

// ProbabilityFor returns the estimated win probability of the given side
func (e ProbabilityEstimate) ProbabilityFor(side Side) float64 {
	if side == SidePlayerB {
		return 1.0 - e.ProbabilityPlayerAWins
	}
	return e.ProbabilityPlayerAWins
}

// BetOpportunity is one priced matchup from the input feed
type BetOpportunity struct {
	MatchID         string              `json:"match_id"`
	Date            time.Time           `json:"date"`
	PlayerA         string              `json:"player_a,omitempty"`
	PlayerB         string              `json:"player_b,omitempty"`
	Surface         string              `json:"surface,omitempty"`
	Estimate        ProbabilityEstimate `json:"estimate"`
	QuoteA          OddsQuote           `json:"quote_a"`
	QuoteB          OddsQuote           `json:"quote_b"`
	RealizedOutcome *Outcome            `json:"realized_outcome,omitempty"`
}

// Quote returns the quote for the given side
func (o BetOpportunity) Quote(side Side) OddsQuote {
	if side == SidePlayerB {
		return o.QuoteB
	}
	return o.QuoteA
}

// HasOutcome reports whether the match result is known
func (o BetOpportunity) HasOutcome() bool {
	return o.RealizedOutcome != nil
}

// WithDate returns a copy of the opportunity stamped with a different date
func (o BetOpportunity) WithDate(date time.Time) BetOpportunity {
	o.Date = date
	return o
}

// Validate checks the opportunity; requireOutcome is set when backtesting
func (o BetOpportunity) Validate(requireOutcome bool) error {
	if o.MatchID == "" {
		return fmt.Errorf("%w: match id is required", ErrInsufficientData)
	}
	if o.Date.IsZero() {
		return fmt.Errorf("%w: match %s has no date", ErrInsufficientData, o.MatchID)
	}
	if err := o.Estimate.Validate(); err != nil {
		return fmt.Errorf("match %s: %w", o.MatchID, err)
	}
	if o.QuoteA.Side != SidePlayerA || o.QuoteB.Side != SidePlayerB {
		return fmt.Errorf("%w: match %s quotes must cover both players", ErrInvalidOdds, o.MatchID)
	}
	if err := o.QuoteA.Validate(); err != nil {
		return fmt.Errorf("match %s: %w", o.MatchID, err)
	}
	if err := o.QuoteB.Validate(); err != nil {
		return fmt.Errorf("match %s: %w", o.MatchID, err)
	}
	if requireOutcome {
		if o.RealizedOutcome == nil {
			return fmt.Errorf("%w: match %s has no realized outcome", ErrInsufficientData, o.MatchID)
		}
		if !o.RealizedOutcome.IsValid() {
			return fmt.Errorf("%w: match %s has unknown outcome %q", ErrInsufficientData, o.MatchID, *o.RealizedOutcome)
		}
	}
	return nil
}

// OutcomePtr is a helper for building opportunities with a known result
func OutcomePtr(o Outcome) *Outcome {
	return &o
}
