package models

import "time"

// EVClass classifies an expected value against a dead-zone epsilon
type EVClass string

const (
	EVPositive EVClass = "POSITIVE_EV"
	EVNegative EVClass = "NEGATIVE_EV"
	EVNeutral  EVClass = "NEUTRAL"
)

// StakeDecision is the sizing outcome for one opportunity
type StakeDecision struct {
	MatchID        string  `json:"match_id"`
	Side           Side    `json:"side"`
	StakeFraction  float64 `json:"stake_fraction"`
	ExpectedValue  float64 `json:"expected_value"`
	Classification EVClass `json:"classification"`
	Probability    float64 `json:"probability"`
	DecimalOdds    float64 `json:"decimal_odds"`
	FullKelly      float64 `json:"full_kelly"`
}

// IsBet reports whether the decision commits capital
func (d StakeDecision) IsBet() bool {
	return d.Side != SideNoBet && d.StakeFraction > 0
}

// LedgerEntry is one append-only row of a simulation ledger
type LedgerEntry struct {
	Sequence       int       `json:"sequence"`
	MatchID        string    `json:"match_id"`
	Date           time.Time `json:"date"`
	Side           Side      `json:"side"`
	DecimalOdds    float64   `json:"decimal_odds"`
	ExpectedValue  float64   `json:"expected_value"`
	StakeFraction  float64   `json:"stake_fraction"`
	StakedAmount   float64   `json:"staked_amount"`
	Payout         float64   `json:"payout"`
	BankrollBefore float64   `json:"bankroll_before"`
	BankrollAfter  float64   `json:"bankroll_after"`
	Won            bool      `json:"won"`
}

// IsBet reports whether the entry staked any capital
func (e LedgerEntry) IsBet() bool {
	return e.Side != SideNoBet && e.StakedAmount > 0
}

// Ledger is the chronological audit trail of one simulation run
type Ledger struct {
	InitialBankroll float64       `json:"initial_bankroll"`
	Entries         []LedgerEntry `json:"entries"`
}

// FinalBankroll returns the bankroll after the last entry
func (l Ledger) FinalBankroll() float64 {
	if len(l.Entries) == 0 {
		return l.InitialBankroll
	}
	return l.Entries[len(l.Entries)-1].BankrollAfter
}

// CalibrationBin summarizes predictions falling in [LowerBound, UpperBound)
type CalibrationBin struct {
	LowerBound        float64 `json:"lower_bound"`
	UpperBound        float64 `json:"upper_bound"`
	PredictedMean     float64 `json:"predicted_mean"`
	ObservedFrequency float64 `json:"observed_frequency"`
	SampleCount       int     `json:"sample_count"`
}
