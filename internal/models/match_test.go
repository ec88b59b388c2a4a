package models

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validOpportunity() BetOpportunity {
	return BetOpportunity{
		MatchID:  "m1",
		Date:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Estimate: ProbabilityEstimate{MatchID: "m1", ProbabilityPlayerAWins: 0.6},
		QuoteA:   OddsQuote{Side: SidePlayerA, DecimalOdds: 2.0},
		QuoteB:   OddsQuote{Side: SidePlayerB, DecimalOdds: 1.9},
	}
}

func TestNewProbabilityEstimateRejectsBoundaries(t *testing.T) {
	for _, p := range []float64{0, 1, -0.1, 1.2, math.NaN()} {
		_, err := NewProbabilityEstimate("m1", p)
		assert.ErrorIs(t, err, ErrInvalidProbability, "p=%v", p)
	}

	est, err := NewProbabilityEstimate("m1", 0.35)
	require.NoError(t, err)
	assert.InDelta(t, 0.65, est.ProbabilityFor(SidePlayerB), 1e-12)
	assert.Equal(t, 0.35, est.ProbabilityFor(SidePlayerA))
}

func TestNewOddsQuoteRejectsNonPositiveEdge(t *testing.T) {
	for _, d := range []float64{1.0, 0.5, 0, -2, math.Inf(1), math.NaN()} {
		_, err := NewOddsQuote(SidePlayerA, d)
		assert.ErrorIs(t, err, ErrInvalidOdds, "odds=%v", d)
	}

	_, err := NewOddsQuote(SideNoBet, 2.0)
	assert.ErrorIs(t, err, ErrInvalidOdds)

	q, err := NewOddsQuote(SidePlayerB, 1.01)
	require.NoError(t, err)
	assert.Equal(t, SidePlayerB, q.Side)
}

func TestBetOpportunityValidate(t *testing.T) {
	opp := validOpportunity()
	require.NoError(t, opp.Validate(false))
	assert.ErrorIs(t, opp.Validate(true), ErrInsufficientData)

	opp.RealizedOutcome = OutcomePtr(OutcomePlayerBWon)
	require.NoError(t, opp.Validate(true))

	bad := opp
	bad.QuoteB.DecimalOdds = 1.0
	assert.ErrorIs(t, bad.Validate(true), ErrInvalidOdds)

	bad = opp
	bad.Estimate.ProbabilityPlayerAWins = 1
	assert.ErrorIs(t, bad.Validate(true), ErrInvalidProbability)

	bad = opp
	bad.MatchID = ""
	assert.ErrorIs(t, bad.Validate(false), ErrInsufficientData)

	unknown := Outcome("DRAW")
	bad = opp
	bad.RealizedOutcome = &unknown
	assert.ErrorIs(t, bad.Validate(true), ErrInsufficientData)
}

func TestSideAndOutcomeHelpers(t *testing.T) {
	assert.Equal(t, SidePlayerB, SidePlayerA.Opponent())
	assert.Equal(t, SidePlayerA, SidePlayerB.Opponent())
	assert.Equal(t, SideNoBet, SideNoBet.Opponent())
	assert.Equal(t, SidePlayerA, OutcomePlayerAWon.Winner())
	assert.Equal(t, SidePlayerB, OutcomePlayerBWon.Winner())
}

func TestLedgerFinalBankroll(t *testing.T) {
	ledger := Ledger{InitialBankroll: 1000}
	assert.Equal(t, 1000.0, ledger.FinalBankroll())

	ledger.Entries = append(ledger.Entries, LedgerEntry{BankrollAfter: 1100})
	assert.Equal(t, 1100.0, ledger.FinalBankroll())
}

func TestNewLedgerRowRoundsMoney(t *testing.T) {
	row := NewLedgerRow(uuid.New(), LedgerEntry{Sequence: 3, MatchID: "m3", StakedAmount: 12.345678, Payout: -12.345678, BankrollAfter: 987.654321})
	assert.Equal(t, "12.35", row.StakedAmount.StringFixed(2))
	assert.Equal(t, "-12.35", row.Payout.StringFixed(2))
	assert.Equal(t, "987.65", row.BankrollAfter.StringFixed(2))
	assert.Equal(t, 3, row.Sequence)
}
