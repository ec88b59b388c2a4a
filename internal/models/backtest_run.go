package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BacktestRun represents a persisted simulation run
type BacktestRun struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	StrategyName    string          `db:"strategy_name" json:"strategy_name"`
	Status          string          `db:"status" json:"status"`
	RunDate         time.Time       `db:"run_date" json:"run_date"`
	StartDate       time.Time       `db:"start_date" json:"start_date"`
	EndDate         time.Time       `db:"end_date" json:"end_date"`
	InitialBankroll decimal.Decimal `db:"initial_bankroll" json:"initial_bankroll"`
	FinalBankroll   decimal.Decimal `db:"final_bankroll" json:"final_bankroll"`
	ROI             float64         `db:"roi" json:"roi"`
	HitRate         float64         `db:"hit_rate" json:"hit_rate"`
	MaxDrawdown     float64         `db:"max_drawdown" json:"max_drawdown"`
	BetCount        int             `db:"bet_count" json:"bet_count"`
	Parameters      json.RawMessage `db:"parameters" json:"parameters"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}

// LedgerRow is a persisted ledger entry belonging to a run
type LedgerRow struct {
	RunID         uuid.UUID       `db:"run_id" json:"run_id"`
	Sequence      int             `db:"sequence" json:"sequence"`
	MatchID       string          `db:"match_id" json:"match_id"`
	MatchDate     time.Time       `db:"match_date" json:"match_date"`
	Side          Side            `db:"side" json:"side"`
	DecimalOdds   float64         `db:"decimal_odds" json:"decimal_odds"`
	StakeFraction float64         `db:"stake_fraction" json:"stake_fraction"`
	StakedAmount  decimal.Decimal `db:"staked_amount" json:"staked_amount"`
	Payout        decimal.Decimal `db:"payout" json:"payout"`
	BankrollAfter decimal.Decimal `db:"bankroll_after" json:"bankroll_after"`
}

// NewLedgerRow converts a ledger entry into its persisted form
func NewLedgerRow(runID uuid.UUID, e LedgerEntry) LedgerRow {
	return LedgerRow{
		RunID:         runID,
		Sequence:      e.Sequence,
		MatchID:       e.MatchID,
		MatchDate:     e.Date,
		Side:          e.Side,
		DecimalOdds:   e.DecimalOdds,
		StakeFraction: e.StakeFraction,
		StakedAmount:  decimal.NewFromFloat(e.StakedAmount).Round(2),
		Payout:        decimal.NewFromFloat(e.Payout).Round(2),
		BankrollAfter: decimal.NewFromFloat(e.BankrollAfter).Round(2),
	}
}
