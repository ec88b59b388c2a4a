package database

import (
	"context"
	"fmt"
)

// Schema creates the tables used to persist simulation runs
const Schema = `
CREATE TABLE IF NOT EXISTS backtest_runs (
	id               UUID PRIMARY KEY,
	strategy_name    TEXT NOT NULL,
	status           TEXT NOT NULL,
	run_date         TIMESTAMPTZ NOT NULL,
	start_date       TIMESTAMPTZ,
	end_date         TIMESTAMPTZ,
	initial_bankroll NUMERIC(18,2) NOT NULL,
	final_bankroll   NUMERIC(18,2) NOT NULL,
	roi              DOUBLE PRECISION NOT NULL,
	hit_rate         DOUBLE PRECISION NOT NULL,
	max_drawdown     DOUBLE PRECISION NOT NULL,
	bet_count        INTEGER NOT NULL,
	parameters       JSONB NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_backtest_runs_run_date ON backtest_runs (run_date DESC);

CREATE TABLE IF NOT EXISTS ledger_entries (
	run_id         UUID NOT NULL REFERENCES backtest_runs (id) ON DELETE CASCADE,
	sequence       INTEGER NOT NULL,
	match_id       TEXT NOT NULL,
	match_date     TIMESTAMPTZ NOT NULL,
	side           TEXT NOT NULL,
	decimal_odds   DOUBLE PRECISION NOT NULL,
	stake_fraction DOUBLE PRECISION NOT NULL,
	staked_amount  NUMERIC(18,2) NOT NULL,
	payout         NUMERIC(18,2) NOT NULL,
	bankroll_after NUMERIC(18,2) NOT NULL,
	PRIMARY KEY (run_id, sequence)
);
`

// EnsureSchema applies the schema; every statement is idempotent
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
