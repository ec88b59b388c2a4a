package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/tennis-edge/internal/database"
	"github.com/yourusername/tennis-edge/internal/models"
)

const (
	errScanBacktestRun = "failed to scan backtest run: %w"

	selectRunColumns = `
		SELECT id, strategy_name, status, run_date, start_date, end_date,
			initial_bankroll, final_bankroll, roi, hit_rate, max_drawdown,
			bet_count, parameters, created_at
		FROM backtest_runs`
)

// PostgresBacktestRunRepository implements BacktestRunRepository for PostgreSQL
type PostgresBacktestRunRepository struct {
	db *database.DB
}

// NewPostgresBacktestRunRepository creates a new backtest run repository
func NewPostgresBacktestRunRepository(db *database.DB) BacktestRunRepository {
	return &PostgresBacktestRunRepository{db: db}
}

// SaveRun inserts a run and its ledger in one transaction
func (r *PostgresBacktestRunRepository) SaveRun(ctx context.Context, run *models.BacktestRun, ledger []models.LedgerRow) error {
	if run == nil {
		return fmt.Errorf("run is required")
	}

	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO backtest_runs (
				id, strategy_name, status, run_date, start_date, end_date,
				initial_bankroll, final_bankroll, roi, hit_rate, max_drawdown,
				bet_count, parameters, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
			run.ID, run.StrategyName, run.Status, run.RunDate, run.StartDate, run.EndDate,
			run.InitialBankroll, run.FinalBankroll, run.ROI, run.HitRate, run.MaxDrawdown,
			run.BetCount, run.Parameters, run.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to save backtest run: %w", err)
		}

		if len(ledger) == 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for _, row := range ledger {
			batch.Queue(`
				INSERT INTO ledger_entries (
					run_id, sequence, match_id, match_date, side, decimal_odds,
					stake_fraction, staked_amount, payout, bankroll_after
				) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
				run.ID, row.Sequence, row.MatchID, row.MatchDate, string(row.Side), row.DecimalOdds,
				row.StakeFraction, row.StakedAmount, row.Payout, row.BankrollAfter,
			)
		}

		results := tx.SendBatch(ctx, batch)
		for i := range ledger {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return fmt.Errorf("failed to save ledger entry %d: %w", ledger[i].Sequence, err)
			}
		}
		return results.Close()
	})
}

// GetByID retrieves a run by id
func (r *PostgresBacktestRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.BacktestRun, error) {
	row := r.db.GetPool().QueryRow(ctx, selectRunColumns+` WHERE id = $1`, id)

	run, err := scanRun(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf(errScanBacktestRun, err)
	}
	return run, nil
}

// GetLatest retrieves the most recent runs
func (r *PostgresBacktestRunRepository) GetLatest(ctx context.Context, limit int) ([]*models.BacktestRun, error) {
	rows, err := r.db.GetPool().Query(ctx, selectRunColumns+` ORDER BY run_date DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest backtest runs: %w", err)
	}
	return collectRuns(rows)
}

// GetByStrategyName retrieves the most recent runs of one strategy
func (r *PostgresBacktestRunRepository) GetByStrategyName(ctx context.Context, name string, limit int) ([]*models.BacktestRun, error) {
	rows, err := r.db.GetPool().Query(ctx,
		selectRunColumns+` WHERE strategy_name = $1 ORDER BY run_date DESC LIMIT $2`, name, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query backtest runs by strategy: %w", err)
	}
	return collectRuns(rows)
}

// GetLedger retrieves a run's ledger in sequence order
func (r *PostgresBacktestRunRepository) GetLedger(ctx context.Context, runID uuid.UUID) ([]models.LedgerRow, error) {
	rows, err := r.db.GetPool().Query(ctx, `
		SELECT run_id, sequence, match_id, match_date, side, decimal_odds,
			stake_fraction, staked_amount, payout, bankroll_after
		FROM ledger_entries WHERE run_id = $1 ORDER BY sequence`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger: %w", err)
	}
	defer rows.Close()

	var ledger []models.LedgerRow
	for rows.Next() {
		var row models.LedgerRow
		var side string
		if err := rows.Scan(
			&row.RunID, &row.Sequence, &row.MatchID, &row.MatchDate, &side, &row.DecimalOdds,
			&row.StakeFraction, &row.StakedAmount, &row.Payout, &row.BankrollAfter,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		row.Side = models.Side(side)
		ledger = append(ledger, row)
	}
	return ledger, rows.Err()
}

// Delete removes a run; its ledger is removed by cascade
func (r *PostgresBacktestRunRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.GetPool().Exec(ctx, `DELETE FROM backtest_runs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete backtest run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func scanRun(row pgx.Row) (*models.BacktestRun, error) {
	run := &models.BacktestRun{}
	err := row.Scan(
		&run.ID, &run.StrategyName, &run.Status, &run.RunDate, &run.StartDate, &run.EndDate,
		&run.InitialBankroll, &run.FinalBankroll, &run.ROI, &run.HitRate, &run.MaxDrawdown,
		&run.BetCount, &run.Parameters, &run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return run, nil
}

func collectRuns(rows pgx.Rows) ([]*models.BacktestRun, error) {
	defer rows.Close()

	var runs []*models.BacktestRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf(errScanBacktestRun, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
