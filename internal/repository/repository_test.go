package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/tennis-edge/internal/database"
	"github.com/yourusername/tennis-edge/internal/models"
)

func TestNewRepositoriesRequiresDB(t *testing.T) {
	_, err := NewRepositories(nil)
	assert.Error(t, err)
}

func TestBacktestRunRepositoryRoundTrip(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, db.HealthCheck(ctx))

	repos, err := NewRepositories(db)
	require.NoError(t, err)

	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	run := &models.BacktestRun{
		ID:              uuid.New(),
		StrategyName:    "kelly_value",
		Status:          "COMPLETED",
		RunDate:         time.Now().UTC().Truncate(time.Microsecond),
		StartDate:       start,
		EndDate:         start.AddDate(0, 0, 1),
		InitialBankroll: decimal.NewFromInt(1000),
		FinalBankroll:   decimal.RequireFromString("1100.00"),
		ROI:             0.1,
		HitRate:         1,
		BetCount:        1,
		Parameters:      json.RawMessage(`{"kelly_multiplier":0.5}`),
		CreatedAt:       time.Now().UTC().Truncate(time.Microsecond),
	}
	ledger := []models.LedgerRow{
		models.NewLedgerRow(run.ID, models.LedgerEntry{
			Sequence: 1, MatchID: "m1", Date: start, Side: models.SidePlayerA, DecimalOdds: 2.0,
			StakeFraction: 0.1, StakedAmount: 100, Payout: 100, BankrollBefore: 1000, BankrollAfter: 1100, Won: true,
		}),
		models.NewLedgerRow(run.ID, models.LedgerEntry{
			Sequence: 2, MatchID: "m2", Date: start.AddDate(0, 0, 1), Side: models.SideNoBet,
			BankrollBefore: 1100, BankrollAfter: 1100,
		}),
	}

	require.NoError(t, repos.BacktestRun.SaveRun(ctx, run, ledger))
	defer func() { _ = repos.BacktestRun.Delete(context.Background(), run.ID) }()

	stored, err := repos.BacktestRun.GetByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.StrategyName, stored.StrategyName)
	assert.True(t, run.FinalBankroll.Equal(stored.FinalBankroll))
	assert.JSONEq(t, string(run.Parameters), string(stored.Parameters))

	rows, err := repos.BacktestRun.GetLedger(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, models.SidePlayerA, rows[0].Side)
	assert.True(t, decimal.NewFromInt(100).Equal(rows[0].Payout))
	assert.Equal(t, models.SideNoBet, rows[1].Side)

	latest, err := repos.BacktestRun.GetByStrategyName(ctx, "kelly_value", 10)
	require.NoError(t, err)
	assert.NotEmpty(t, latest)

	require.NoError(t, repos.BacktestRun.Delete(ctx, run.ID))
	_, err = repos.BacktestRun.GetByID(ctx, run.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
