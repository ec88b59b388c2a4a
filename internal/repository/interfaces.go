package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yourusername/tennis-edge/internal/models"
)

// BacktestRunRepository persists simulation runs and their ledgers
type BacktestRunRepository interface {
	SaveRun(ctx context.Context, run *models.BacktestRun, ledger []models.LedgerRow) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.BacktestRun, error)
	GetLatest(ctx context.Context, limit int) ([]*models.BacktestRun, error)
	GetByStrategyName(ctx context.Context, name string, limit int) ([]*models.BacktestRun, error)
	GetLedger(ctx context.Context, runID uuid.UUID) ([]models.LedgerRow, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
