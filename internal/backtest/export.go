package backtest

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/yourusername/tennis-edge/internal/models"
	"github.com/yourusername/tennis-edge/internal/strategy"
)

// RunExport is the full, machine-readable record of one run
type RunExport struct {
	RunID         string                     `json:"run_id"`
	Strategy      strategy.StrategyMetadata `json:"strategy"`
	ParameterHash string                     `json:"parameter_hash"`
	Status        Status                     `json:"status"`
	Skipped       int                        `json:"skipped"`
	Config        Config                     `json:"config"`
	Summary       Summary                    `json:"summary"`
	Ledger        models.Ledger              `json:"ledger"`
	EquityCurve   EquityCurve                `json:"equity_curve"`
	Calibration   *CalibrationReport         `json:"calibration,omitempty"`
}

// NewRunExport assembles the export of a finished run
func NewRunExport(result *Result, calibration *CalibrationReport) RunExport {
	return RunExport{
		RunID:         result.RunID.String(),
		Strategy:      result.Strategy,
		ParameterHash: HashParameters(result.Strategy.Parameters),
		Status:        result.Status,
		Skipped:       result.Skipped,
		Config:        result.Config,
		Summary:       Summarize(result.Ledger),
		Ledger:        result.Ledger,
		EquityCurve:   EquityCurveFromLedger(result.Ledger),
		Calibration:   calibration,
	}
}

// ExportToJSON writes export data to JSON file
func ExportToJSON(export any, outputPath string) error {
	if outputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal export: %w", err)
	}
	return os.WriteFile(outputPath, data, 0o644)
}

// ToDB converts a result into its persisted run and ledger rows
func (r *Result) ToDB() (*models.BacktestRun, []models.LedgerRow, error) {
	params, err := json.Marshal(map[string]any{
		"strategy": r.Strategy.Parameters,
		"config":   r.Config,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal run parameters: %w", err)
	}

	summary := Summarize(r.Ledger)
	run := &models.BacktestRun{
		ID:              r.RunID,
		StrategyName:    r.Strategy.Name,
		Status:          string(r.Status),
		RunDate:         time.Now().UTC(),
		InitialBankroll: decimal.NewFromFloat(summary.InitialBankroll).Round(2),
		FinalBankroll:   decimal.NewFromFloat(summary.FinalBankroll).Round(2),
		ROI:             summary.ROI,
		HitRate:         summary.HitRate,
		MaxDrawdown:     summary.MaxDrawdown,
		BetCount:        summary.BetCount,
		Parameters:      params,
		CreatedAt:       time.Now().UTC(),
	}
	if n := len(r.Ledger.Entries); n > 0 {
		run.StartDate = r.Ledger.Entries[0].Date
		run.EndDate = r.Ledger.Entries[n-1].Date
	}

	rows := make([]models.LedgerRow, 0, len(r.Ledger.Entries))
	for _, entry := range r.Ledger.Entries {
		rows = append(rows, models.NewLedgerRow(r.RunID, entry))
	}
	return run, rows, nil
}

// HashParameters creates a stable hash for parameter maps
func HashParameters(params map[string]interface{}) string {
	data, _ := json.Marshal(params)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}
