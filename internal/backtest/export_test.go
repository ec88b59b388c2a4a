package backtest

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/tennis-edge/internal/models"
)

func TestResultToDB(t *testing.T) {
	sim, err := NewSimulator(testConfig(), nil, nil)
	require.NoError(t, err)
	result, err := sim.Backtest(context.Background(), mixedStream())
	require.NoError(t, err)

	run, rows, err := result.ToDB()
	require.NoError(t, err)

	assert.Equal(t, result.RunID, run.ID)
	assert.Equal(t, "kelly_value", run.StrategyName)
	assert.Equal(t, string(StatusCompleted), run.Status)
	assert.Equal(t, "1000", run.InitialBankroll.String())
	assert.True(t, run.StartDate.Equal(day(0)))
	assert.True(t, run.EndDate.Equal(day(7)))
	require.Len(t, rows, len(result.Ledger.Entries))
	assert.Equal(t, result.RunID, rows[0].RunID)
	assert.Equal(t, 1, rows[0].Sequence)

	var params map[string]any
	require.NoError(t, json.Unmarshal(run.Parameters, &params))
	assert.Contains(t, params, "strategy")
	assert.Contains(t, params, "config")
}

func TestNewRunExportAndWrite(t *testing.T) {
	sim, err := NewSimulator(testConfig(), nil, nil)
	require.NoError(t, err)
	result, err := sim.Backtest(context.Background(), mixedStream())
	require.NoError(t, err)

	calibration, err := EvaluateCalibration(CalibrationSamplesFromOpportunities(mixedStream()), 10)
	require.NoError(t, err)

	export := NewRunExport(result, &calibration)
	assert.Equal(t, result.RunID.String(), export.RunID)
	assert.Len(t, export.EquityCurve, len(result.Ledger.Entries)+1)
	assert.Equal(t, HashParameters(result.Strategy.Parameters), export.ParameterHash)

	path := filepath.Join(t.TempDir(), "runs", "export.json")
	require.NoError(t, ExportToJSON(export, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded RunExport
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, export.Summary, decoded.Summary)
	assert.Equal(t, len(export.Ledger.Entries), len(decoded.Ledger.Entries))
	require.NotNil(t, decoded.Calibration)

	assert.Error(t, ExportToJSON(export, ""))
}

func TestHashParametersStable(t *testing.T) {
	a := HashParameters(map[string]interface{}{"kelly_multiplier": 0.5, "max_fraction": 0.25})
	b := HashParameters(map[string]interface{}{"max_fraction": 0.25, "kelly_multiplier": 0.5})
	c := HashParameters(map[string]interface{}{"kelly_multiplier": 0.25, "max_fraction": 0.25})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestGenerateReports(t *testing.T) {
	sim, err := NewSimulator(testConfig(), nil, nil)
	require.NoError(t, err)
	result, err := sim.Backtest(context.Background(), []models.BetOpportunity{
		newOpp("m1", 0, 0.60, 2.00, 1.80, models.OutcomePlayerAWon),
	})
	require.NoError(t, err)

	calibration, err := EvaluateCalibration(perfectlyCalibrated(), 10)
	require.NoError(t, err)

	report := GenerateConsoleReport(result, Summarize(result.Ledger), &calibration)
	assert.Contains(t, report, "Status: COMPLETED")
	assert.Contains(t, report, "ROI: 10.00%")
	assert.Contains(t, report, "Calibration Error: 0.0000")

	sweep, err := sim.RunSweep(context.Background(), winningStream(), []float64{0.25, 0.5})
	require.NoError(t, err)
	assert.Contains(t, GenerateSweepReport(sweep), "Best multiplier: 0.50")

	mc, err := sim.RunMonteCarlo(context.Background(), winningStream(), MonteCarloConfig{Iterations: 5, Seed: 3})
	require.NoError(t, err)
	assert.Contains(t, GenerateMonteCarloReport(mc), "Iterations: 5 (seed 3)")

	path := filepath.Join(t.TempDir(), "summary.csv")
	require.NoError(t, GenerateCSVExport(Summarize(result.Ledger), path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "metric,value\n"))
	assert.Contains(t, string(data), "roi,0.1000")
}

func TestFromConfigDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.TieBreak = "random"
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.SweepMultipliers = []float64{0.5, 0}
	assert.Error(t, cfg.Validate())

	_, err := FromConfig(nil)
	assert.Error(t, err)
}
