package backtest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GenerateConsoleReport formats a run for terminal output
func GenerateConsoleReport(result *Result, summary Summary, calibration *CalibrationReport) string {
	var builder strings.Builder
	builder.WriteString("Backtest Report\n")
	builder.WriteString("================\n")
	if result != nil {
		builder.WriteString(fmt.Sprintf("Run: %s\n", result.RunID))
		builder.WriteString(fmt.Sprintf("Strategy: %s\n", result.Strategy.Name))
		builder.WriteString(fmt.Sprintf("Status: %s\n", result.Status))
		if result.Skipped > 0 {
			builder.WriteString(fmt.Sprintf("Skipped: %d\n", result.Skipped))
		}
	}
	builder.WriteString(fmt.Sprintf("Initial Bankroll: %.2f\n", summary.InitialBankroll))
	builder.WriteString(fmt.Sprintf("Final Bankroll: %.2f\n", summary.FinalBankroll))
	builder.WriteString(fmt.Sprintf("Total Return: %.2f\n", summary.TotalReturn))
	builder.WriteString(fmt.Sprintf("ROI: %.2f%%\n", summary.ROI*100))
	builder.WriteString(fmt.Sprintf("Bets: %d (wins %d, losses %d, no bet %d)\n", summary.BetCount, summary.Wins, summary.Losses, summary.NoBets))
	builder.WriteString(fmt.Sprintf("Hit Rate: %.2f%%\n", summary.HitRate*100))
	builder.WriteString(fmt.Sprintf("Yield: %.2f%%\n", summary.Yield*100))
	builder.WriteString(fmt.Sprintf("Max Drawdown: %.2f%% (%.2f)\n", summary.MaxDrawdown*100, summary.MaxDrawdownAmount))
	builder.WriteString(fmt.Sprintf("Sharpe Ratio: %.2f\n", summary.SharpeRatio))
	builder.WriteString(fmt.Sprintf("Longest Losing Streak: %d\n", summary.LongestLosingStreak))
	if calibration != nil {
		builder.WriteString(GenerateCalibrationReport(*calibration))
	}
	return builder.String()
}

// GenerateCalibrationReport formats the reliability table
func GenerateCalibrationReport(report CalibrationReport) string {
	var builder strings.Builder
	builder.WriteString("Calibration\n")
	builder.WriteString("-----------\n")
	builder.WriteString(fmt.Sprintf("Samples: %d (ignored %d)\n", report.SampleCount, report.IgnoredCount))
	builder.WriteString(fmt.Sprintf("Calibration Error: %.4f\n", report.CalibrationError))
	builder.WriteString(fmt.Sprintf("Brier Score: %.4f\n", report.BrierScore))
	builder.WriteString(fmt.Sprintf("Log Loss: %.4f\n", report.LogLoss))
	builder.WriteString(fmt.Sprintf("Accuracy: %.2f%%\n", report.Accuracy*100))
	for _, bin := range report.Bins {
		if bin.SampleCount == 0 {
			builder.WriteString(fmt.Sprintf("[%.2f, %.2f)  n=0\n", bin.LowerBound, bin.UpperBound))
			continue
		}
		builder.WriteString(fmt.Sprintf("[%.2f, %.2f)  n=%d  predicted=%.3f  observed=%.3f\n",
			bin.LowerBound, bin.UpperBound, bin.SampleCount, bin.PredictedMean, bin.ObservedFrequency))
	}
	return builder.String()
}

// GenerateSweepReport formats a Kelly multiplier sweep
func GenerateSweepReport(result SweepResult) string {
	var builder strings.Builder
	builder.WriteString("Kelly Multiplier Sweep\n")
	builder.WriteString("======================\n")
	for _, p := range result.Points {
		builder.WriteString(fmt.Sprintf("%.2f  %-9s  ROI %7.2f%%  drawdown %6.2f%%  final %.2f\n",
			p.KellyMultiplier, p.Status, p.Summary.ROI*100, p.Summary.MaxDrawdown*100, p.Summary.FinalBankroll))
	}
	if best, ok := result.Best(); ok {
		builder.WriteString(fmt.Sprintf("Best multiplier: %.2f\n", best.KellyMultiplier))
	} else {
		builder.WriteString("Best multiplier: none (all runs bankrupt)\n")
	}
	return builder.String()
}

// GenerateMonteCarloReport formats the resampled distribution
func GenerateMonteCarloReport(result MonteCarloResult) string {
	var builder strings.Builder
	builder.WriteString("Monte Carlo Order Resampling\n")
	builder.WriteString("============================\n")
	builder.WriteString(fmt.Sprintf("Iterations: %d (seed %d)\n", result.Iterations, result.Seed))
	builder.WriteString(fmt.Sprintf("Mean ROI: %.2f%% (std %.2f%%)\n", result.MeanROI*100, result.StdROI*100))
	builder.WriteString(fmt.Sprintf("Mean Max Drawdown: %.2f%%\n", result.MeanMaxDrawdown*100))
	builder.WriteString(fmt.Sprintf("Probability of Profit: %.2f%%\n", result.ProbabilityOfProfit*100))
	builder.WriteString(fmt.Sprintf("Probability of Ruin: %.2f%%\n", result.ProbabilityOfRuin*100))
	for _, key := range []string{"p05", "p25", "p50", "p75", "p95"} {
		builder.WriteString(fmt.Sprintf("Final bankroll %s: %.2f\n", key, result.Percentiles[key]))
	}
	return builder.String()
}

// GenerateCSVExport exports key metrics for spreadsheets
func GenerateCSVExport(summary Summary, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	csv := "metric,value\n" +
		fmt.Sprintf("initial_bankroll,%.4f\n", summary.InitialBankroll) +
		fmt.Sprintf("final_bankroll,%.4f\n", summary.FinalBankroll) +
		fmt.Sprintf("total_return,%.4f\n", summary.TotalReturn) +
		fmt.Sprintf("roi,%.4f\n", summary.ROI) +
		fmt.Sprintf("hit_rate,%.4f\n", summary.HitRate) +
		fmt.Sprintf("max_drawdown,%.4f\n", summary.MaxDrawdown) +
		fmt.Sprintf("bet_count,%d\n", summary.BetCount) +
		fmt.Sprintf("total_staked,%.4f\n", summary.TotalStaked) +
		fmt.Sprintf("yield,%.4f\n", summary.Yield) +
		fmt.Sprintf("sharpe_ratio,%.4f\n", summary.SharpeRatio)
	return os.WriteFile(outputPath, []byte(csv), 0o644)
}
