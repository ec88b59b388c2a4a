package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/tennis-edge/internal/backtest"
	"github.com/yourusername/tennis-edge/internal/metrics"
	"github.com/yourusername/tennis-edge/internal/models"
	"github.com/yourusername/tennis-edge/internal/odds"
)

var (
	assessProbability float64
	assessOddsA       string
	assessOddsB       string
	assessFormat      string
	assessMatchID     string

	sweepMultipliers []float64
	mcIterations     int
	mcSeed           int64
	persist          bool
)

func init() {
	assessCmd.Flags().Float64VarP(&assessProbability, "probability", "p", 0, "Estimated probability that player A wins")
	assessCmd.Flags().StringVar(&assessOddsA, "odds-a", "", "Price offered on player A")
	assessCmd.Flags().StringVar(&assessOddsB, "odds-b", "", "Price offered on player B")
	assessCmd.Flags().StringVarP(&assessFormat, "format", "f", string(odds.FormatDecimal), "Odds format: decimal, american or implied")
	assessCmd.Flags().StringVar(&assessMatchID, "match-id", "adhoc", "Identifier recorded in the decision")
	_ = assessCmd.MarkFlagRequired("probability")
	_ = assessCmd.MarkFlagRequired("odds-a")
	_ = assessCmd.MarkFlagRequired("odds-b")

	for _, cmd := range []*cobra.Command{backtestCmd, calibrateCmd, sweepCmd, monteCarloCmd} {
		cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Opportunity feed (.json or .jsonl)")
	}
	backtestCmd.Flags().BoolVar(&persist, "persist", false, "Store the run in PostgreSQL (requires database.enabled)")
	sweepCmd.Flags().Float64SliceVar(&sweepMultipliers, "multipliers", nil, "Kelly multipliers to compare (defaults to backtest.sweep_multipliers)")
	monteCarloCmd.Flags().IntVar(&mcIterations, "iterations", 0, "Number of shuffled replays (defaults to backtest.monte_carlo_iterations)")
	monteCarloCmd.Flags().Int64Var(&mcSeed, "seed", 0, "Base seed (defaults to backtest.monte_carlo_seed)")
}

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Size a stake for a single matchup",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAssess(cmd.OutOrStdout())
	},
}

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Replay a historical feed through the staking strategy",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBacktest(cmd.Context(), cmd.OutOrStdout())
	},
}

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Evaluate the reliability of the feed's probability estimates",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCalibrate(cmd.Context(), cmd.OutOrStdout())
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Compare Kelly multipliers over the same feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSweep(cmd.Context(), cmd.OutOrStdout())
	},
}

var monteCarloCmd = &cobra.Command{
	Use:   "montecarlo",
	Short: "Resample the order of the feed to estimate path risk",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMonteCarlo(cmd.Context(), cmd.OutOrStdout())
	},
}

type assessment struct {
	Decision models.StakeDecision `json:"decision"`
	Market   odds.FairMarket      `json:"market"`
}

func runAssess(out io.Writer) error {
	format, err := odds.ParseFormat(assessFormat)
	if err != nil {
		return err
	}
	quoteA, quoteB, err := odds.ParseQuotePair(assessOddsA, assessOddsB, format)
	if err != nil {
		return err
	}
	estimate, err := models.NewProbabilityEstimate(assessMatchID, assessProbability)
	if err != nil {
		return err
	}
	market, err := odds.RemoveVig(quoteA.DecimalOdds, quoteB.DecimalOdds)
	if err != nil {
		return err
	}

	sim, err := newSimulator()
	if err != nil {
		return err
	}
	decision, err := sim.Assess(models.BetOpportunity{
		MatchID:  assessMatchID,
		Date:     time.Now().UTC(),
		Estimate: estimate,
		QuoteA:   quoteA,
		QuoteB:   quoteB,
	})
	if err != nil {
		return err
	}

	return writeJSON(out, assessment{Decision: decision, Market: market})
}

func runBacktest(ctx context.Context, out io.Writer) error {
	loaded, err := loadFeed(ctx)
	if err != nil {
		return err
	}
	sim, err := newSimulator()
	if err != nil {
		return err
	}

	result, runErr := sim.Backtest(ctx, loaded.Opportunities)
	if result == nil {
		return runErr
	}

	summary := backtest.Summarize(result.Ledger)
	calibration, err := evaluateCalibration(loaded.Opportunities)
	if err != nil {
		appLogger.WithError(err).Warn("Skipping calibration")
	}
	fmt.Fprint(out, backtest.GenerateConsoleReport(result, summary, calibration))

	if dir := simConfig.OutputPath; dir != "" {
		base := filepath.Join(dir, "backtest_"+result.RunID.String())
		if err := backtest.ExportToJSON(backtest.NewRunExport(result, calibration), base+".json"); err != nil {
			return err
		}
		if err := backtest.GenerateCSVExport(summary, base+".csv"); err != nil {
			return fmt.Errorf("failed to write CSV summary: %w", err)
		}
		appLogger.WithField("path", base+".json").Info("Exported backtest run")
	}

	if persist && runErr == nil {
		if err := persistRun(ctx, result); err != nil {
			return err
		}
	}

	writeMetrics()
	return runErr
}

func runCalibrate(ctx context.Context, out io.Writer) error {
	loaded, err := loadFeed(ctx)
	if err != nil {
		return err
	}
	report, err := evaluateCalibration(loaded.Opportunities)
	if err != nil {
		return err
	}
	fmt.Fprint(out, backtest.GenerateCalibrationReport(*report))
	writeMetrics()
	return nil
}

func runSweep(ctx context.Context, out io.Writer) error {
	loaded, err := loadFeed(ctx)
	if err != nil {
		return err
	}
	sim, err := newSimulator()
	if err != nil {
		return err
	}

	multipliers := sweepMultipliers
	if len(multipliers) == 0 {
		multipliers = simConfig.SweepMultipliers
	}
	result, err := sim.RunSweep(ctx, loaded.Opportunities, multipliers)
	if err != nil {
		return err
	}
	fmt.Fprint(out, backtest.GenerateSweepReport(result))
	writeMetrics()
	return nil
}

func runMonteCarlo(ctx context.Context, out io.Writer) error {
	loaded, err := loadFeed(ctx)
	if err != nil {
		return err
	}
	sim, err := newSimulator()
	if err != nil {
		return err
	}

	mcConfig := backtest.MonteCarloConfigFrom(simConfig)
	if mcIterations > 0 {
		mcConfig.Iterations = mcIterations
	}
	if mcSeed != 0 {
		mcConfig.Seed = mcSeed
	}
	result, err := sim.RunMonteCarlo(ctx, loaded.Opportunities, mcConfig)
	if err != nil {
		return err
	}
	fmt.Fprint(out, backtest.GenerateMonteCarloReport(result))
	writeMetrics()
	return nil
}

func evaluateCalibration(stream []models.BetOpportunity) (*backtest.CalibrationReport, error) {
	binCount := simConfig.BinCount
	if binCount == 0 {
		binCount = backtest.DefaultConfig().BinCount
	}
	report, err := backtest.EvaluateCalibration(backtest.CalibrationSamplesFromOpportunities(stream), binCount)
	if err != nil {
		return nil, err
	}
	metrics.UpdateCalibration(report.CalibrationError, report.BrierScore)
	return &report, nil
}

func writeJSON(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
