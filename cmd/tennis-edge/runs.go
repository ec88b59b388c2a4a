package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yourusername/tennis-edge/internal/models"
)

var (
	runsLimit    int
	runsStrategy string
	runsID       string
)

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "Number of runs to list")
	runsCmd.Flags().StringVar(&runsStrategy, "strategy", "", "Only list runs of this strategy")
	runsCmd.Flags().StringVar(&runsID, "run", "", "Print the ledger of one run")
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List persisted backtest runs or print a run's ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRuns(cmd.Context(), cmd.OutOrStdout())
	},
}

func runRuns(ctx context.Context, out io.Writer) error {
	repos, closeDB, err := openRepositories(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	if runsID != "" {
		id, err := uuid.Parse(runsID)
		if err != nil {
			return fmt.Errorf("invalid run id %q: %w", runsID, err)
		}
		run, err := repos.BacktestRun.GetByID(ctx, id)
		if err != nil {
			return err
		}
		ledger, err := repos.BacktestRun.GetLedger(ctx, id)
		if err != nil {
			return err
		}
		return writeJSON(out, struct {
			Run    *models.BacktestRun `json:"run"`
			Ledger []models.LedgerRow  `json:"ledger"`
		}{run, ledger})
	}

	var runs []*models.BacktestRun
	if runsStrategy != "" {
		runs, err = repos.BacktestRun.GetByStrategyName(ctx, runsStrategy, runsLimit)
	} else {
		runs, err = repos.BacktestRun.GetLatest(ctx, runsLimit)
	}
	if err != nil {
		return err
	}
	return printRuns(out, runs)
}

func printRuns(out io.Writer, runs []*models.BacktestRun) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tDATE\tSTRATEGY\tSTATUS\tBETS\tFINAL\tROI")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%.2f%%\n",
			run.ID, run.RunDate.Format("2006-01-02 15:04"), run.StrategyName, run.Status,
			run.BetCount, run.FinalBankroll.StringFixed(2), run.ROI*100)
	}
	return w.Flush()
}
