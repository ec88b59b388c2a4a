// Package main provides the tennis-edge command line tool.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/tennis-edge/internal/backtest"
	"github.com/yourusername/tennis-edge/internal/config"
	"github.com/yourusername/tennis-edge/internal/database"
	"github.com/yourusername/tennis-edge/internal/feed"
	"github.com/yourusername/tennis-edge/internal/logger"
	"github.com/yourusername/tennis-edge/internal/metrics"
	"github.com/yourusername/tennis-edge/internal/odds"
	"github.com/yourusername/tennis-edge/internal/oracle"
	"github.com/yourusername/tennis-edge/internal/repository"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	inputFile  string
	appLogger  *logrus.Logger
	cfg        *config.Config
	simConfig  backtest.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.AddCommand(assessCmd, backtestCmd, calibrateCmd, sweepCmd, monteCarloCmd, runsCmd, versionCmd)
}

var rootCmd = &cobra.Command{
	Use:           "tennis-edge",
	Short:         "Tennis betting decisions and bankroll simulation",
	Long:          `Sizes stakes on two-player tennis markets with fractional Kelly and replays historical odds to measure ROI, drawdown and calibration.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == versionCmd.Name() {
			return nil
		}
		if err := loadConfig(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tennis-edge %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig(ctx context.Context) error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	if err := config.ReloadFromEnv(cfg); err != nil {
		return err
	}
	if err := config.ApplySecretsFromEnv(ctx, cfg); err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := config.ValidateEnvironment(cfg); err != nil {
		return err
	}

	appLogger = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	metrics.InitRegistry()

	simConfig, err = backtest.FromConfig(cfg)
	if err != nil {
		return fmt.Errorf("invalid simulation config: %w", err)
	}
	return nil
}

func newSimulator() (*backtest.Simulator, error) {
	return backtest.NewSimulator(simConfig, nil, appLogger)
}

// loadFeed reads the input file, filling missing probabilities from the
// configured oracle.
func loadFeed(ctx context.Context) (*feed.Result, error) {
	if inputFile == "" {
		return nil, fmt.Errorf("--input is required")
	}

	opts := feed.Options{SkipInvalid: simConfig.OnInvalid == backtest.OnInvalidSkip}
	if cfg.Feed.OddsFormat != "" {
		format, err := odds.ParseFormat(cfg.Feed.OddsFormat)
		if err != nil {
			return nil, err
		}
		opts.DefaultFormat = format
	}

	probabilities, err := oracle.NewFromConfig(cfg, appLogger)
	if err != nil {
		return nil, err
	}
	if probabilities != nil {
		opts.Oracle = probabilities
	}

	loaded, err := feed.NewLoader(opts, appLogger).LoadFile(ctx, inputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", inputFile, err)
	}
	if loaded.Skipped > 0 {
		appLogger.WithField("skipped", loaded.Skipped).Warn("Dropped invalid feed records")
	}
	return loaded, nil
}

func openRepositories(ctx context.Context) (*repository.Repositories, func(), error) {
	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repos, err := repository.NewRepositories(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}
	return repos, db.Close, nil
}

func persistRun(ctx context.Context, result *backtest.Result) error {
	repos, closeDB, err := openRepositories(ctx)
	if err != nil {
		return err
	}
	defer closeDB()

	run, rows, err := result.ToDB()
	if err != nil {
		return err
	}
	if err := repos.BacktestRun.SaveRun(ctx, run, rows); err != nil {
		return err
	}
	appLogger.WithField("run_id", run.ID).Info("Persisted backtest run")
	return nil
}

func writeMetrics() {
	if !cfg.Metrics.Enabled || cfg.Metrics.TextfilePath == "" {
		return
	}
	if err := metrics.WriteTextfile(cfg.Metrics.TextfilePath); err != nil {
		appLogger.WithError(err).Warn("Failed to write metrics textfile")
	}
}
