package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Simulation counter vectors
var (
	SimulationRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "simulation_runs_total",
		Help:      "Total number of bankroll simulations by mode and terminal status",
	}, []string{"mode", "status"})

	LedgerEntriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ledger_entries_total",
		Help:      "Total number of ledger entries by decision side and result",
	}, []string{"side", "result"})

	SkippedOpportunitiesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "skipped_opportunities_total",
		Help:      "Total number of invalid opportunities skipped",
	})
)

// Simulation gauges
var (
	FinalBankroll = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "final_bankroll",
		Help:      "Final bankroll of the most recent simulation by mode",
	}, []string{"mode"})

	CalibrationError = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "calibration_error",
		Help:      "Sample-weighted calibration error of the last evaluation",
	})

	BrierScore = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "brier_score",
		Help:      "Brier score of the last calibration evaluation",
	})
)

// SimulationDuration observes wall time per simulation
var SimulationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Name:      "simulation_duration_seconds",
	Help:      "Duration of bankroll simulations in seconds",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
}, []string{"mode"})

// RecordSimulationRun records a finished simulation.
// mode is one of "backtest", "monte_carlo", "sweep".
func RecordSimulationRun(mode, status string, duration time.Duration, finalBankroll float64) {
	SimulationRunsTotal.WithLabelValues(mode, status).Inc()
	SimulationDuration.WithLabelValues(mode).Observe(duration.Seconds())
	FinalBankroll.WithLabelValues(mode).Set(finalBankroll)
}

// RecordLedgerEntry records one appended ledger entry.
// result is "won", "lost" or "none" for NO_BET entries.
func RecordLedgerEntry(side, result string) {
	LedgerEntriesTotal.WithLabelValues(side, result).Inc()
}

// RecordSkippedOpportunity counts an opportunity dropped under the skip policy.
func RecordSkippedOpportunity() {
	SkippedOpportunitiesTotal.Inc()
}

// UpdateCalibration records the scores of a calibration evaluation.
func UpdateCalibration(calibrationError, brier float64) {
	CalibrationError.Set(calibrationError)
	BrierScore.Set(brier)
}
