// Package metrics provides the Prometheus registry for simulation and oracle metrics.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tennis_edge"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Simulation metrics
		registry.MustRegister(SimulationRunsTotal)
		registry.MustRegister(LedgerEntriesTotal)
		registry.MustRegister(SkippedOpportunitiesTotal)
		registry.MustRegister(FinalBankroll)
		registry.MustRegister(SimulationDuration)
		registry.MustRegister(CalibrationError)
		registry.MustRegister(BrierScore)

		// Oracle metrics
		registry.MustRegister(EstimatesTotal)
		registry.MustRegister(EstimateErrorsTotal)
		registry.MustRegister(EstimateLatency)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return InitRegistry()
}

// WriteTextfile dumps the registry in text exposition format for batch runs
func WriteTextfile(path string) error {
	if path == "" {
		return fmt.Errorf("textfile path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, GetRegistry()); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
