package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	EstimatesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "oracle_estimates_total",
		Help:      "Total number of probability estimates by estimator and cache hit",
	}, []string{"estimator", "cache_hit"})

	EstimateErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "oracle_estimate_errors_total",
		Help:      "Total number of failed probability estimates",
	}, []string{"estimator"})

	EstimateLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "oracle_estimate_latency_seconds",
		Help:      "Probability estimate latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"estimator"})
)

// RecordEstimate records a successful estimate.
func RecordEstimate(estimator string, cacheHit bool, latency time.Duration) {
	EstimatesTotal.WithLabelValues(estimator, strconv.FormatBool(cacheHit)).Inc()
	EstimateLatency.WithLabelValues(estimator).Observe(latency.Seconds())
}

// RecordEstimateError records a failed estimate.
func RecordEstimateError(estimator string) {
	EstimateErrorsTotal.WithLabelValues(estimator).Inc()
}
