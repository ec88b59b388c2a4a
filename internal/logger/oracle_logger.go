package logger

import (
	"github.com/sirupsen/logrus"
)

// OracleLogger provides dedicated logging for probability estimates.
type OracleLogger struct {
	*logrus.Entry
}

// NewOracleLogger creates a new oracle logger.
func NewOracleLogger(baseLogger *logrus.Logger) *OracleLogger {
	if baseLogger == nil {
		baseLogger = Discard()
	}
	return &OracleLogger{
		Entry: baseLogger.WithField("component", "oracle"),
	}
}

// LogEstimate logs a completed estimate request.
func (ol *OracleLogger) LogEstimate(estimator, matchID string, probability float64, cacheHit bool, latencyMs float64) {
	ol.WithFields(logrus.Fields{
		"estimator":   estimator,
		"match_id":    matchID,
		"probability": probability,
		"cache_hit":   cacheHit,
		"latency_ms":  latencyMs,
	}).Debug("Probability estimate completed")
}

// LogEstimateError logs a failed estimate request.
func (ol *OracleLogger) LogEstimateError(estimator, matchID string, err error) {
	ol.WithFields(logrus.Fields{
		"estimator": estimator,
		"match_id":  matchID,
		"error":     err.Error(),
	}).Error("Probability estimate failed")
}
