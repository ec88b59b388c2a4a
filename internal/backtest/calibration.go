package backtest

import (
	"fmt"
	"math"

	"github.com/yourusername/tennis-edge/internal/models"
)

// CalibrationSample pairs a predicted probability for player A with the
// realized outcome, if known.
type CalibrationSample struct {
	MatchID     string          `json:"match_id"`
	Probability float64         `json:"probability"`
	Outcome     *models.Outcome `json:"outcome,omitempty"`
}

// CalibrationReport is the reliability summary of a set of estimates
type CalibrationReport struct {
	Bins             []models.CalibrationBin `json:"bins"`
	CalibrationError float64                 `json:"calibration_error"`
	BrierScore       float64                 `json:"brier_score"`
	LogLoss          float64                 `json:"log_loss"`
	Accuracy         float64                 `json:"accuracy"`
	SampleCount      int                     `json:"sample_count"`
	IgnoredCount     int                     `json:"ignored_count"`
}

// CalibrationSamplesFromOpportunities extracts player-A estimates and outcomes
func CalibrationSamplesFromOpportunities(stream []models.BetOpportunity) []CalibrationSample {
	samples := make([]CalibrationSample, 0, len(stream))
	for _, opp := range stream {
		samples = append(samples, CalibrationSample{
			MatchID:     opp.MatchID,
			Probability: opp.Estimate.ProbabilityPlayerAWins,
			Outcome:     opp.RealizedOutcome,
		})
	}
	return samples
}

// EvaluateCalibration bins predictions into binCount equal-width intervals
// over [0,1) and compares each bin's mean prediction with the observed
// frequency of player A winning. Samples without a known outcome are ignored.
func EvaluateCalibration(samples []CalibrationSample, binCount int) (CalibrationReport, error) {
	if binCount < 2 {
		return CalibrationReport{}, fmt.Errorf("bin count must be at least 2, got %d", binCount)
	}

	predictedSum := make([]float64, binCount)
	observedSum := make([]float64, binCount)
	counts := make([]int, binCount)
	report := CalibrationReport{}

	brier := 0.0
	logLoss := 0.0
	correct := 0
	for _, sample := range samples {
		if err := models.ValidateProbability(sample.Probability); err != nil {
			return CalibrationReport{}, fmt.Errorf("match %s: %w", sample.MatchID, err)
		}
		if sample.Outcome == nil || !sample.Outcome.IsValid() {
			report.IgnoredCount++
			continue
		}

		p := sample.Probability
		observed := 0.0
		if *sample.Outcome == models.OutcomePlayerAWon {
			observed = 1.0
		}

		idx := binIndex(p, binCount)
		predictedSum[idx] += p
		observedSum[idx] += observed
		counts[idx]++

		brier += (p - observed) * (p - observed)
		logLoss -= observed*math.Log(p) + (1-observed)*math.Log(1-p)
		if (p >= 0.5) == (observed == 1.0) {
			correct++
		}
		report.SampleCount++
	}

	report.Bins = make([]models.CalibrationBin, binCount)
	weightedError := 0.0
	for i := 0; i < binCount; i++ {
		bin := models.CalibrationBin{
			LowerBound:  binLowerBound(i, binCount),
			UpperBound:  binLowerBound(i+1, binCount),
			SampleCount: counts[i],
		}
		if counts[i] > 0 {
			n := float64(counts[i])
			bin.PredictedMean = predictedSum[i] / n
			bin.ObservedFrequency = observedSum[i] / n
			weightedError += n * math.Abs(bin.PredictedMean-bin.ObservedFrequency)
		}
		report.Bins[i] = bin
	}

	if report.SampleCount > 0 {
		n := float64(report.SampleCount)
		report.CalibrationError = weightedError / n
		report.BrierScore = brier / n
		report.LogLoss = logLoss / n
		report.Accuracy = float64(correct) / n
	}
	return report, nil
}

// binIndex returns the bin whose [lower, upper) bounds contain p. The
// estimate int(p*n) can be off by one near a boundary, so it is checked
// against the same bounds the report uses.
func binIndex(p float64, binCount int) int {
	idx := int(p * float64(binCount))
	if idx < 0 {
		idx = 0
	}
	if idx >= binCount {
		idx = binCount - 1
	}
	if idx > 0 && p < binLowerBound(idx, binCount) {
		idx--
	}
	if idx < binCount-1 && p >= binLowerBound(idx+1, binCount) {
		idx++
	}
	return idx
}

func binLowerBound(i, binCount int) float64 {
	return float64(i) / float64(binCount)
}
