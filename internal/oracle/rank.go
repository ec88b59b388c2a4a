package oracle

import (
	"context"
	"math"
)

// RankEstimator is a logistic baseline over ranking, surface record,
// head-to-head and recent form.
type RankEstimator struct {
	Intercept     float64
	RankWeight    float64
	SurfaceWeight float64
	H2HWeight     float64
	FormWeight    float64
	// MinProbability keeps estimates away from 0 and 1
	MinProbability float64
}

// NewRankEstimator creates an estimator with hand-tuned weights
func NewRankEstimator() *RankEstimator {
	return &RankEstimator{
		RankWeight:     0.8,
		SurfaceWeight:  1.5,
		H2HWeight:      0.1,
		FormWeight:     1.0,
		MinProbability: 0.01,
	}
}

// Name returns the estimator name
func (e *RankEstimator) Name() string {
	return "rank"
}

// Estimate computes the logistic score; a better (lower) rank raises the probability
func (e *RankEstimator) Estimate(ctx context.Context, f MatchFeatures) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	rankTerm := math.Log(float64(f.RankB())) - math.Log(float64(f.RankA()))
	surfaceTerm := pctOrDefault(f.PlayerASurfaceWinPct) - pctOrDefault(f.PlayerBSurfaceWinPct)
	formTerm := recentForm(f.PlayerARecentWinRate5, f.PlayerARecentWinRate10) -
		recentForm(f.PlayerBRecentWinRate5, f.PlayerBRecentWinRate10)

	z := e.Intercept +
		e.RankWeight*rankTerm +
		e.SurfaceWeight*surfaceTerm +
		e.H2HWeight*float64(f.HeadToHeadDiff) +
		e.FormWeight*formTerm

	p := 1.0 / (1.0 + math.Exp(-z))
	return clampProbability(p, e.MinProbability), nil
}

// recentForm averages the 5 and 10 match win rates that are present
func recentForm(last5, last10 *float64) float64 {
	switch {
	case last5 != nil && last10 != nil:
		return (*last5 + *last10) / 2
	case last5 != nil:
		return *last5
	case last10 != nil:
		return *last10
	default:
		return DefaultWinPct
	}
}

func clampProbability(p, floor float64) float64 {
	if floor <= 0 || floor >= 0.5 {
		return p
	}
	return math.Min(math.Max(p, floor), 1-floor)
}
