// Package oracle provides probability sources for matchups that arrive
// without a model estimate.
package oracle

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/tennis-edge/internal/logger"
	"github.com/yourusername/tennis-edge/internal/metrics"
	"github.com/yourusername/tennis-edge/internal/models"
)

const (
	// DefaultRank is used for unranked players
	DefaultRank = 2000
	// DefaultWinPct is the neutral surface and form win rate
	DefaultWinPct = 0.5
)

// MatchFeatures are the per-matchup model inputs. Pointer fields are
// optional and fall back to neutral defaults.
type MatchFeatures struct {
	MatchID string    `json:"match_id"`
	Date    time.Time `json:"date"`
	PlayerA string    `json:"player_a,omitempty"`
	PlayerB string    `json:"player_b,omitempty"`
	Surface string    `json:"surface,omitempty"`

	PlayerARank int `json:"player_a_rank,omitempty"`
	PlayerBRank int `json:"player_b_rank,omitempty"`

	PlayerASurfaceWinPct *float64 `json:"player_a_surface_win_pct,omitempty"`
	PlayerBSurfaceWinPct *float64 `json:"player_b_surface_win_pct,omitempty"`

	// HeadToHeadDiff is player A's head-to-head wins minus player B's
	HeadToHeadDiff int `json:"h2h_diff,omitempty"`

	PlayerARecentWinRate5  *float64 `json:"player_a_recent_win_rate_5,omitempty"`
	PlayerBRecentWinRate5  *float64 `json:"player_b_recent_win_rate_5,omitempty"`
	PlayerARecentWinRate10 *float64 `json:"player_a_recent_win_rate_10,omitempty"`
	PlayerBRecentWinRate10 *float64 `json:"player_b_recent_win_rate_10,omitempty"`

	PlayerAAge *float64 `json:"player_a_age,omitempty"`
	PlayerBAge *float64 `json:"player_b_age,omitempty"`

	// Per-match averages over the last 5 and 10 matches
	PlayerARecentGamesWonAvg5   *float64 `json:"player_a_recent_games_won_avg_5,omitempty"`
	PlayerARecentGamesWonAvg10  *float64 `json:"player_a_recent_games_won_avg_10,omitempty"`
	PlayerARecentGamesLostAvg5  *float64 `json:"player_a_recent_games_lost_avg_5,omitempty"`
	PlayerARecentGamesLostAvg10 *float64 `json:"player_a_recent_games_lost_avg_10,omitempty"`
	PlayerARecentSetsWonAvg5    *float64 `json:"player_a_recent_sets_won_avg_5,omitempty"`
	PlayerARecentSetsWonAvg10   *float64 `json:"player_a_recent_sets_won_avg_10,omitempty"`
	PlayerARecentSetsLostAvg5   *float64 `json:"player_a_recent_sets_lost_avg_5,omitempty"`
	PlayerARecentSetsLostAvg10  *float64 `json:"player_a_recent_sets_lost_avg_10,omitempty"`
	PlayerBRecentGamesWonAvg5   *float64 `json:"player_b_recent_games_won_avg_5,omitempty"`
	PlayerBRecentGamesWonAvg10  *float64 `json:"player_b_recent_games_won_avg_10,omitempty"`
	PlayerBRecentGamesLostAvg5  *float64 `json:"player_b_recent_games_lost_avg_5,omitempty"`
	PlayerBRecentGamesLostAvg10 *float64 `json:"player_b_recent_games_lost_avg_10,omitempty"`
	PlayerBRecentSetsWonAvg5    *float64 `json:"player_b_recent_sets_won_avg_5,omitempty"`
	PlayerBRecentSetsWonAvg10   *float64 `json:"player_b_recent_sets_won_avg_10,omitempty"`
	PlayerBRecentSetsLostAvg5   *float64 `json:"player_b_recent_sets_lost_avg_5,omitempty"`
	PlayerBRecentSetsLostAvg10  *float64 `json:"player_b_recent_sets_lost_avg_10,omitempty"`

	// Decimal prices, when known
	DecimalOddsA float64 `json:"decimal_odds_a,omitempty"`
	DecimalOddsB float64 `json:"decimal_odds_b,omitempty"`
}

// RankA returns player A's ranking, or DefaultRank when unknown
func (f MatchFeatures) RankA() int { return rankOrDefault(f.PlayerARank) }

// RankB returns player B's ranking, or DefaultRank when unknown
func (f MatchFeatures) RankB() int { return rankOrDefault(f.PlayerBRank) }

func rankOrDefault(rank int) int {
	if rank <= 0 {
		return DefaultRank
	}
	return rank
}

func pctOrDefault(v *float64) float64 {
	if v == nil {
		return DefaultWinPct
	}
	return *v
}

// Estimator produces the probability that player A wins
type Estimator interface {
	Name() string
	Estimate(ctx context.Context, features MatchFeatures) (float64, error)
}

// cachingEstimator is implemented by estimators that can report cache hits
type cachingEstimator interface {
	estimateCached(ctx context.Context, features MatchFeatures) (float64, bool, error)
}

// Oracle validates estimator output and records estimate telemetry
type Oracle struct {
	estimator Estimator
	logger    *logger.OracleLogger
}

// New creates an oracle around an estimator
func New(estimator Estimator, log *logrus.Logger) *Oracle {
	return &Oracle{
		estimator: estimator,
		logger:    logger.NewOracleLogger(log),
	}
}

// Name returns the underlying estimator name
func (o *Oracle) Name() string {
	return o.estimator.Name()
}

// Estimate returns a validated probability estimate for the matchup
func (o *Oracle) Estimate(ctx context.Context, features MatchFeatures) (models.ProbabilityEstimate, error) {
	start := time.Now()
	name := o.estimator.Name()

	p, hit, err := o.estimate(ctx, features)
	var estimate models.ProbabilityEstimate
	if err == nil {
		estimate, err = models.NewProbabilityEstimate(features.MatchID, p)
	}
	if err != nil {
		metrics.RecordEstimateError(name)
		o.logger.LogEstimateError(name, features.MatchID, err)
		return models.ProbabilityEstimate{}, fmt.Errorf("%s estimate for match %s: %w", name, features.MatchID, err)
	}

	latency := time.Since(start)
	metrics.RecordEstimate(name, hit, latency)
	o.logger.LogEstimate(name, features.MatchID, p, hit, float64(latency.Microseconds())/1000)
	return estimate, nil
}

func (o *Oracle) estimate(ctx context.Context, features MatchFeatures) (float64, bool, error) {
	if cached, ok := o.estimator.(cachingEstimator); ok {
		return cached.estimateCached(ctx, features)
	}
	p, err := o.estimator.Estimate(ctx, features)
	return p, false, err
}
