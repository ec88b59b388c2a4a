package oracle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float(v float64) *float64 { return &v }

func TestRankEstimatorNeutralMatchup(t *testing.T) {
	p, err := NewRankEstimator().Estimate(context.Background(), MatchFeatures{MatchID: "m1"})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p, 1e-12)
}

func TestRankEstimatorMissingRankUsesDefault(t *testing.T) {
	est := NewRankEstimator()
	unranked, err := est.Estimate(context.Background(), MatchFeatures{PlayerBRank: 150})
	require.NoError(t, err)
	explicit, err := est.Estimate(context.Background(), MatchFeatures{PlayerARank: DefaultRank, PlayerBRank: 150})
	require.NoError(t, err)

	assert.Equal(t, explicit, unranked)
	assert.Less(t, unranked, 0.5)
	assert.Equal(t, DefaultRank, MatchFeatures{}.RankA())
}

func TestRankEstimatorIsSymmetric(t *testing.T) {
	est := NewRankEstimator()
	features := MatchFeatures{
		PlayerARank:            12,
		PlayerBRank:            85,
		PlayerASurfaceWinPct:   float(0.7),
		PlayerBSurfaceWinPct:   float(0.55),
		HeadToHeadDiff:         2,
		PlayerARecentWinRate5:  float(0.8),
		PlayerBRecentWinRate10: float(0.4),
	}
	swapped := MatchFeatures{
		PlayerARank:            85,
		PlayerBRank:            12,
		PlayerASurfaceWinPct:   float(0.55),
		PlayerBSurfaceWinPct:   float(0.7),
		HeadToHeadDiff:         -2,
		PlayerARecentWinRate10: float(0.4),
		PlayerBRecentWinRate5:  float(0.8),
	}

	p, err := est.Estimate(context.Background(), features)
	require.NoError(t, err)
	q, err := est.Estimate(context.Background(), swapped)
	require.NoError(t, err)

	assert.Greater(t, p, 0.5)
	assert.InDelta(t, 1.0, p+q, 1e-12)
}

func TestRankEstimatorFeaturesMoveProbability(t *testing.T) {
	est := NewRankEstimator()
	ctx := context.Background()

	base, err := est.Estimate(ctx, MatchFeatures{PlayerARank: 50, PlayerBRank: 50})
	require.NoError(t, err)

	betterSurface, err := est.Estimate(ctx, MatchFeatures{PlayerARank: 50, PlayerBRank: 50, PlayerASurfaceWinPct: float(0.8)})
	require.NoError(t, err)
	assert.Greater(t, betterSurface, base)

	h2h, err := est.Estimate(ctx, MatchFeatures{PlayerARank: 50, PlayerBRank: 50, HeadToHeadDiff: -3})
	require.NoError(t, err)
	assert.Less(t, h2h, base)
}

func TestRankEstimatorClampsExtremes(t *testing.T) {
	p, err := NewRankEstimator().Estimate(context.Background(), MatchFeatures{
		PlayerARank:    1,
		PlayerBRank:    1900,
		HeadToHeadDiff: 40,
	})
	require.NoError(t, err)
	assert.InDelta(t, 0.99, p, 1e-12)
}

func TestRecentForm(t *testing.T) {
	assert.Equal(t, DefaultWinPct, recentForm(nil, nil))
	assert.Equal(t, 0.6, recentForm(float(0.6), nil))
	assert.Equal(t, 0.4, recentForm(nil, float(0.4)))
	assert.InDelta(t, 0.5, recentForm(float(0.6), float(0.4)), 1e-12)
}

func TestMarketEstimator(t *testing.T) {
	est := NewMarketEstimator()

	p, err := est.Estimate(context.Background(), MatchFeatures{DecimalOddsA: 1.91, DecimalOddsB: 1.91})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p, 1e-12)

	p, err = est.Estimate(context.Background(), MatchFeatures{DecimalOddsA: 1.5, DecimalOddsB: 2.6})
	require.NoError(t, err)
	assert.Greater(t, p, 0.5)

	_, err = est.Estimate(context.Background(), MatchFeatures{DecimalOddsA: 1.5})
	assert.ErrorIs(t, err, ErrMissingQuotes)

	_, err = est.Estimate(context.Background(), MatchFeatures{DecimalOddsA: 0.9, DecimalOddsB: 2.0})
	assert.Error(t, err)
}
