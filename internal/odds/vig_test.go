package odds_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/tennis-edge/internal/models"
	"github.com/yourusername/tennis-edge/internal/odds"
)

func TestRemoveVigSymmetricMarket(t *testing.T) {
	fair, err := odds.RemoveVig(1.91, 1.91)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, fair.ProbabilityA, 1e-12)
	assert.InDelta(t, 0.5, fair.ProbabilityB, 1e-12)
	assert.InDelta(t, 0.0471, fair.Overround, 1e-4)
}

func TestRemoveVigSumsToOne(t *testing.T) {
	fair, err := odds.RemoveVig(1.4, 3.1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, fair.ProbabilityA+fair.ProbabilityB, 1e-12)
	assert.Greater(t, fair.ProbabilityA, fair.ProbabilityB)
}

func TestRemoveVigArbitrageHasNegativeOverround(t *testing.T) {
	fair, err := odds.RemoveVig(2.2, 2.2)
	require.NoError(t, err)
	assert.Less(t, fair.Overround, 0.0)
}

func TestRemoveVigRejectsInvalidOdds(t *testing.T) {
	_, err := odds.RemoveVig(1.0, 2.0)
	assert.ErrorIs(t, err, models.ErrInvalidOdds)
}
