package odds_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/tennis-edge/internal/models"
	"github.com/yourusername/tennis-edge/internal/odds"
)

func TestToDecimal(t *testing.T) {
	tests := []struct {
		name   string
		raw    float64
		format odds.Format
		want   float64
	}{
		{"decimal pass-through", 2.5, odds.FormatDecimal, 2.5},
		{"american +100", 100, odds.FormatAmerican, 2.0},
		{"american +150", 150, odds.FormatAmerican, 2.5},
		{"american -110", -110, odds.FormatAmerican, 1.909090909},
		{"american -200", -200, odds.FormatAmerican, 1.5},
		{"implied 0.5", 0.5, odds.FormatImplied, 2.0},
		{"implied 0.8", 0.8, odds.FormatImplied, 1.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := odds.ToDecimal(tt.raw, tt.format)
			require.NoError(t, err)
			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("ToDecimal(%v, %s) = %f, want %f", tt.raw, tt.format, got, tt.want)
			}
			assert.Greater(t, got, 1.0)
		})
	}
}

func TestToDecimalRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		raw     float64
		format  odds.Format
		wantErr error
	}{
		{"decimal at 1.0", 1.0, odds.FormatDecimal, models.ErrInvalidOdds},
		{"decimal below 1", 0.8, odds.FormatDecimal, models.ErrInvalidOdds},
		{"negative decimal", -3, odds.FormatDecimal, models.ErrInvalidOdds},
		{"american zero", 0, odds.FormatAmerican, models.ErrInvalidOdds},
		{"implied zero", 0, odds.FormatImplied, models.ErrInvalidProbability},
		{"implied one", 1, odds.FormatImplied, models.ErrInvalidProbability},
		{"implied above one", 1.2, odds.FormatImplied, models.ErrInvalidProbability},
		{"nan", math.NaN(), odds.FormatDecimal, models.ErrInvalidOdds},
		{"unknown format", 2, odds.Format("fractional"), odds.ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := odds.ToDecimal(tt.raw, tt.format)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecimalToAmerican(t *testing.T) {
	tests := []struct {
		decimal float64
		want    int
	}{
		{2.0, 100},
		{2.5, 150},
		{3.0, 200},
		{1.909, -110},
		{1.5, -200},
	}
	for _, tt := range tests {
		got, err := odds.DecimalToAmerican(tt.decimal)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "decimal %v", tt.decimal)
	}

	_, err := odds.DecimalToAmerican(1.0)
	assert.ErrorIs(t, err, models.ErrInvalidOdds)
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]odds.Format{
		"decimal":   odds.FormatDecimal,
		"":          odds.FormatDecimal,
		"Moneyline": odds.FormatAmerican,
		"american":  odds.FormatAmerican,
		"implied":   odds.FormatImplied,
	} {
		got, err := odds.ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}

	_, err := odds.ParseFormat("hong-kong")
	assert.ErrorIs(t, err, odds.ErrUnsupportedFormat)
}
