// Package odds normalizes bookmaker prices into decimal odds.
package odds

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/yourusername/tennis-edge/internal/models"
)

// Format identifies how a raw price is expressed
type Format string

const (
	FormatDecimal  Format = "decimal"
	FormatAmerican Format = "american"
	FormatImplied  Format = "implied"
)

// ErrUnsupportedFormat is returned for unknown odds formats
var ErrUnsupportedFormat = errors.New("unsupported odds format")

// ParseFormat maps a user supplied name onto a Format
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "decimal", "european", "":
		return FormatDecimal, nil
	case "american", "moneyline", "us":
		return FormatAmerican, nil
	case "implied", "implied_probability", "probability":
		return FormatImplied, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// ToDecimal converts a raw price in the given format to decimal odds.
// The result is always strictly greater than 1.0.
func ToDecimal(raw float64, format Format) (float64, error) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, fmt.Errorf("%w: non-finite price %v", models.ErrInvalidOdds, raw)
	}

	var d float64
	switch format {
	case FormatDecimal:
		d = raw
	case FormatAmerican:
		if raw == 0 {
			return 0, fmt.Errorf("%w: american odds cannot be 0", models.ErrInvalidOdds)
		}
		if raw > 0 {
			d = 1 + raw/100
		} else {
			d = 1 + 100/math.Abs(raw)
		}
	case FormatImplied:
		if err := models.ValidateProbability(raw); err != nil {
			return 0, err
		}
		d = 1 / raw
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err := models.ValidateDecimalOdds(d); err != nil {
		return 0, err
	}
	return d, nil
}

// DecimalToAmerican converts decimal odds to the nearest American price.
// Decimal 2.50 → +150, decimal 1.50 → -200.
func DecimalToAmerican(d float64) (int, error) {
	if err := models.ValidateDecimalOdds(d); err != nil {
		return 0, err
	}
	if d >= 2.0 {
		return int(math.Round((d - 1) * 100)), nil
	}
	return int(math.Round(-100 / (d - 1))), nil
}

// ImpliedProbability returns the bookmaker-implied probability of decimal odds
func ImpliedProbability(d float64) (float64, error) {
	if err := models.ValidateDecimalOdds(d); err != nil {
		return 0, err
	}
	return 1 / d, nil
}
