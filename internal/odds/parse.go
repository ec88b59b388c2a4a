package odds

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yourusername/tennis-edge/internal/models"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// ParseQuote converts a textual price such as "+150", "-110", "2.50" or
// "0.40" into decimal odds. Arithmetic is done on exact decimals so that
// "1.91" stays 1.91 until the final conversion to float64.
func ParseQuote(raw string, format Format) (float64, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "+")
	if text == "" {
		return 0, fmt.Errorf("%w: empty price", models.ErrInvalidOdds)
	}

	value, err := decimal.NewFromString(text)
	if err != nil {
		return 0, fmt.Errorf("%w: cannot parse %q: %v", models.ErrInvalidOdds, raw, err)
	}

	var d decimal.Decimal
	switch format {
	case FormatDecimal:
		d = value
	case FormatAmerican:
		switch {
		case value.IsZero():
			return 0, fmt.Errorf("%w: american odds cannot be 0", models.ErrInvalidOdds)
		case value.IsPositive():
			d = one.Add(value.Div(hundred))
		default:
			d = one.Add(hundred.Div(value.Abs()))
		}
	case FormatImplied:
		if !value.IsPositive() || value.GreaterThanOrEqual(one) {
			return 0, fmt.Errorf("%w: implied probability must be in (0,1), got %s", models.ErrInvalidProbability, value)
		}
		d = one.Div(value)
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	result := d.InexactFloat64()
	if err := models.ValidateDecimalOdds(result); err != nil {
		return 0, err
	}
	return result, nil
}

// ParseQuotePair parses both sides of a two-way market into validated quotes
func ParseQuotePair(rawA, rawB string, format Format) (models.OddsQuote, models.OddsQuote, error) {
	decA, err := ParseQuote(rawA, format)
	if err != nil {
		return models.OddsQuote{}, models.OddsQuote{}, fmt.Errorf("player A price: %w", err)
	}
	decB, err := ParseQuote(rawB, format)
	if err != nil {
		return models.OddsQuote{}, models.OddsQuote{}, fmt.Errorf("player B price: %w", err)
	}
	return models.OddsQuote{Side: models.SidePlayerA, DecimalOdds: decA},
		models.OddsQuote{Side: models.SidePlayerB, DecimalOdds: decB}, nil
}
