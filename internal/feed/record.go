// Package feed loads bet opportunities from JSON and JSON-lines files.
package feed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/yourusername/tennis-edge/internal/models"
	"github.com/yourusername/tennis-edge/internal/oracle"
)

var dateLayouts = []string{time.RFC3339, "2006-01-02", "20060102"}

// RawOdds is a price as written in the feed, either a JSON number or a string
type RawOdds string

// UnmarshalJSON accepts both 2.5 and "2.5" (or "+150")
func (o *RawOdds) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*o = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*o = RawOdds(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("odds must be a number or string: %w", err)
	}
	*o = RawOdds(n.String())
	return nil
}

// Record is one matchup as it appears in an input file
type Record struct {
	MatchID      string                `json:"match_id" validate:"required"`
	Date         string                `json:"date" validate:"required"`
	PlayerA      string                `json:"player_a"`
	PlayerB      string                `json:"player_b"`
	Surface      string                `json:"surface" validate:"omitempty,oneof=Hard Clay Grass Carpet"`
	ProbabilityA *float64              `json:"probability_a"`
	Features     *oracle.MatchFeatures `json:"features,omitempty"`
	OddsFormat   string                `json:"odds_format" validate:"omitempty,oddsformat"`
	OddsA        RawOdds               `json:"odds_a" validate:"required"`
	OddsB        RawOdds               `json:"odds_b" validate:"required"`
	Outcome      string                `json:"outcome" validate:"omitempty,oneof=PLAYER_A_WON PLAYER_B_WON"`
}

// ParseDate accepts RFC 3339 timestamps, ISO dates and compact yyyymmdd dates
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognised date %q", models.ErrInsufficientData, raw)
}

// features returns the oracle inputs for the record, filled with the
// identifying fields and normalized prices.
func (r Record) features(date time.Time, quoteA, quoteB models.OddsQuote) oracle.MatchFeatures {
	var f oracle.MatchFeatures
	if r.Features != nil {
		f = *r.Features
	}
	f.MatchID = r.MatchID
	f.Date = date
	if f.PlayerA == "" {
		f.PlayerA = r.PlayerA
	}
	if f.PlayerB == "" {
		f.PlayerB = r.PlayerB
	}
	if f.Surface == "" {
		f.Surface = r.Surface
	}
	f.DecimalOddsA = quoteA.DecimalOdds
	f.DecimalOddsB = quoteB.DecimalOdds
	return f
}
