package backtest

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/yourusername/tennis-edge/internal/models"
)

// EquityPoint represents a point in the equity curve
type EquityPoint struct {
	Sequence int       `json:"sequence"`
	Time     time.Time `json:"time"`
	MatchID  string    `json:"match_id,omitempty"`
	Value    float64   `json:"value"`
	Drawdown float64   `json:"drawdown"`
	PnL      float64   `json:"pnl"`
}

// EquityCurve represents the bankroll trajectory of a run
type EquityCurve []EquityPoint

// EquityCurveFromLedger builds the bankroll trajectory, starting with the
// initial bankroll at sequence 0.
func EquityCurveFromLedger(ledger models.Ledger) EquityCurve {
	curve := make(EquityCurve, 0, len(ledger.Entries)+1)
	start := EquityPoint{Value: ledger.InitialBankroll}
	if len(ledger.Entries) > 0 {
		start.Time = ledger.Entries[0].Date
	}
	curve = append(curve, start)

	peak := ledger.InitialBankroll
	for _, entry := range ledger.Entries {
		if entry.BankrollAfter > peak {
			peak = entry.BankrollAfter
		}
		drawdown := 0.0
		if peak > 0 && entry.BankrollAfter < peak {
			drawdown = (peak - entry.BankrollAfter) / peak
		}
		curve = append(curve, EquityPoint{
			Sequence: entry.Sequence,
			Time:     entry.Date,
			MatchID:  entry.MatchID,
			Value:    entry.BankrollAfter,
			Drawdown: drawdown,
			PnL:      entry.Payout,
		})
	}
	return curve
}

// GetReturns calculates per-step returns from the equity curve
func (e EquityCurve) GetReturns() []float64 {
	if len(e) < 2 {
		return []float64{}
	}
	returns := make([]float64, 0, len(e)-1)
	for i := 1; i < len(e); i++ {
		prev := e[i-1].Value
		if prev == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, (e[i].Value-prev)/prev)
	}
	return returns
}

// GetVolatility calculates standard deviation of returns
func (e EquityCurve) GetVolatility() float64 {
	return stddev(e.GetReturns())
}

// GetDownsideDeviation calculates downside deviation of returns
func (e EquityCurve) GetDownsideDeviation() float64 {
	returns := e.GetReturns()
	variance := 0.0
	count := 0
	for _, r := range returns {
		if r < 0 {
			variance += r * r
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return math.Sqrt(variance / float64(count))
}

// ToCSV exports equity curve to CSV string
func (e EquityCurve) ToCSV() string {
	var buf bytes.Buffer
	buf.WriteString("sequence,time,match_id,value,drawdown,pnl\n")
	for _, point := range e {
		buf.WriteString(strconv.Itoa(point.Sequence))
		buf.WriteString(",")
		buf.WriteString(point.Time.Format(time.RFC3339))
		buf.WriteString(",")
		buf.WriteString(point.MatchID)
		buf.WriteString(",")
		buf.WriteString(formatFloat(point.Value))
		buf.WriteString(",")
		buf.WriteString(formatFloat(point.Drawdown))
		buf.WriteString(",")
		buf.WriteString(formatFloat(point.PnL))
		buf.WriteString("\n")
	}
	return buf.String()
}

// ToJSON exports equity curve to JSON string
func (e EquityCurve) ToJSON() string {
	data, _ := json.Marshal(e)
	return string(data)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
