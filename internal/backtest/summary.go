package backtest

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/yourusername/tennis-edge/internal/models"
)

// Summary aggregates a ledger into performance statistics
type Summary struct {
	InitialBankroll     float64 `json:"initial_bankroll"`
	FinalBankroll       float64 `json:"final_bankroll"`
	TotalReturn         float64 `json:"total_return"`
	ROI                 float64 `json:"roi"`
	HitRate             float64 `json:"hit_rate"`
	MaxDrawdown         float64 `json:"max_drawdown"`
	MaxDrawdownAmount   float64 `json:"max_drawdown_amount"`
	Entries             int     `json:"entries"`
	BetCount            int     `json:"bet_count"`
	Wins                int     `json:"wins"`
	Losses              int     `json:"losses"`
	NoBets              int     `json:"no_bets"`
	TotalStaked         float64 `json:"total_staked"`
	Yield               float64 `json:"yield"`
	AverageStake        float64 `json:"average_stake"`
	AverageOdds         float64 `json:"average_odds"`
	SharpeRatio         float64 `json:"sharpe_ratio"`
	LongestLosingStreak int     `json:"longest_losing_streak"`
}

// Summarize computes summary statistics from a ledger without revisiting decisions
func Summarize(ledger models.Ledger) Summary {
	summary := Summary{
		InitialBankroll: ledger.InitialBankroll,
		FinalBankroll:   ledger.FinalBankroll(),
		Entries:         len(ledger.Entries),
	}
	summary.TotalReturn = summary.FinalBankroll - summary.InitialBankroll
	if summary.InitialBankroll > 0 {
		summary.ROI = summary.TotalReturn / summary.InitialBankroll
	}

	oddsSum := 0.0
	streak := 0
	for _, entry := range ledger.Entries {
		if !entry.IsBet() {
			summary.NoBets++
			continue
		}
		summary.BetCount++
		summary.TotalStaked += entry.StakedAmount
		oddsSum += entry.DecimalOdds
		if entry.Won {
			summary.Wins++
			streak = 0
			continue
		}
		summary.Losses++
		streak++
		if streak > summary.LongestLosingStreak {
			summary.LongestLosingStreak = streak
		}
	}

	if summary.BetCount > 0 {
		summary.HitRate = float64(summary.Wins) / float64(summary.BetCount)
		summary.AverageStake = summary.TotalStaked / float64(summary.BetCount)
		summary.AverageOdds = oddsSum / float64(summary.BetCount)
	}
	if summary.TotalStaked > 0 {
		summary.Yield = summary.TotalReturn / summary.TotalStaked
	}

	summary.MaxDrawdown, summary.MaxDrawdownAmount = calculateMaxDrawdown(ledger)
	summary.SharpeRatio = calculateSharpeRatio(stepReturns(ledger))
	return summary
}

// ToJSON exports the summary to JSON
func (s Summary) ToJSON() string {
	data, _ := json.Marshal(s)
	return string(data)
}

// calculateMaxDrawdown walks the bankroll sequence starting from the initial
// bankroll and returns the largest decline as a fraction of its peak and as
// an amount.
func calculateMaxDrawdown(ledger models.Ledger) (float64, float64) {
	peak := ledger.InitialBankroll
	maxDD := 0.0
	maxAmount := 0.0
	for _, entry := range ledger.Entries {
		value := entry.BankrollAfter
		if value > peak {
			peak = value
		}
		if peak <= 0 {
			continue
		}
		amount := peak - value
		if amount > maxAmount {
			maxAmount = amount
		}
		if dd := amount / peak; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD, maxAmount
}

func stepReturns(ledger models.Ledger) []float64 {
	returns := make([]float64, 0, len(ledger.Entries))
	for _, entry := range ledger.Entries {
		if entry.BankrollBefore <= 0 {
			continue
		}
		returns = append(returns, (entry.BankrollAfter-entry.BankrollBefore)/entry.BankrollBefore)
	}
	return returns
}

// calculateSharpeRatio is mean over standard deviation of per-step returns, not annualised
func calculateSharpeRatio(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	std := stddev(returns)
	if std == 0 {
		return 0
	}
	return average(returns) / std
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := average(values)
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}

func percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)
	idx := int(math.Floor(p * float64(len(sorted)-1)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
