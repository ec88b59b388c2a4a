package logger

import (
	"github.com/sirupsen/logrus"
	"github.com/yourusername/tennis-edge/internal/models"
)

// DecisionLogger provides dedicated logging for staking decisions and settlements.
type DecisionLogger struct {
	*logrus.Entry
}

// NewDecisionLogger creates a new decision logger.
func NewDecisionLogger(baseLogger *logrus.Logger) *DecisionLogger {
	if baseLogger == nil {
		baseLogger = Discard()
	}
	return &DecisionLogger{
		Entry: baseLogger.WithField("component", "decision"),
	}
}

// LogDecision logs a stake decision before settlement.
func (dl *DecisionLogger) LogDecision(runID string, decision models.StakeDecision, bankroll float64) {
	dl.WithFields(logrus.Fields{
		"run_id":         runID,
		"match_id":       decision.MatchID,
		"side":           decision.Side,
		"classification": decision.Classification,
		"expected_value": decision.ExpectedValue,
		"full_kelly":     decision.FullKelly,
		"stake_fraction": decision.StakeFraction,
		"decimal_odds":   decision.DecimalOdds,
		"bankroll":       bankroll,
	}).Debug("Stake decision made")
}

// LogSettlement logs a ledger entry once its payout is resolved.
func (dl *DecisionLogger) LogSettlement(runID string, entry models.LedgerEntry) {
	dl.WithFields(logrus.Fields{
		"run_id":          runID,
		"sequence":        entry.Sequence,
		"match_id":        entry.MatchID,
		"side":            entry.Side,
		"staked_amount":   entry.StakedAmount,
		"payout":          entry.Payout,
		"bankroll_before": entry.BankrollBefore,
		"bankroll_after":  entry.BankrollAfter,
		"won":             entry.Won,
	}).Debug("Ledger entry appended")
}

// LogSkipped logs an opportunity dropped under the skip policy.
func (dl *DecisionLogger) LogSkipped(runID, matchID string, err error) {
	dl.WithFields(logrus.Fields{
		"run_id":   runID,
		"match_id": matchID,
		"error":    err.Error(),
	}).Warn("Opportunity skipped")
}

// LogBankrupt logs the entry that exhausted the bankroll.
func (dl *DecisionLogger) LogBankrupt(runID string, entry models.LedgerEntry) {
	dl.WithFields(logrus.Fields{
		"run_id":         runID,
		"sequence":       entry.Sequence,
		"match_id":       entry.MatchID,
		"bankroll_after": entry.BankrollAfter,
	}).Warn("Bankroll exhausted")
}

// LogRunFinished logs the terminal state of a simulation run.
func (dl *DecisionLogger) LogRunFinished(runID, status string, entries, skipped int, finalBankroll float64) {
	dl.WithFields(logrus.Fields{
		"run_id":         runID,
		"status":         status,
		"entries":        entries,
		"skipped":        skipped,
		"final_bankroll": finalBankroll,
	}).Info("Simulation finished")
}
