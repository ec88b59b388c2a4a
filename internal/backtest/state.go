package backtest

import (
	"github.com/yourusername/tennis-edge/internal/models"
)

// Status is the lifecycle state of one simulation run
type Status string

const (
	StatusReady     Status = "READY"
	StatusRunning   Status = "RUNNING"
	StatusCompleted Status = "COMPLETED"
	StatusBankrupt  Status = "BANKRUPT"
)

// IsTerminal reports whether no further opportunities will be processed
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusBankrupt
}

// SimulationState tracks bankroll and ledger for exactly one run
type SimulationState struct {
	Status          Status
	InitialBankroll float64
	CurrentBankroll float64
	PeakBankroll    float64
	Entries         []models.LedgerEntry
}

// NewSimulationState initializes a READY state with an empty ledger
func NewSimulationState(initialBankroll float64) *SimulationState {
	return &SimulationState{
		Status:          StatusReady,
		InitialBankroll: initialBankroll,
		CurrentBankroll: initialBankroll,
		PeakBankroll:    initialBankroll,
		Entries:         []models.LedgerEntry{},
	}
}

// Start moves a READY state to RUNNING
func (s *SimulationState) Start() {
	if s.Status == StatusReady {
		s.Status = StatusRunning
	}
}

// Settle stakes the decision against the current bankroll, resolves the
// payout from the realized outcome and appends the ledger entry.
func (s *SimulationState) Settle(opp models.BetOpportunity, decision models.StakeDecision) models.LedgerEntry {
	entry := models.LedgerEntry{
		Sequence:       len(s.Entries) + 1,
		MatchID:        opp.MatchID,
		Date:           opp.Date,
		Side:           decision.Side,
		DecimalOdds:    decision.DecimalOdds,
		ExpectedValue:  decision.ExpectedValue,
		BankrollBefore: s.CurrentBankroll,
	}

	if decision.IsBet() {
		staked := decision.StakeFraction * s.CurrentBankroll
		if staked > s.CurrentBankroll {
			staked = s.CurrentBankroll
		}
		entry.StakeFraction = decision.StakeFraction
		entry.StakedAmount = staked
		entry.Won = opp.RealizedOutcome != nil && opp.RealizedOutcome.Winner() == decision.Side
		if entry.Won {
			entry.Payout = staked * (decision.DecimalOdds - 1.0)
		} else {
			entry.Payout = -staked
		}
	} else {
		entry.Side = models.SideNoBet
	}

	s.CurrentBankroll += entry.Payout
	if s.CurrentBankroll > s.PeakBankroll {
		s.PeakBankroll = s.CurrentBankroll
	}
	entry.BankrollAfter = s.CurrentBankroll
	s.Entries = append(s.Entries, entry)

	if s.CurrentBankroll <= 0 {
		s.Status = StatusBankrupt
	}
	return entry
}

// Finish marks a running state COMPLETED; BANKRUPT is kept
func (s *SimulationState) Finish() {
	if s.Status == StatusRunning || s.Status == StatusReady {
		s.Status = StatusCompleted
	}
}

// GetCurrentDrawdown calculates peak-to-trough drawdown as a fraction of the peak
func (s *SimulationState) GetCurrentDrawdown() float64 {
	if s.PeakBankroll <= 0 {
		return 0
	}
	drawdown := (s.PeakBankroll - s.CurrentBankroll) / s.PeakBankroll
	if drawdown < 0 {
		return 0
	}
	return drawdown
}

// Ledger returns a copy of the ledger produced so far
func (s *SimulationState) Ledger() models.Ledger {
	entries := make([]models.LedgerEntry, len(s.Entries))
	copy(entries, s.Entries)
	return models.Ledger{InitialBankroll: s.InitialBankroll, Entries: entries}
}
