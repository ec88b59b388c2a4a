package backtest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/tennis-edge/internal/logger"
	"github.com/yourusername/tennis-edge/internal/metrics"
	"github.com/yourusername/tennis-edge/internal/models"
	"github.com/yourusername/tennis-edge/internal/strategy"
)

const (
	modeBacktest   = "backtest"
	modeMonteCarlo = "monte_carlo"
	modeSweep      = "sweep"
)

// Result is the outcome of one bankroll simulation
type Result struct {
	RunID    uuid.UUID                  `json:"run_id"`
	Strategy strategy.StrategyMetadata `json:"strategy"`
	Status   Status                     `json:"status"`
	Ledger   models.Ledger              `json:"ledger"`
	Skipped  int                        `json:"skipped"`
	Config   Config                     `json:"config"`
}

// Simulator replays opportunity streams through a staking strategy
type Simulator struct {
	config    Config
	strategy  strategy.Strategy
	logger    *logrus.Logger
	decisions *logger.DecisionLogger
	mode      string
}

// NewSimulator creates a simulator. A nil strategy is replaced by the
// Kelly value strategy described by cfg.
func NewSimulator(cfg Config, strat strategy.Strategy, log *logrus.Logger) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	if strat == nil {
		strat = cfg.NewStrategy()
	}
	if log == nil {
		log = logger.Discard()
	}

	return &Simulator{
		config:    cfg,
		strategy:  strat,
		logger:    log,
		decisions: logger.NewDecisionLogger(log),
		mode:      modeBacktest,
	}, nil
}

// Config returns the simulation configuration
func (s *Simulator) Config() Config {
	return s.config
}

// Strategy returns the staking strategy
func (s *Simulator) Strategy() strategy.Strategy {
	return s.strategy
}

func (s *Simulator) withMode(mode string) *Simulator {
	clone := *s
	clone.mode = mode
	return &clone
}

// Assess produces a forward-looking decision for a single matchup.
// No outcome is required and no payout is resolved.
func (s *Simulator) Assess(opp models.BetOpportunity) (models.StakeDecision, error) {
	decision, err := s.strategy.Decide(opp)
	if err != nil {
		return models.StakeDecision{}, fmt.Errorf("assess match %s: %w", opp.MatchID, err)
	}
	decision = s.capStake(decision)
	s.decisions.LogDecision("", decision, 0)
	return decision, nil
}

// Backtest runs one simulation over a stream sorted ascending by date.
// On context cancellation the partial result is returned with ctx.Err().
func (s *Simulator) Backtest(ctx context.Context, stream []models.BetOpportunity) (*Result, error) {
	if err := ValidateOrder(stream); err != nil {
		return nil, err
	}
	return s.run(ctx, OrderStream(stream, s.config.TieBreak))
}

func (s *Simulator) run(ctx context.Context, ordered []models.BetOpportunity) (*Result, error) {
	started := time.Now()
	state := NewSimulationState(s.config.InitialBankroll)
	result := &Result{
		RunID:    uuid.New(),
		Strategy: strategy.MetadataOf(s.strategy),
		Config:   s.config,
	}
	runID := result.RunID.String()

	s.logger.WithFields(logrus.Fields{
		"run_id":           runID,
		"mode":             s.mode,
		"opportunities":    len(ordered),
		"initial_bankroll": s.config.InitialBankroll,
		"strategy":         s.strategy.Name(),
	}).Debug("Starting simulation")

	state.Start()
	for _, opp := range ordered {
		if err := ctx.Err(); err != nil {
			s.finish(result, state, started)
			return result, err
		}

		decision, err := s.decide(opp)
		if err != nil {
			if s.config.OnInvalid == OnInvalidSkip && isRecordError(err) {
				result.Skipped++
				metrics.RecordSkippedOpportunity()
				s.decisions.LogSkipped(runID, opp.MatchID, err)
				continue
			}
			s.finish(result, state, started)
			return result, err
		}

		s.decisions.LogDecision(runID, decision, state.CurrentBankroll)
		entry := state.Settle(opp, decision)
		s.decisions.LogSettlement(runID, entry)
		metrics.RecordLedgerEntry(string(entry.Side), entryResult(entry))

		if state.Status == StatusBankrupt {
			s.decisions.LogBankrupt(runID, entry)
			break
		}
	}

	state.Finish()
	s.finish(result, state, started)
	s.decisions.LogRunFinished(runID, string(result.Status), len(result.Ledger.Entries), result.Skipped, result.Ledger.FinalBankroll())
	return result, nil
}

func (s *Simulator) decide(opp models.BetOpportunity) (models.StakeDecision, error) {
	if err := opp.Validate(true); err != nil {
		return models.StakeDecision{}, err
	}
	decision, err := s.strategy.Decide(opp)
	if err != nil {
		return models.StakeDecision{}, fmt.Errorf("match %s: %w", opp.MatchID, err)
	}
	return s.capStake(decision), nil
}

// capStake holds any strategy's decision to [0, MaxFraction]
func (s *Simulator) capStake(decision models.StakeDecision) models.StakeDecision {
	switch {
	case decision.Side == models.SideNoBet || decision.StakeFraction < 0:
		decision.StakeFraction = 0
	case decision.StakeFraction > s.config.MaxFraction:
		s.logger.WithFields(logrus.Fields{
			"match_id":       decision.MatchID,
			"stake_fraction": decision.StakeFraction,
			"max_fraction":   s.config.MaxFraction,
		}).Warn("Stake fraction above maximum, capping")
		decision.StakeFraction = s.config.MaxFraction
	}
	return decision
}

func (s *Simulator) finish(result *Result, state *SimulationState, started time.Time) {
	result.Status = state.Status
	result.Ledger = state.Ledger()
	metrics.RecordSimulationRun(s.mode, string(state.Status), time.Since(started), state.CurrentBankroll)
}

// ValidateOrder checks that dates never decrease; equal dates are allowed.
// Undated records are left to per-record validation.
func ValidateOrder(stream []models.BetOpportunity) error {
	prev := -1
	for i, opp := range stream {
		if opp.Date.IsZero() {
			continue
		}
		if prev >= 0 && opp.Date.Before(stream[prev].Date) {
			return fmt.Errorf("%w: match %s at %s precedes match %s at %s",
				models.ErrUnsortedInput,
				opp.MatchID, opp.Date.Format(time.RFC3339),
				stream[prev].MatchID, stream[prev].Date.Format(time.RFC3339))
		}
		prev = i
	}
	return nil
}

// OrderStream returns a copy of a date-sorted stream with same-date
// opportunities arranged by the tie-break policy.
func OrderStream(stream []models.BetOpportunity, tieBreak TieBreak) []models.BetOpportunity {
	ordered := make([]models.BetOpportunity, len(stream))
	copy(ordered, stream)
	if tieBreak == TieBreakMatchID {
		sort.SliceStable(ordered, func(i, j int) bool {
			if !ordered[i].Date.Equal(ordered[j].Date) {
				return ordered[i].Date.Before(ordered[j].Date)
			}
			return ordered[i].MatchID < ordered[j].MatchID
		})
	}
	return ordered
}

func isRecordError(err error) bool {
	return errors.Is(err, models.ErrInvalidProbability) ||
		errors.Is(err, models.ErrInvalidOdds) ||
		errors.Is(err, models.ErrInsufficientData)
}

func entryResult(entry models.LedgerEntry) string {
	switch {
	case !entry.IsBet():
		return "none"
	case entry.Won:
		return "won"
	default:
		return "lost"
	}
}
