package strategy

import (
	"github.com/yourusername/tennis-edge/internal/models"
)

// Strategy turns a priced matchup into a stake decision
type Strategy interface {
	Name() string
	Decide(opp models.BetOpportunity) (models.StakeDecision, error)
	GetParameters() map[string]interface{}
}

// StrategyMetadata describes a strategy for reports and exports
type StrategyMetadata struct {
	Name       string                 `json:"name"`
	Parameters map[string]interface{} `json:"parameters"`
}

// MetadataOf captures a strategy's name and parameters
func MetadataOf(s Strategy) StrategyMetadata {
	return StrategyMetadata{Name: s.Name(), Parameters: s.GetParameters()}
}
