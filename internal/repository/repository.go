package repository

import (
	"fmt"

	"github.com/yourusername/tennis-edge/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	BacktestRun BacktestRunRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		BacktestRun: NewPostgresBacktestRunRepository(db),
	}, nil
}
