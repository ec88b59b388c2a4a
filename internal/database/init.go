package database

import (
	"context"
	"fmt"

	"github.com/yourusername/tennis-edge/internal/config"
)

// Initialize creates a connection pool and makes sure the run tables exist
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	if !cfg.Database.Enabled {
		return nil, fmt.Errorf("database is not enabled")
	}

	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
