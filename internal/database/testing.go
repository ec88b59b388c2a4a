package database

import (
	"context"
	"testing"
	"time"

	"github.com/yourusername/tennis-edge/internal/config"
)

const skipIntegrationMsg = "Integration test - set TENNIS_EDGE_DATABASE_ENABLED=true and database settings"

// SetupTestDB connects to the database described by TENNIS_EDGE_* variables.
// The test is skipped when no database is enabled.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	cfg, err := config.LoadWithDefaults("")
	if err != nil {
		t.Fatalf("failed to load test config: %v", err)
	}
	if !cfg.Database.Enabled {
		t.Skip(skipIntegrationMsg)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := Initialize(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to create test database connection: %v", err)
	}
	return db
}

// TeardownTestDB closes the database connection
func TeardownTestDB(t *testing.T, db *DB) {
	t.Helper()
	if db != nil {
		db.Close()
	}
}
