package db

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/storefront/payments/internal/config"
)

// NewTestDB opens a migrated in-memory sqlite database with a no-op logger.
// This is only for use in tests where logging output is not needed
func NewTestDB(t testing.TB) *DB {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.DatabaseConfig{
		Driver: string(DialectSQLite),
		Path:   ":memory:",
	}

	database, err := Connect(context.Background(), cfg, logger)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close() //nolint:errcheck // test cleanup
	})

	if err := database.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return database
}
