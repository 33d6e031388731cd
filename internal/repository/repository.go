// Package repository provides data access layer implementations for the payments service.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/storefront/payments/internal/db"
)

// withTx runs fn inside a read-committed transaction and commits when fn succeeds
func withTx(ctx context.Context, database *db.DB, fn func(tx *db.Tx) error) error {
	tx, err := database.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// nullBytes keeps empty payloads as SQL NULL so COALESCE preserves the stored value
func nullBytes(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}
