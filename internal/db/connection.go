// Package db provides database connection and management utilities.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/storefront/payments/internal/config"

	// Import postgres driver for registration with database/sql
	_ "github.com/lib/pq"
	// Import sqlite driver for registration with database/sql
	_ "modernc.org/sqlite"
)

// DB wraps the database connection pool
type DB struct {
	*sql.DB
	dialect Dialect
	logger  *slog.Logger
}

// Connect establishes a connection to the database
func Connect(ctx context.Context, cfg *config.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	dialect, err := ParseDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}

	logger.Info("connecting to database",
		"driver", cfg.Driver,
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.DBName,
	)

	db, err := sql.Open(dialect.DriverName(), dialect.dsn(cfg.DSN()))
	if err != nil {
		logger.Error("failed to open database connection", "error", err)
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	maxOpen, maxIdle, maxLifetime := cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime
	if dialect == DialectSQLite {
		// sqlite serializes writers; one long-lived connection also keeps :memory: databases alive
		maxOpen, maxIdle, maxLifetime = 1, 1, 0
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(maxLifetime)

	if err := db.PingContext(ctx); err != nil {
		logger.Error("failed to ping database", "error", err)
		_ = db.Close() //nolint:errcheck // already failing
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if dialect == DialectSQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
			_ = db.Close() //nolint:errcheck // already failing
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}

	logger.Info("successfully connected to database",
		"max_open_conns", maxOpen,
		"max_idle_conns", maxIdle,
		"conn_max_lifetime", maxLifetime,
	)

	return &DB{
		DB:      db,
		dialect: dialect,
		logger:  logger,
	}, nil
}

// Close closes the database connection and logs the closure.
func (db *DB) Close() error {
	db.logger.Info("closing database connection")
	return db.DB.Close()
}

// Dialect returns the SQL dialect of the underlying driver
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Rebind converts '?' placeholders to the driver's native form
func (db *DB) Rebind(query string) string {
	return db.dialect.Rebind(query)
}

// BeginTx starts a transaction that rebinds queries like its parent DB
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*Tx, error) {
	if db.dialect == DialectSQLite {
		// sqlite only supports serializable isolation
		opts = nil
	}
	tx, err := db.DB.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{Tx: tx, dialect: db.dialect}, nil
}

// Tx wraps a database transaction
type Tx struct {
	*sql.Tx
	dialect Dialect
}

// Rebind converts '?' placeholders to the driver's native form
func (tx *Tx) Rebind(query string) string {
	return tx.dialect.Rebind(query)
}

// Executor is satisfied by both *DB and *Tx so repositories can run inside
// or outside a transaction.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Rebind(query string) string
}

var (
	_ Executor = (*DB)(nil)
	_ Executor = (*Tx)(nil)
)
