package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/paperstack/paperstack/internal/config"
	"github.com/paperstack/paperstack/internal/logger"
)

// IClient is the transaction boundary used by services. Repositories reach the
// active transaction through the context.
type IClient interface {
	// WithTx runs fn inside a transaction, nested calls become savepoints
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// DB wraps sqlx.DB to provide transaction management
type DB struct {
	*sqlx.DB
	logger *logger.Logger
}

// Querier interface defines all database operations
// Both *sqlx.DB and *sqlx.Tx implement these methods
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	NamedQuery(query string, arg interface{}) (*sqlx.Rows, error)
	Rebind(query string) string
}

// NewDB opens the connection pool described by the postgres config
func NewDB(cfg *config.Configuration, logger *logger.Logger) (*DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Postgres.GetDSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Postgres.ConnMaxLifetimeMinutes) * time.Minute)

	return &DB{DB: db, logger: logger}, nil
}

// NewClient exposes the DB as the transaction boundary for services
func NewClient(db *DB) IClient {
	return db
}

// Close closes the database connection
func (db *DB) Close() {
	if err := db.DB.Close(); err != nil {
		db.logger.Errorw("error closing database", "error", err)
	}
}

// GetQuerier returns either the transaction from context or the base DB
func (db *DB) GetQuerier(ctx context.Context) Querier {
	if tx, ok := GetTx(ctx); ok {
		return NewTracedQuerier(tx.Tx, db.logger, tx.ID)
	}
	return NewTracedQuerier(db.DB, db.logger, "")
}

// NamedExecContext runs a named statement on the current querier
func (db *DB) NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error) {
	return db.GetQuerier(ctx).NamedExecContext(ctx, query, arg)
}

// NamedQueryContext runs a named query on the current querier
func (db *DB) NamedQueryContext(ctx context.Context, query string, arg interface{}) (*sqlx.Rows, error) {
	return db.GetQuerier(ctx).NamedQuery(query, arg)
}

// SelectContext runs a query on the current querier and scans every row into dest
func (db *DB) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	q := db.GetQuerier(ctx)
	return q.SelectContext(ctx, dest, q.Rebind(query), args...)
}

// GetContext runs a query on the current querier and scans a single row into dest
func (db *DB) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	q := db.GetQuerier(ctx)
	return q.GetContext(ctx, dest, q.Rebind(query), args...)
}

// ExecContext runs a statement on the current querier
func (db *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	q := db.GetQuerier(ctx)
	return q.ExecContext(ctx, q.Rebind(query), args...)
}
