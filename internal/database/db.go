package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// DB represents a database connection
type DB struct {
	*sqlx.DB
}

// ConnectionParams holds PostgreSQL connection parameters
type ConnectionParams struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN builds the lib/pq connection string
func (p ConnectionParams) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode,
	)
}

// New opens and pings a PostgreSQL connection and makes sure the schema exists
func New(ctx context.Context, params ConnectionParams) (*DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", params.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	wrapped := &DB{db}
	if err := wrapped.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return wrapped, nil
}

// Wrap adopts an existing handle, used with sqlmock in tests
func Wrap(db *sqlx.DB) *DB {
	return &DB{db}
}

// Migrate creates the necessary tables if they don't exist
func (db *DB) Migrate(ctx context.Context) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS signal_cooldowns (
			symbol TEXT NOT NULL,
			class TEXT NOT NULL,
			emitted_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (symbol, class)
		)
	`)
	if err != nil {
		return fmt.Errorf("create signal_cooldowns: %w", err)
	}
	return nil
}
