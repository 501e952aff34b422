package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"

	"github.com/tahcohcat/capsule-achievements/internal/logger"
)

const (
	DriverSQLite   = "sqlite3"
	DriverLibSQL   = "libsql"
	DriverPostgres = "postgres"
)

var ErrUnsupportedDriver = errors.New("unsupported database driver")

// DB is the key/value substrate backing the achievement engine. It
// satisfies store.KV.
type DB struct {
	*sqlx.DB
}

// NewDB creates a new database connection
func NewDB(driver, databaseURL string) (*DB, error) {
	dsn, err := dataSource(driver, databaseURL)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if driver == DriverSQLite {
		// A single writer avoids SQLITE_BUSY under concurrent requests.
		db.SetMaxOpenConns(1)
	}

	dbWrapper := &DB{DB: db}

	// Initialize database schema
	if err := dbWrapper.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	logger.New().Info(fmt.Sprintf("Database connection established (%s) and tables initialized", driver))
	return dbWrapper, nil
}

func dataSource(driver, databaseURL string) (string, error) {
	switch driver {
	case DriverSQLite:
		if databaseURL == "" {
			databaseURL = "achievements.db" // Default SQLite file
		}
		if !strings.Contains(databaseURL, "?") {
			databaseURL += "?_busy_timeout=5000&_journal_mode=WAL"
		}
		return databaseURL, nil
	case DriverLibSQL, DriverPostgres:
		if databaseURL == "" {
			return "", fmt.Errorf("database url required for driver %s", driver)
		}
		return databaseURL, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedDriver, driver)
}

// createTables creates the necessary database tables
func (db *DB) createTables() error {
	kvTable := `
	CREATE TABLE IF NOT EXISTS kv_store (
		store_key TEXT PRIMARY KEY,
		store_value TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);`

	if _, err := db.Exec(kvTable); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	return nil
}

// Get returns the raw value stored at key.
func (db *DB) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	query := db.Rebind(`SELECT store_value FROM kv_store WHERE store_key = ?`)

	err := db.GetContext(ctx, &value, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	return []byte(value), true, nil
}

// Set upserts the value stored at key.
func (db *DB) Set(ctx context.Context, key string, value []byte) error {
	query := db.Rebind(`
		INSERT INTO kv_store (store_key, store_value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(store_key) DO UPDATE SET
			store_value = excluded.store_value,
			updated_at = excluded.updated_at
	`)

	_, err := db.ExecContext(ctx, query, key, string(value), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Keys lists stored keys starting with prefix, in key order.
func (db *DB) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	query := db.Rebind(`SELECT store_key FROM kv_store WHERE store_key LIKE ? ORDER BY store_key`)
	if err := db.SelectContext(ctx, &keys, query, prefix+"%"); err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	// LIKE treats "_" as a wildcard.
	out := keys[:0]
	for _, k := range keys {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
