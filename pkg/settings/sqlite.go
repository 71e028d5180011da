package settings

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS settings (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// SQLiteClient stores appliance settings in a local sqlite database.
type SQLiteClient struct {
	db *sql.DB
}

// OpenSQLite opens (and if necessary initializes) the settings database at
// dbPath.
func OpenSQLite(dbPath string) (*SQLiteClient, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open settings store %s: %w", dbPath, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize settings store: %w", err)
	}

	return &SQLiteClient{db: db}, nil
}

// Close closes the underlying database.
func (c *SQLiteClient) Close() error {
	return c.db.Close()
}

// Apply upserts all pairs in a single transaction, in order.
func (c *SQLiteClient) Apply(ctx context.Context, pairs []Pair) error {
	if len(pairs) == 0 {
		return nil
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin settings update: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO settings (key, value, updated_at)
        VALUES (?, ?, CURRENT_TIMESTAMP)
        ON CONFLICT(key) DO UPDATE SET
            value = excluded.value,
            updated_at = CURRENT_TIMESTAMP
    `)
	if err != nil {
		return fmt.Errorf("failed to prepare settings update: %w", err)
	}
	defer stmt.Close()

	for _, pair := range pairs {
		if _, err := stmt.ExecContext(ctx, pair.Key, pair.Value); err != nil {
			return fmt.Errorf("failed to apply setting %s: %w", pair.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settings update: %w", err)
	}

	return nil
}

// Get returns the stored value for key, or sql.ErrNoRows if absent.
func (c *SQLiteClient) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := c.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}
