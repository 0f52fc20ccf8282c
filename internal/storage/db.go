package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Import sqlite driver
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by Get when a key has no value.
var ErrNotFound = errors.New("preference not found")

// Preference keys persisted on the device.
const (
	KeyAccessToken = "access_token"
	KeyTokenExpiry = "token_expiry"
	KeyRememberMe  = "remember_me"
	KeyLanguage    = "language"
)

// DB wraps a sql.DB connection holding the device preferences.
type DB struct {
	conn *sql.DB
}

// NewDB opens a database connection and runs migrations.
// The path ":memory:" gives a private in-memory database.
func NewDB(path string) (*DB, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db directory: %w", err)
			}
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One connection keeps ":memory:" databases alive and serialises writes.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return &DB{conn: conn}, nil
}

// Get returns the value stored under key, or ErrNotFound.
func (db *DB) Get(key string) (string, error) {
	var value string
	err := db.conn.QueryRow("SELECT value FROM preferences WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Set stores one value.
func (db *DB) Set(key, value string) error {
	return db.SetMany(map[string]string{key: value})
}

// SetMany stores several values in one transaction, so readers never see a partial update.
func (db *DB) SetMany(values map[string]string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for k, v := range values {
		if _, err := tx.Exec(
			`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			k, v, now,
		); err != nil {
			return fmt.Errorf("set %s: %w", k, err)
		}
	}
	return tx.Commit()
}

// Delete removes keys. Missing keys are ignored.
func (db *DB) Delete(keys ...string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, k := range keys {
		if _, err := tx.Exec("DELETE FROM preferences WHERE key = ?", k); err != nil {
			return fmt.Errorf("delete %s: %w", k, err)
		}
	}
	return tx.Commit()
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
