package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/desertthunder/tripkit/internal/shared"
)

// Adapter is the thin synchronous key/value interface over durable storage.
//
// Read reports absence through its second return value rather than an error.
// Both methods may fail (quota, disabled storage); callers at the cache
// boundary catch the failure and degrade to memory-only behavior.
type Adapter interface {
	Read(key string) (json.RawMessage, bool, error)
	Write(key string, value json.RawMessage) error
}

// SQLiteAdapter implements [Adapter] over the kv_entries table.
type SQLiteAdapter struct {
	db *sql.DB
}

// NewSQLiteAdapter creates a SQLiteAdapter with the given database connection
func NewSQLiteAdapter(db *sql.DB) *SQLiteAdapter {
	return &SQLiteAdapter{db: db}
}

// Read fetches the value stored under key, reporting absence for unknown keys.
func (a *SQLiteAdapter) Read(key string) (json.RawMessage, bool, error) {
	var value string
	err := a.db.QueryRow("SELECT value FROM kv_entries WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: read %s: %v", shared.ErrStorageUnavailable, key, err)
	}

	return json.RawMessage(value), true, nil
}

// Write upserts the value stored under key.
func (a *SQLiteAdapter) Write(key string, value json.RawMessage) error {
	query := `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`

	if _, err := a.db.Exec(query, key, string(value)); err != nil {
		return fmt.Errorf("%w: write %s: %v", shared.ErrStorageUnavailable, key, err)
	}

	return nil
}

// MemoryAdapter implements [Adapter] over a plain map. Used by tests and by
// ephemeral sessions; one code path, two configurations.
type MemoryAdapter struct {
	mu     sync.Mutex
	values map[string]json.RawMessage
}

// NewMemoryAdapter creates an empty MemoryAdapter
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{values: make(map[string]json.RawMessage)}
}

func (a *MemoryAdapter) Read(key string) (json.RawMessage, bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	value, ok := a.values[key]
	return value, ok, nil
}

func (a *MemoryAdapter) Write(key string, value json.RawMessage) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.values[key] = value
	return nil
}

// Len returns the number of stored keys.
func (a *MemoryAdapter) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.values)
}
