package store

import (
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/desertthunder/tripkit/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func TestSQLiteAdapter(t *testing.T) {
	t.Run("Read Absent Key", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		adapter := NewSQLiteAdapter(db)

		_, ok, err := adapter.Read("disney-countdowns")
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if ok {
			t.Error("unknown key should report absent")
		}
	})

	t.Run("Write Then Read", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		adapter := NewSQLiteAdapter(db)
		value := json.RawMessage(`{"items":[{"id":"c1","name":"Trip"}]}`)

		if err := adapter.Write("disney-countdowns", value); err != nil {
			t.Fatalf("write failed: %v", err)
		}

		got, ok, err := adapter.Read("disney-countdowns")
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if !ok {
			t.Fatal("written key should be present")
		}
		if string(got) != string(value) {
			t.Errorf("read %s, want %s", got, value)
		}
	})

	t.Run("Write Upserts", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		adapter := NewSQLiteAdapter(db)

		if err := adapter.Write("disney-budgets", json.RawMessage(`{"items":[]}`)); err != nil {
			t.Fatalf("first write failed: %v", err)
		}

		updated := json.RawMessage(`{"items":[{"id":"b1","name":"Food"}]}`)
		if err := adapter.Write("disney-budgets", updated); err != nil {
			t.Fatalf("second write failed: %v", err)
		}

		got, _, err := adapter.Read("disney-budgets")
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if string(got) != string(updated) {
			t.Errorf("read %s, want %s", got, updated)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM kv_entries").Scan(&count); err != nil {
			t.Fatalf("failed to count rows: %v", err)
		}
		if count != 1 {
			t.Errorf("expected one row after upsert, got %d", count)
		}
	})

	t.Run("Read After Close Fails Softly", func(t *testing.T) {
		db := setupTestDB(t)
		adapter := NewSQLiteAdapter(db)
		db.Close()

		_, _, err := adapter.Read("disney-countdowns")
		if err == nil {
			t.Fatal("read on a closed database should fail")
		}
	})
}

func TestMemoryAdapter(t *testing.T) {
	adapter := NewMemoryAdapter()

	if _, ok, _ := adapter.Read("k"); ok {
		t.Error("empty adapter should report absent")
	}

	if err := adapter.Write("k", json.RawMessage(`1`)); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, ok, err := adapter.Read("k")
	if err != nil || !ok {
		t.Fatalf("read failed: ok=%v err=%v", ok, err)
	}
	if string(got) != "1" {
		t.Errorf("read %s, want 1", got)
	}

	if adapter.Len() != 1 {
		t.Errorf("expected one key, got %d", adapter.Len())
	}
}
