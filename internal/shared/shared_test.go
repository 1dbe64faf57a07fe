package shared

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func TestGenerateID(t *testing.T) {
	t.Run("Unique", func(t *testing.T) {
		seen := map[string]bool{}
		for i := 0; i < 100; i++ {
			id := GenerateID()
			if seen[id] {
				t.Fatalf("id %s generated twice", id)
			}
			seen[id] = true
		}
	})

	t.Run("Parseable", func(t *testing.T) {
		if _, err := uuid.Parse(GenerateID()); err != nil {
			t.Errorf("generated id is not a valid uuid: %v", err)
		}
	})
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)

	logger.Info("hello")
	if buf.Len() == 0 {
		t.Error("expected log output to be written to the buffer")
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tripkit.log")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create file logger: %v", err)
	}

	logger.Info("hello")
}
