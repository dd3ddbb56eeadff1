package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/rl1809/inventory-ledger/internal/core/domain"
)

func TestFileAdapter_WriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	adapter := NewFileAdapter()

	stock := domain.NewStock()
	stock.Set("apple", 7)
	stock.Set("ñandú", 1)

	if err := adapter.WriteStock(path, stock); err != nil {
		t.Fatalf("WriteStock failed: %v", err)
	}

	got, err := adapter.ReadStock(path)
	if err != nil {
		t.Fatalf("ReadStock failed: %v", err)
	}
	if !got.Equal(stock) {
		t.Errorf("expected %v, got %v", stock.Items(), got.Items())
	}
}

func TestFileAdapter_ReadMissing(t *testing.T) {
	adapter := NewFileAdapter()

	_, err := adapter.ReadStock(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestFileAdapter_ReadDirectory(t *testing.T) {
	adapter := NewFileAdapter()

	_, err := adapter.ReadStock(t.TempDir())
	if !errors.Is(err, domain.ErrIOFailure) {
		t.Errorf("expected ErrIOFailure, got %v", err)
	}
}

func TestFileAdapter_WriteIntoMissingDir(t *testing.T) {
	adapter := NewFileAdapter()
	path := filepath.Join(t.TempDir(), "nope", "inventory.json")

	err := adapter.WriteStock(path, domain.NewStock())
	if !errors.Is(err, domain.ErrIOFailure) {
		t.Errorf("expected ErrIOFailure, got %v", err)
	}
}

func TestFileAdapter_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	if err := os.WriteFile(path, []byte(`{"old": 1, "older": 2}`), 0o644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	adapter := NewFileAdapter()

	stock := domain.NewStock()
	stock.Set("new", 3)
	if err := adapter.WriteStock(path, stock); err != nil {
		t.Fatalf("WriteStock failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "{\n  \"new\": 3\n}" {
		t.Errorf("unexpected file content %q", string(data))
	}
}
