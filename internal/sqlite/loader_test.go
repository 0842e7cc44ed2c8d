package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dukaforge/stockroom/pkg/types"
)

func TestOpenSkipsCorruptSnapshotLines(t *testing.T) {
	dir := t.TempDir()

	items := `{"item_id":1,"name":"Bolt","quantity":4,"category":null,"unit_price":0.1,"created_at":"2026-01-02T03:04:05Z","updated_at":"2026-01-02T03:04:05Z"}
garbage line
{"item_id":2,"name":"Nut","quantity":9,"category":"Hardware","unit_price":0.05,"created_at":"2026-01-02T03:04:06Z","updated_at":"2026-01-02T03:04:06Z"}
`
	if err := os.WriteFile(filepath.Join(dir, itemsFile), []byte(items), 0o644); err != nil {
		t.Fatal(err)
	}

	b := NewBackend()
	if err := b.Open(types.Config{Backend: types.BackendSQLite, DataDir: dir}); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer b.Close()

	all, err := b.List(types.Filter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 loaded items, got %d", len(all))
	}
	if !all[1].Category.Valid || all[1].Category.Name != "Hardware" {
		t.Errorf("category not restored: %+v", all[1].Category)
	}
}

func TestOpenGuardsAgainstStaleSequence(t *testing.T) {
	dir := t.TempDir()

	// Sequence snapshot says 1, but an item with id 5 exists. The next
	// insert must not collide with the live item.
	items := `{"item_id":5,"name":"Bolt","quantity":4,"category":null,"unit_price":0,"created_at":"2026-01-02T03:04:05Z","updated_at":"2026-01-02T03:04:05Z"}
`
	seq := `{"name":"items","last_id":1}
`
	if err := os.WriteFile(filepath.Join(dir, itemsFile), []byte(items), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, sequenceFile), []byte(seq), 0o644); err != nil {
		t.Fatal(err)
	}

	b := NewBackend()
	if err := b.Open(types.Config{Backend: types.BackendSQLite, DataDir: dir}); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer b.Close()

	id, err := b.Insert(types.Item{Name: "Nut", Quantity: 1})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if id != 6 {
		t.Errorf("expected id 6, got %d", id)
	}
}

func TestOpenFreshDataDir(t *testing.T) {
	b, _ := openTestBackend(t)

	all, err := b.List(types.Filter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected empty catalog, got %d items", len(all))
	}

	id, err := b.Insert(types.Item{Name: "First"})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if id != 1 {
		t.Errorf("expected first id 1, got %d", id)
	}
}
