// Snapshot loading for Open. The JSONL files are read into the freshly
// created SQLite schema in one transaction: either the whole catalog loads
// or the database stays empty. Records that fail to parse or violate a
// constraint are skipped, so one bad line cannot block startup.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/dukaforge/stockroom/pkg/types"
)

// loadSnapshots populates the database from the JSONL files in dataDir and
// returns the restored last assigned item id. Missing files are fine; a
// fresh data directory simply yields an empty catalog and lastID zero.
func loadSnapshots(db *sql.DB, dataDir string) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	maxItemID, err := loadItems(tx, dataDir)
	if err != nil {
		return 0, err
	}
	if err := loadMovements(tx, dataDir); err != nil {
		return 0, err
	}
	lastID, err := loadSequence(tx, dataDir)
	if err != nil {
		return 0, err
	}

	// The sequence snapshot is authoritative, but a stale or missing one
	// must never allow id reuse for items still present.
	if maxItemID > lastID {
		lastID = maxItemID
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing load transaction: %w", err)
	}
	return lastID, nil
}

// loadItems inserts item records and returns the highest item id seen.
func loadItems(tx *sql.Tx, dataDir string) (int64, error) {
	records, err := readJSONL(filepath.Join(dataDir, itemsFile))
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", itemsFile, err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO items (item_id, name, quantity, category, unit_price, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return 0, fmt.Errorf("preparing item insert: %w", err)
	}
	defer stmt.Close()

	var maxID int64
	for _, raw := range records {
		var rec itemRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		if rec.ItemID <= 0 {
			continue
		}
		var category any
		if rec.Category != nil {
			category = *rec.Category
		}
		if _, err := stmt.Exec(rec.ItemID, rec.Name, rec.Quantity, category,
			rec.UnitPrice, rec.CreatedAt, rec.UpdatedAt); err != nil {
			continue
		}
		if rec.ItemID > maxID {
			maxID = rec.ItemID
		}
	}
	return maxID, nil
}

// loadMovements inserts movement records.
func loadMovements(tx *sql.Tx, dataDir string) error {
	records, err := readJSONL(filepath.Join(dataDir, movementsFile))
	if err != nil {
		return fmt.Errorf("reading %s: %w", movementsFile, err)
	}

	stmt, err := tx.Prepare(
		"INSERT INTO movements (movement_id, item_id, kind, delta, quantity, created_at) VALUES (?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("preparing movement insert: %w", err)
	}
	defer stmt.Close()

	for _, raw := range records {
		var rec movementRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		if rec.MovementID == "" || !types.ValidMovementKind(rec.Kind) {
			continue
		}
		if _, err := stmt.Exec(rec.MovementID, rec.ItemID, rec.Kind,
			rec.Delta, rec.Quantity, rec.CreatedAt); err != nil {
			continue
		}
	}
	return nil
}

// loadSequence restores the id sequence row and returns its last_id value.
func loadSequence(tx *sql.Tx, dataDir string) (int64, error) {
	records, err := readJSONL(filepath.Join(dataDir, sequenceFile))
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", sequenceFile, err)
	}

	var lastID int64
	for _, raw := range records {
		var rec sequenceRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		if rec.Name == sequenceName && rec.LastID > lastID {
			lastID = rec.LastID
		}
	}

	if lastID > 0 {
		_, err = tx.Exec(
			"INSERT INTO sequence (name, last_id) VALUES (?, ?) ON CONFLICT(name) DO UPDATE SET last_id = excluded.last_id",
			sequenceName, lastID,
		)
		if err != nil {
			return 0, fmt.Errorf("restoring id sequence: %w", err)
		}
	}
	return lastID, nil
}
