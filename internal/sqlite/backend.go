// Package sqlite implements the SQLite storage backend for the stockroom
// catalog. SQLite is the query engine; JSONL snapshot files in DataDir are
// the durable source of truth. On Open the database file is rebuilt from
// the snapshots, and every committed mutation re-snapshots the affected
// files (immediately, or on Close under the on_close sync strategy).
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/dukaforge/stockroom/pkg/types"
)

// dbFileName is the rebuilt-on-open SQLite database inside DataDir.
const dbFileName = "stockroom.db"

// timeFormat is the timestamp encoding used in both SQLite columns and the
// JSONL snapshots. Nanosecond precision keeps movement ordering stable for
// mutations landing within the same second.
const timeFormat = time.RFC3339Nano

// sequenceName keys the single id-sequence row.
const sequenceName = "items"

// Compile-time interface check: Backend must implement Store.
var _ types.Store = (*Backend)(nil)

// Backend implements the Store interface on SQLite plus JSONL snapshots.
type Backend struct {
	mu     sync.RWMutex
	open   bool
	config types.Config
	db     *sql.DB

	// lastID is the highest item id ever assigned. Never decremented,
	// so removed ids are permanently retired.
	lastID int64

	// syncStrategy and dirty implement snapshot deferral: under on_close
	// mutations mark the backend dirty and Close flushes one snapshot.
	syncStrategy string
	dirty        bool
}

// NewBackend creates an unopened backend; call Open with a Config to use it.
func NewBackend() *Backend {
	return &Backend{}
}

// Open initializes the backend: creates DataDir if needed, rebuilds the
// SQLite database from the JSONL snapshots, and restores the id sequence.
// Returns ErrStoreOpen if already open.
func (b *Backend) Open(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.open {
		return types.ErrStoreOpen
	}

	if err := config.Validate(); err != nil {
		return err
	}
	if config.Backend != types.BackendSQLite {
		return types.ErrBackendUnknown
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	config.DataDir = dataDir

	// The database file is disposable; start from a fresh schema and
	// reload from the snapshots.
	dbPath := filepath.Join(dataDir, dbFileName)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating indexes: %w", err)
		}
	}

	lastID, err := loadSnapshots(db, dataDir)
	if err != nil {
		db.Close()
		return fmt.Errorf("loading snapshots: %w", err)
	}

	b.db = db
	b.config = config
	b.lastID = lastID
	b.syncStrategy = config.GetSync()
	b.dirty = false
	b.open = true
	return nil
}

// Close flushes any deferred snapshot and releases the database handle.
// Idempotent. After Close, all operations return ErrStoreClosed.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return nil
	}

	if b.dirty {
		if err := b.snapshotLocked(); err != nil {
			return fmt.Errorf("flushing snapshot: %w", err)
		}
		b.dirty = false
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
		b.db = nil
	}

	b.open = false
	return nil
}

// persistLocked makes a committed mutation durable according to the sync
// strategy. The caller must hold the write lock.
func (b *Backend) persistLocked() error {
	if b.syncStrategy == types.SyncOnClose {
		b.dirty = true
		return nil
	}
	return b.snapshotLocked()
}

// snapshotLocked writes the items, movements, and sequence snapshots
// atomically from the current database state. The caller must hold the
// write lock.
func (b *Backend) snapshotLocked() error {
	items, err := b.collectItemRecords()
	if err != nil {
		return err
	}
	movements, err := b.collectMovementRecords()
	if err != nil {
		return err
	}

	itemLines, err := marshalRecords(items)
	if err != nil {
		return err
	}
	movementLines, err := marshalRecords(movements)
	if err != nil {
		return err
	}
	seqLines, err := marshalRecords([]sequenceRecord{{Name: sequenceName, LastID: b.lastID}})
	if err != nil {
		return err
	}

	dataDir := b.config.DataDir
	if err := writeJSONL(filepath.Join(dataDir, itemsFile), itemLines); err != nil {
		return fmt.Errorf("writing %s: %w", itemsFile, err)
	}
	if err := writeJSONL(filepath.Join(dataDir, movementsFile), movementLines); err != nil {
		return fmt.Errorf("writing %s: %w", movementsFile, err)
	}
	if err := writeJSONL(filepath.Join(dataDir, sequenceFile), seqLines); err != nil {
		return fmt.Errorf("writing %s: %w", sequenceFile, err)
	}
	return nil
}

// collectItemRecords reads every item row into snapshot form, ascending id.
func (b *Backend) collectItemRecords() ([]itemRecord, error) {
	rows, err := b.db.Query(
		"SELECT item_id, name, quantity, category, unit_price, created_at, updated_at FROM items ORDER BY item_id ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("querying items for snapshot: %w", err)
	}
	defer rows.Close()

	var records []itemRecord
	for rows.Next() {
		var rec itemRecord
		var category sql.NullString
		if err := rows.Scan(&rec.ItemID, &rec.Name, &rec.Quantity, &category,
			&rec.UnitPrice, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning item for snapshot: %w", err)
		}
		if category.Valid {
			rec.Category = &category.String
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items for snapshot: %w", err)
	}
	return records, nil
}

// collectMovementRecords reads every movement row into snapshot form in
// chronological order.
func (b *Backend) collectMovementRecords() ([]movementRecord, error) {
	rows, err := b.db.Query(
		"SELECT movement_id, item_id, kind, delta, quantity, created_at FROM movements ORDER BY created_at ASC, movement_id ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("querying movements for snapshot: %w", err)
	}
	defer rows.Close()

	var records []movementRecord
	for rows.Next() {
		var rec movementRecord
		if err := rows.Scan(&rec.MovementID, &rec.ItemID, &rec.Kind,
			&rec.Delta, &rec.Quantity, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning movement for snapshot: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating movements for snapshot: %w", err)
	}
	return records, nil
}

// generateMovementID generates a UUID v7 movement id. V7 ids are
// time-ordered, which keeps history sorts stable.
func generateMovementID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails.
		return uuid.New().String()
	}
	return id.String()
}
