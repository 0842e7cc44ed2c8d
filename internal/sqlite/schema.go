// Schema DDL for the SQLite catalog database. The database file is a
// disposable query engine rebuilt from the JSONL snapshots on every Open,
// so there is no migration story; the DDL always starts from scratch.
package sqlite

const (
	createItems = `CREATE TABLE items (
    item_id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    quantity INTEGER NOT NULL,
    category TEXT,
    unit_price REAL NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createMovements = `CREATE TABLE movements (
    movement_id TEXT PRIMARY KEY,
    item_id INTEGER NOT NULL,
    kind TEXT NOT NULL,
    delta INTEGER NOT NULL,
    quantity INTEGER NOT NULL,
    created_at TEXT NOT NULL
);`

	// sequence holds the last assigned item id. A single row keyed by
	// name "items" survives item removal, which is what guarantees ids
	// are never reused.
	createSequence = `CREATE TABLE sequence (
    name TEXT PRIMARY KEY,
    last_id INTEGER NOT NULL
);`
)

const (
	idxItemsCategory  = `CREATE INDEX idx_items_category ON items(category);`
	idxMovementsItem  = `CREATE INDEX idx_movements_item ON movements(item_id);`
	idxMovementsOrder = `CREATE INDEX idx_movements_order ON movements(item_id, created_at, movement_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createItems,
	createMovements,
	createSequence,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxItemsCategory,
	idxMovementsItem,
	idxMovementsOrder,
}
