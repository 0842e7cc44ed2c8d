// Item CRUD for the SQLite backend. Every mutating operation runs under the
// backend write lock and a single transaction that also records the audit
// movement, so readers can never observe a half-applied mutation.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukaforge/stockroom/pkg/types"
)

// Insert persists a validated item under the next sequential id and records
// an "add" movement in the same transaction.
func (b *Backend) Insert(item types.Item) (int64, error) {
	if err := item.Validate(); err != nil {
		return 0, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return 0, types.ErrStoreClosed
	}

	now := time.Now().UTC()
	id := b.lastID + 1
	item.ID = id
	item.CreatedAt = now
	item.UpdatedAt = now

	tx, err := b.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO items (item_id, name, quantity, category, unit_price, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		id, item.Name, item.Quantity, categoryValue(item.Category), item.UnitPrice,
		now.Format(timeFormat), now.Format(timeFormat),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting item: %w", err)
	}

	_, err = tx.Exec(
		"INSERT INTO sequence (name, last_id) VALUES (?, ?) ON CONFLICT(name) DO UPDATE SET last_id = excluded.last_id",
		sequenceName, id,
	)
	if err != nil {
		return 0, fmt.Errorf("advancing id sequence: %w", err)
	}

	if err := recordMovement(tx, id, types.MovementAdd, item.Quantity, item.Quantity, now); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing item: %w", err)
	}

	b.lastID = id
	if err := b.persistLocked(); err != nil {
		return 0, fmt.Errorf("persisting snapshot: %w", err)
	}
	return id, nil
}

// Get retrieves a copy of the item with the given id.
func (b *Backend) Get(id int64) (types.Item, error) {
	if id <= 0 {
		return types.Item{}, types.ErrInvalidID
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.open {
		return types.Item{}, types.ErrStoreClosed
	}
	return b.getItem(id)
}

// Update merges the patch into the stored item, re-validates the result,
// and persists it with an "update" movement.
func (b *Backend) Update(id int64, patch types.Patch) (types.Item, error) {
	if id <= 0 {
		return types.Item{}, types.ErrInvalidID
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return types.Item{}, types.ErrStoreClosed
	}

	current, err := b.getItem(id)
	if err != nil {
		return types.Item{}, err
	}

	merged := patch.Apply(current)
	if err := merged.Validate(); err != nil {
		return types.Item{}, err
	}

	now := time.Now().UTC()
	merged.UpdatedAt = now

	tx, err := b.db.Begin()
	if err != nil {
		return types.Item{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"UPDATE items SET name = ?, quantity = ?, category = ?, unit_price = ?, updated_at = ? WHERE item_id = ?",
		merged.Name, merged.Quantity, categoryValue(merged.Category), merged.UnitPrice,
		now.Format(timeFormat), id,
	)
	if err != nil {
		return types.Item{}, fmt.Errorf("updating item: %w", err)
	}

	delta := merged.Quantity - current.Quantity
	if err := recordMovement(tx, id, types.MovementUpdate, delta, merged.Quantity, now); err != nil {
		return types.Item{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.Item{}, fmt.Errorf("committing update: %w", err)
	}

	if err := b.persistLocked(); err != nil {
		return types.Item{}, fmt.Errorf("persisting snapshot: %w", err)
	}
	return merged, nil
}

// Adjust changes the item's quantity by delta. The read, the negative-result
// check, and the commit all happen under the write lock, so a failed adjust
// leaves no trace and no reader sees the intermediate state.
func (b *Backend) Adjust(id int64, delta int64) (types.Item, error) {
	if id <= 0 {
		return types.Item{}, types.ErrInvalidID
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return types.Item{}, types.ErrStoreClosed
	}

	current, err := b.getItem(id)
	if err != nil {
		return types.Item{}, err
	}

	quantity := current.Quantity + delta
	if quantity < 0 {
		return types.Item{}, fmt.Errorf("adjusting item %d by %d: %w", id, delta, types.ErrInvalidQuantity)
	}

	now := time.Now().UTC()

	tx, err := b.db.Begin()
	if err != nil {
		return types.Item{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"UPDATE items SET quantity = ?, updated_at = ? WHERE item_id = ?",
		quantity, now.Format(timeFormat), id,
	)
	if err != nil {
		return types.Item{}, fmt.Errorf("adjusting item: %w", err)
	}

	if err := recordMovement(tx, id, types.MovementAdjust, delta, quantity, now); err != nil {
		return types.Item{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.Item{}, fmt.Errorf("committing adjustment: %w", err)
	}

	if err := b.persistLocked(); err != nil {
		return types.Item{}, fmt.Errorf("persisting snapshot: %w", err)
	}

	current.Quantity = quantity
	current.UpdatedAt = now
	return current, nil
}

// Remove deletes the item and records a "remove" movement. The item's
// history rows are kept and its id is never reassigned.
func (b *Backend) Remove(id int64) error {
	if id <= 0 {
		return types.ErrInvalidID
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return types.ErrStoreClosed
	}

	current, err := b.getItem(id)
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM items WHERE item_id = ?", id); err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	if err := recordMovement(tx, id, types.MovementRemove, -current.Quantity, 0, now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing removal: %w", err)
	}

	if err := b.persistLocked(); err != nil {
		return fmt.Errorf("persisting snapshot: %w", err)
	}
	return nil
}

// List returns the current items matching the filter, ordered by ascending
// id. Each call materializes a fresh snapshot of hydrated copies.
func (b *Backend) List(filter types.Filter) ([]types.Item, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.open {
		return nil, types.ErrStoreClosed
	}

	query := "SELECT item_id, name, quantity, category, unit_price, created_at, updated_at FROM items"
	var args []any
	if filter.Category != nil {
		if filter.Category.Valid {
			query += " WHERE category = ?"
			args = append(args, filter.Category.Name)
		} else {
			query += " WHERE category IS NULL"
		}
	}
	query += " ORDER BY item_id ASC"

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	items := []types.Item{}
	for rows.Next() {
		item, err := hydrateItem(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return items, nil
}

// getItem hydrates a single item row. The caller must hold the lock.
func (b *Backend) getItem(id int64) (types.Item, error) {
	row := b.db.QueryRow(
		"SELECT item_id, name, quantity, category, unit_price, created_at, updated_at FROM items WHERE item_id = ?",
		id,
	)
	item, err := hydrateItem(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.Item{}, fmt.Errorf("item %d: %w", id, types.ErrNotFound)
		}
		return types.Item{}, fmt.Errorf("getting item %d: %w", id, err)
	}
	return item, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// hydrateItem converts one SQLite row into a types.Item.
func hydrateItem(row rowScanner) (types.Item, error) {
	var item types.Item
	var category sql.NullString
	var createdAt, updatedAt string
	if err := row.Scan(&item.ID, &item.Name, &item.Quantity, &category,
		&item.UnitPrice, &createdAt, &updatedAt); err != nil {
		return types.Item{}, err
	}
	if category.Valid {
		item.Category = types.NewCategory(category.String)
	}
	var err error
	item.CreatedAt, err = time.Parse(timeFormat, createdAt)
	if err != nil {
		return types.Item{}, fmt.Errorf("parsing created_at: %w", err)
	}
	item.UpdatedAt, err = time.Parse(timeFormat, updatedAt)
	if err != nil {
		return types.Item{}, fmt.Errorf("parsing updated_at: %w", err)
	}
	return item, nil
}

// categoryValue converts a Category to its nullable column value.
func categoryValue(c types.Category) any {
	if !c.Valid {
		return nil
	}
	return c.Name
}
