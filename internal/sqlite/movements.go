// Movement recording and history queries. Movements are append-only: no
// operation updates or deletes one, and removing an item leaves its trail
// in place for auditing.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/dukaforge/stockroom/pkg/types"
)

// recordMovement appends one audit movement inside the caller's transaction.
func recordMovement(tx *sql.Tx, itemID int64, kind string, delta, quantity int64, at time.Time) error {
	_, err := tx.Exec(
		"INSERT INTO movements (movement_id, item_id, kind, delta, quantity, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		generateMovementID(), itemID, kind, delta, quantity, at.Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("recording %s movement: %w", kind, err)
	}
	return nil
}

// History returns the movements recorded for an item in chronological order.
// An id with no recorded movements yields an empty slice, not an error, so
// the history of removed items stays reachable.
func (b *Backend) History(id int64) ([]types.Movement, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.open {
		return nil, types.ErrStoreClosed
	}

	rows, err := b.db.Query(
		"SELECT movement_id, item_id, kind, delta, quantity, created_at FROM movements WHERE item_id = ? ORDER BY created_at ASC, movement_id ASC",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("querying movements for item %d: %w", id, err)
	}
	defer rows.Close()

	movements := []types.Movement{}
	for rows.Next() {
		var m types.Movement
		var createdAt string
		if err := rows.Scan(&m.MovementID, &m.ItemID, &m.Kind, &m.Delta, &m.Quantity, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning movement: %w", err)
		}
		m.CreatedAt, err = time.Parse(timeFormat, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing movement created_at: %w", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating movements: %w", err)
	}
	return movements, nil
}
