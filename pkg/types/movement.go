package types

import "time"

// Movement kinds. Every mutating operation records exactly one movement.
const (
	MovementAdd    = "add"
	MovementUpdate = "update"
	MovementAdjust = "adjust"
	MovementRemove = "remove"
)

// validMovementKinds is the set of recognized movement kind values.
var validMovementKinds = map[string]bool{
	MovementAdd:    true,
	MovementUpdate: true,
	MovementAdjust: true,
	MovementRemove: true,
}

// ValidMovementKind reports whether kind is a recognized movement kind.
func ValidMovementKind(kind string) bool {
	return validMovementKinds[kind]
}

// Movement is one entry in an item's audit trail. Movements outlive the item
// they describe: removing an item keeps its history intact.
type Movement struct {
	MovementID string    `json:"movement_id"` // UUID v7, generated on creation; sorts chronologically.
	ItemID     int64     `json:"item_id"`     // Item the movement applies to.
	Kind       string    `json:"kind"`        // One of the Movement constants.
	Delta      int64     `json:"delta"`       // Quantity change; zero for pure field updates.
	Quantity   int64     `json:"quantity"`    // Quantity on hand after the movement.
	CreatedAt  time.Time `json:"created_at"`  // Timestamp of the movement.
}
