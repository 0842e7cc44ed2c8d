package types

import "errors"

// Store is the backend-agnostic storage contract for the catalog. A store is
// opened with a Config, used, and closed; backends are swappable without
// touching the operation layer.
//
// All mutating operations are atomic with respect to one another: no caller
// ever observes a partially applied mutation, and no read can interleave
// between a mutation's validation and its commit.
type Store interface {
	// Open initializes the backend described by config. Creates the data
	// directory if needed. Returns ErrStoreOpen if already open.
	Open(config Config) error

	// Close releases backend resources. Idempotent. After Close, all other
	// operations return ErrStoreClosed.
	Close() error

	// Insert persists a validated item under a freshly assigned positive id
	// and returns that id. Ids are strictly increasing and never reused,
	// across restarts included.
	Insert(item Item) (int64, error)

	// Get returns a copy of the item with the given id.
	// Returns ErrNotFound if no live item has that id.
	Get(id int64) (Item, error)

	// Update merges patch into the stored item, re-validates the merged
	// record, and persists it atomically. Returns the updated item, or
	// ErrNotFound or a validation sentinel.
	Update(id int64, patch Patch) (Item, error)

	// Adjust changes the item's quantity by delta as one atomic
	// read-check-commit. Returns ErrInvalidQuantity, with state unchanged,
	// when the result would be negative.
	Adjust(id int64, delta int64) (Item, error)

	// Remove deletes the item. Returns ErrNotFound if absent. The id is
	// permanently retired; the item's movement history is kept.
	Remove(id int64) error

	// List returns the current items matching filter, ordered by ascending
	// id. The result is a fresh snapshot each call.
	List(filter Filter) ([]Item, error)

	// History returns the movements recorded for an item in chronological
	// order. Removed items keep their history; an id with no movements
	// yields an empty slice.
	History(id int64) ([]Movement, error)
}

// Storage errors.
var (
	ErrNotFound        = errors.New("item not found")
	ErrInvalidID       = errors.New("invalid item ID")
	ErrInvalidQuantity = errors.New("quantity adjustment would drive quantity negative")
	ErrStoreClosed     = errors.New("store is closed")
	ErrStoreOpen       = errors.New("store is already open")
)

// Filter narrows a List call. The zero value matches every item.
type Filter struct {
	// Category selects items by category. Nil matches all items; a valid
	// category matches that category only; the invalid (absent) category
	// matches uncategorized items only.
	Category *Category
}

// Matches reports whether the item passes the filter.
func (f Filter) Matches(item Item) bool {
	if f.Category == nil {
		return true
	}
	if !f.Category.Valid {
		return !item.Category.Valid
	}
	return item.Category.Valid && item.Category.Name == f.Category.Name
}
