// Package memory implements an in-memory storage backend for the stockroom
// catalog. It honors the full Store contract except durability: state lives
// only for the lifetime of the process. It backs fast tests and the
// "memory" backend selection for throwaway catalogs.
package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dukaforge/stockroom/pkg/types"
)

// Compile-time interface check: Store must implement types.Store.
var _ types.Store = (*Store)(nil)

// Store holds the catalog in process memory behind one RWMutex.
type Store struct {
	mu        sync.RWMutex
	open      bool
	items     map[int64]types.Item
	movements []types.Movement
	lastID    int64
}

// NewStore creates an unopened in-memory store.
func NewStore() *Store {
	return &Store{}
}

// Open initializes the store. Returns ErrStoreOpen if already open.
func (s *Store) Open(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return types.ErrStoreOpen
	}
	if err := config.Validate(); err != nil {
		return err
	}
	if config.Backend != types.BackendMemory {
		return types.ErrBackendUnknown
	}

	s.items = make(map[int64]types.Item)
	s.movements = nil
	s.open = true
	return nil
}

// Close discards the catalog. Idempotent. The id sequence is kept so a
// reopened store still never reuses ids within the process.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.movements = nil
	s.open = false
	return nil
}

// Insert persists a validated item under the next sequential id.
func (s *Store) Insert(item types.Item) (int64, error) {
	if err := item.Validate(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return 0, types.ErrStoreClosed
	}

	now := time.Now().UTC()
	s.lastID++
	item.ID = s.lastID
	item.CreatedAt = now
	item.UpdatedAt = now

	s.items[item.ID] = item
	s.record(item.ID, types.MovementAdd, item.Quantity, item.Quantity, now)
	return item.ID, nil
}

// Get returns a copy of the item with the given id.
func (s *Store) Get(id int64) (types.Item, error) {
	if id <= 0 {
		return types.Item{}, types.ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return types.Item{}, types.ErrStoreClosed
	}

	item, ok := s.items[id]
	if !ok {
		return types.Item{}, fmt.Errorf("item %d: %w", id, types.ErrNotFound)
	}
	return item, nil
}

// Update merges patch into the stored item and re-validates the result.
func (s *Store) Update(id int64, patch types.Patch) (types.Item, error) {
	if id <= 0 {
		return types.Item{}, types.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return types.Item{}, types.ErrStoreClosed
	}

	current, ok := s.items[id]
	if !ok {
		return types.Item{}, fmt.Errorf("item %d: %w", id, types.ErrNotFound)
	}

	merged := patch.Apply(current)
	if err := merged.Validate(); err != nil {
		return types.Item{}, err
	}

	now := time.Now().UTC()
	merged.UpdatedAt = now
	s.items[id] = merged
	s.record(id, types.MovementUpdate, merged.Quantity-current.Quantity, merged.Quantity, now)
	return merged, nil
}

// Adjust changes the item's quantity by delta under the write lock.
func (s *Store) Adjust(id int64, delta int64) (types.Item, error) {
	if id <= 0 {
		return types.Item{}, types.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return types.Item{}, types.ErrStoreClosed
	}

	current, ok := s.items[id]
	if !ok {
		return types.Item{}, fmt.Errorf("item %d: %w", id, types.ErrNotFound)
	}

	quantity := current.Quantity + delta
	if quantity < 0 {
		return types.Item{}, fmt.Errorf("adjusting item %d by %d: %w", id, delta, types.ErrInvalidQuantity)
	}

	now := time.Now().UTC()
	current.Quantity = quantity
	current.UpdatedAt = now
	s.items[id] = current
	s.record(id, types.MovementAdjust, delta, quantity, now)
	return current, nil
}

// Remove deletes the item. Its id stays retired and its history stays.
func (s *Store) Remove(id int64) error {
	if id <= 0 {
		return types.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return types.ErrStoreClosed
	}

	current, ok := s.items[id]
	if !ok {
		return fmt.Errorf("item %d: %w", id, types.ErrNotFound)
	}

	delete(s.items, id)
	s.record(id, types.MovementRemove, -current.Quantity, 0, time.Now().UTC())
	return nil
}

// List returns the matching items ordered by ascending id.
func (s *Store) List(filter types.Filter) ([]types.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return nil, types.ErrStoreClosed
	}

	items := []types.Item{}
	for _, item := range s.items {
		if filter.Matches(item) {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// History returns the movements recorded for an item in insertion order,
// which is chronological because movements are only appended under the
// write lock.
func (s *Store) History(id int64) ([]types.Movement, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.open {
		return nil, types.ErrStoreClosed
	}

	movements := []types.Movement{}
	for _, m := range s.movements {
		if m.ItemID == id {
			movements = append(movements, m)
		}
	}
	return movements, nil
}

// record appends one movement. The caller must hold the write lock.
func (s *Store) record(itemID int64, kind string, delta, quantity int64, at time.Time) {
	s.movements = append(s.movements, types.Movement{
		MovementID: newMovementID(),
		ItemID:     itemID,
		Kind:       kind,
		Delta:      delta,
		Quantity:   quantity,
		CreatedAt:  at,
	})
}

// newMovementID generates a UUID v7 movement id, falling back to v4.
func newMovementID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
