// Package inventory provides the operation layer over a Store. It is the
// only surface the CLI talks to: each operation validates input, delegates
// to the store, and returns sentinel errors from pkg/types so callers
// handle a single error taxonomy with errors.Is.
package inventory

import (
	"strings"

	"github.com/dukaforge/stockroom/pkg/types"
)

// Service composes item validation with store calls. It holds no state of
// its own; the store owns the catalog.
type Service struct {
	store types.Store
}

// NewService returns a Service over the given store. The store must already
// be open; the caller keeps ownership of its lifecycle.
func NewService(store types.Store) *Service {
	return &Service{store: store}
}

// AddItem validates and inserts a new item, returning the stored record
// with its assigned id.
func (s *Service) AddItem(name string, quantity int64, category types.Category, unitPrice float64) (types.Item, error) {
	item := types.Item{
		Name:      strings.TrimSpace(name),
		Quantity:  quantity,
		Category:  category,
		UnitPrice: unitPrice,
	}
	if err := item.Validate(); err != nil {
		return types.Item{}, err
	}

	id, err := s.store.Insert(item)
	if err != nil {
		return types.Item{}, err
	}
	return s.store.Get(id)
}

// GetItem returns the item with the given id.
func (s *Service) GetItem(id int64) (types.Item, error) {
	return s.store.Get(id)
}

// RemoveItem deletes the item with the given id. The id is never reused.
func (s *Service) RemoveItem(id int64) error {
	return s.store.Remove(id)
}

// AdjustQuantity changes an item's quantity by delta. Fails with
// ErrInvalidQuantity, leaving the item untouched, if the result would be
// negative.
func (s *Service) AdjustQuantity(id int64, delta int64) (types.Item, error) {
	return s.store.Adjust(id, delta)
}

// UpdateItem applies a partial update and returns the merged record.
func (s *Service) UpdateItem(id int64, patch types.Patch) (types.Item, error) {
	return s.store.Update(id, patch)
}

// ListItems returns the current items matching the filter, ascending by id.
func (s *Service) ListItems(filter types.Filter) ([]types.Item, error) {
	return s.store.List(filter)
}

// ItemHistory returns the audit movements for an item, including removed
// ones, in chronological order.
func (s *Service) ItemHistory(id int64) ([]types.Movement, error) {
	return s.store.History(id)
}
