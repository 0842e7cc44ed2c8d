package types

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Validation errors returned by Item.Validate. Each one identifies the
// offending field so callers can correct the input and retry.
var (
	ErrEmptyName        = errors.New("item name must not be empty")
	ErrNegativeQuantity = errors.New("item quantity must not be negative")
	ErrNegativePrice    = errors.New("item unit price must not be negative")
)

// Category is an optional item label. The zero value means "uncategorized".
// Present/absent is tracked explicitly instead of overloading the empty
// string, so a category literally named "" cannot exist by construction.
type Category struct {
	Name  string
	Valid bool
}

// NewCategory returns a present category with the given name. A blank or
// whitespace-only name yields the absent category.
func NewCategory(name string) Category {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}
	}
	return Category{Name: name, Valid: true}
}

// String returns the category name, or "uncategorized" when absent.
func (c Category) String() string {
	if !c.Valid {
		return "uncategorized"
	}
	return c.Name
}

// MarshalJSON encodes a present category as its name and an absent one as null.
func (c Category) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.Name)
}

// UnmarshalJSON decodes null as the absent category and any string as a
// present one.
func (c *Category) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Category{}
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*c = NewCategory(name)
	return nil
}

// Item is one record in the catalog.
type Item struct {
	ID        int64     `json:"id"`         // Positive, assigned by the store on insert, immutable.
	Name      string    `json:"name"`       // Human-readable label (required, non-empty).
	Quantity  int64     `json:"quantity"`   // Units on hand, never negative.
	Category  Category  `json:"category"`   // Optional label; zero value is uncategorized.
	UnitPrice float64   `json:"unit_price"` // Price per unit, never negative.
	CreatedAt time.Time `json:"created_at"` // Timestamp of creation.
	UpdatedAt time.Time `json:"updated_at"` // Timestamp of last mutation.
}

// Validate checks the item invariants: non-empty name, non-negative quantity,
// non-negative unit price. Pure, no side effects. Returns the first failing
// sentinel error, or nil when the item is safe to persist.
func (i Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}
	if i.Quantity < 0 {
		return ErrNegativeQuantity
	}
	if i.UnitPrice < 0 {
		return ErrNegativePrice
	}
	return nil
}

// Patch is a partial item update. Nil fields are left untouched by Apply.
type Patch struct {
	Name      *string
	Quantity  *int64
	Category  *Category
	UnitPrice *float64
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Name == nil && p.Quantity == nil && p.Category == nil && p.UnitPrice == nil
}

// Apply merges the patch into a copy of the item and returns the result.
// Identity fields (ID, CreatedAt) are never touched; the caller is
// responsible for validating the merged record before persisting it.
func (p Patch) Apply(item Item) Item {
	if p.Name != nil {
		item.Name = strings.TrimSpace(*p.Name)
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.UnitPrice != nil {
		item.UnitPrice = *p.UnitPrice
	}
	return item
}
