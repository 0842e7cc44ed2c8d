package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukaforge/stockroom/internal/memory"
	"github.com/dukaforge/stockroom/internal/sqlite"
	"github.com/dukaforge/stockroom/pkg/types"
)

// newTestService builds a Service over an open in-memory store.
func newTestService(t *testing.T) *Service {
	t.Helper()
	store := memory.NewStore()
	require.NoError(t, store.Open(types.Config{Backend: types.BackendMemory}))
	t.Cleanup(func() { store.Close() })
	return NewService(store)
}

func TestAddItem(t *testing.T) {
	svc := newTestService(t)

	item, err := svc.AddItem("Widget", 10, types.NewCategory("Hardware"), 2.50)
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.ID)
	assert.Equal(t, "Widget", item.Name)
	assert.Equal(t, int64(10), item.Quantity)
	assert.Equal(t, types.NewCategory("Hardware"), item.Category)
	assert.Equal(t, 2.50, item.UnitPrice)
	assert.False(t, item.CreatedAt.IsZero())
}

func TestAddItemNormalizesName(t *testing.T) {
	svc := newTestService(t)

	item, err := svc.AddItem("  Widget  ", 1, types.Category{}, 0)
	require.NoError(t, err)
	assert.Equal(t, "Widget", item.Name)
}

func TestAddItemValidation(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name      string
		itemName  string
		quantity  int64
		unitPrice float64
		wantErr   error
	}{
		{"empty name", "", 1, 1, types.ErrEmptyName},
		{"whitespace name", "   ", 1, 1, types.ErrEmptyName},
		{"negative quantity", "Widget", -1, 1, types.ErrNegativeQuantity},
		{"negative price", "Widget", 1, -0.5, types.ErrNegativePrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddItem(tt.itemName, tt.quantity, types.Category{}, tt.unitPrice)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// Nothing reached the store.
	items, err := svc.ListItems(types.Filter{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAdjustQuantity(t *testing.T) {
	svc := newTestService(t)

	item, err := svc.AddItem("Widget", 10, types.NewCategory("Hardware"), 2.50)
	require.NoError(t, err)

	_, err = svc.AdjustQuantity(item.ID, -15)
	assert.ErrorIs(t, err, types.ErrInvalidQuantity)

	unchanged, err := svc.GetItem(item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), unchanged.Quantity)

	adjusted, err := svc.AdjustQuantity(item.ID, -5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), adjusted.Quantity)

	require.NoError(t, svc.RemoveItem(item.ID))
	_, err = svc.GetItem(item.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestUpdateItem(t *testing.T) {
	svc := newTestService(t)

	item, err := svc.AddItem("Widget", 10, types.Category{}, 2.50)
	require.NoError(t, err)

	name := "Gadget"
	category := types.NewCategory("Tools")
	updated, err := svc.UpdateItem(item.ID, types.Patch{Name: &name, Category: &category})
	require.NoError(t, err)
	assert.Equal(t, "Gadget", updated.Name)
	assert.Equal(t, category, updated.Category)
	assert.Equal(t, item.ID, updated.ID)

	bad := int64(-1)
	_, err = svc.UpdateItem(item.ID, types.Patch{Quantity: &bad})
	assert.ErrorIs(t, err, types.ErrNegativeQuantity)

	_, err = svc.UpdateItem(999, types.Patch{Name: &name})
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestListItemsFiltered(t *testing.T) {
	svc := newTestService(t)

	hardware := types.NewCategory("Hardware")
	_, err := svc.AddItem("Bolt", 100, hardware, 0.10)
	require.NoError(t, err)
	_, err = svc.AddItem("Manual", 5, types.Category{}, 12.00)
	require.NoError(t, err)

	all, err := svc.ListItems(types.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := svc.ListItems(types.Filter{Category: &hardware})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Bolt", filtered[0].Name)
}

func TestItemHistory(t *testing.T) {
	svc := newTestService(t)

	item, err := svc.AddItem("Widget", 10, types.Category{}, 0)
	require.NoError(t, err)
	_, err = svc.AdjustQuantity(item.ID, -3)
	require.NoError(t, err)
	require.NoError(t, svc.RemoveItem(item.ID))

	history, err := svc.ItemHistory(item.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, types.MovementAdd, history[0].Kind)
	assert.Equal(t, types.MovementAdjust, history[1].Kind)
	assert.Equal(t, types.MovementRemove, history[2].Kind)
}

// The service behaves identically over the SQLite backend; run the core
// scenario against it to pin the backend-agnostic contract.
func TestServiceOverSQLiteBackend(t *testing.T) {
	store := sqlite.NewBackend()
	require.NoError(t, store.Open(types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}))
	t.Cleanup(func() { store.Close() })
	svc := NewService(store)

	item, err := svc.AddItem("Widget", 10, types.NewCategory("Hardware"), 2.50)
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.ID)

	_, err = svc.AdjustQuantity(item.ID, -15)
	assert.ErrorIs(t, err, types.ErrInvalidQuantity)

	adjusted, err := svc.AdjustQuantity(item.ID, -5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), adjusted.Quantity)

	require.NoError(t, svc.RemoveItem(item.ID))
	_, err = svc.GetItem(item.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}
