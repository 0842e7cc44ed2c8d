package sqlite

import (
	"errors"
	"testing"

	"github.com/dukaforge/stockroom/pkg/types"
)

func TestEveryMutationRecordsOneMovement(t *testing.T) {
	b, _ := openTestBackend(t)

	id, err := b.Insert(types.Item{Name: "Widget", Quantity: 10})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	qty := int64(8)
	if _, err := b.Update(id, types.Patch{Quantity: &qty}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if _, err := b.Adjust(id, -3); err != nil {
		t.Fatalf("Adjust failed: %v", err)
	}
	if err := b.Remove(id); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	history, err := b.History(id)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 4 {
		t.Fatalf("expected 4 movements, got %d", len(history))
	}

	wantKinds := []string{types.MovementAdd, types.MovementUpdate, types.MovementAdjust, types.MovementRemove}
	wantDeltas := []int64{10, -2, -3, -5}
	wantQty := []int64{10, 8, 5, 0}
	for i, m := range history {
		if m.Kind != wantKinds[i] {
			t.Errorf("movement %d: expected kind %s, got %s", i, wantKinds[i], m.Kind)
		}
		if m.Delta != wantDeltas[i] {
			t.Errorf("movement %d: expected delta %d, got %d", i, wantDeltas[i], m.Delta)
		}
		if m.Quantity != wantQty[i] {
			t.Errorf("movement %d: expected quantity %d, got %d", i, wantQty[i], m.Quantity)
		}
		if m.ItemID != id {
			t.Errorf("movement %d: expected item id %d, got %d", i, id, m.ItemID)
		}
		if m.MovementID == "" {
			t.Errorf("movement %d: missing movement id", i)
		}
	}
	for i := 1; i < len(history); i++ {
		if history[i].CreatedAt.Before(history[i-1].CreatedAt) {
			t.Errorf("history not chronological at index %d", i)
		}
	}
}

func TestFailedAdjustRecordsNoMovement(t *testing.T) {
	b, _ := openTestBackend(t)

	id, _ := b.Insert(types.Item{Name: "Widget", Quantity: 2})
	if _, err := b.Adjust(id, -5); !errors.Is(err, types.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}

	history, err := b.History(id)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("expected only the add movement, got %d movements", len(history))
	}
}

func TestHistoryEdgeCases(t *testing.T) {
	b, _ := openTestBackend(t)

	history, err := b.History(42)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("expected empty history for unknown id, got %d", len(history))
	}

	if _, err := b.History(0); !errors.Is(err, types.ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
}
