package entities

import (
	"errors"
	"testing"
	"time"
)

func TestNewWorkOrder(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	order, err := NewWorkOrder("WO-1", "BOM-A", "Assembly", NewQuantity(2), created)
	if err != nil {
		t.Fatalf("Expected valid work order: %v", err)
	}
	if order.Status != WorkOrderOpen {
		t.Errorf("Expected new work order to be open, got %s", order.Status)
	}

	if _, err := NewWorkOrder("WO-2", "BOM-A", "Assembly", ZeroQuantity, created); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("Expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := NewWorkOrder("", "BOM-A", "Assembly", NewQuantity(1), created); err == nil {
		t.Error("Expected error for empty id")
	}
	if _, err := NewWorkOrder("WO-3", " ", "Assembly", NewQuantity(1), created); err == nil {
		t.Error("Expected error for empty BOM id")
	}
}
