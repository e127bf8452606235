package entities

import (
	"encoding/json"
	"testing"
)

func TestOrderType_Wording(t *testing.T) {
	if Make.Wording() != "production" {
		t.Errorf("Expected 'production', got '%s'", Make.Wording())
	}
	if Buy.Wording() != "procurement" {
		t.Errorf("Expected 'procurement', got '%s'", Buy.Wording())
	}
}

func TestActionType_ParseRoundTrip(t *testing.T) {
	for _, action := range []ActionType{ActionOpenProduction, ActionOpenPurchasing, ActionOpenWorkOrder} {
		parsed, err := ParseActionType(action.String())
		if err != nil {
			t.Fatalf("Failed to parse %s: %v", action, err)
		}
		if parsed != action {
			t.Errorf("Expected %s, got %s", action, parsed)
		}
	}

	if _, err := ParseActionType("OPEN_SESAME"); err == nil {
		t.Error("Expected error for unknown action token")
	}
}

func TestAction_JSON(t *testing.T) {
	var action Action
	if err := json.Unmarshal([]byte(`{"type":"OPEN_PRODUCTION","bom_id":"BOM-1","quantity":"2"}`), &action); err != nil {
		t.Fatalf("Failed to decode action: %v", err)
	}
	if action.Type != ActionOpenProduction {
		t.Errorf("Expected OPEN_PRODUCTION, got %s", action.Type)
	}
	if !action.Quantity.Equal(NewQuantity(2)) {
		t.Errorf("Expected quantity 2, got %s", action.Quantity)
	}

	data, err := json.Marshal(action)
	if err != nil {
		t.Fatalf("Failed to encode action: %v", err)
	}
	expected := `{"type":"OPEN_PRODUCTION","bom_id":"BOM-1","quantity":2}`
	if string(data) != expected {
		t.Errorf("Expected %s, got %s", expected, data)
	}
}
