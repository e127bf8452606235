package entities

import "testing"

func TestBOMComponent_Validation(t *testing.T) {
	valid, err := NewBOMComponent("C-100", NewQuantity(3), "EA")
	if err != nil {
		t.Fatalf("Expected valid component creation to succeed: %v", err)
	}
	if !valid.QuantityPerUnit.Equal(NewQuantity(3)) {
		t.Errorf("Expected quantity per unit 3, got %s", valid.QuantityPerUnit)
	}

	testCases := []struct {
		name        string
		productID   string
		qtyPerUnit  Quantity
		expectError string
	}{
		{"empty product", "", NewQuantity(1), "component product id cannot be empty"},
		{"zero quantity", "C-100", NewQuantity(0), "quantity per unit must be positive, got 0"},
		{"negative quantity", "C-100", NewQuantity(-2), "quantity per unit must be positive, got -2"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewBOMComponent(tc.productID, tc.qtyPerUnit, "EA")
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error '%s', got '%s'", tc.expectError, err.Error())
			}
		})
	}
}

func TestBOMDefinition_Validation(t *testing.T) {
	bom, err := NewBOMDefinition("BOM-1", "Gearbox", "", nil)
	if err != nil {
		t.Fatalf("Expected BOM without components to be valid: %v", err)
	}
	if len(bom.Components) != 0 {
		t.Errorf("Expected no components, got %d", len(bom.Components))
	}

	if _, err := NewBOMDefinition("", "Gearbox", "GB", nil); err == nil {
		t.Error("Expected error for empty BOM id")
	}

	_, err = NewBOMDefinition("BOM-2", " ", "", nil)
	if err == nil {
		t.Fatal("Expected error for BOM without parent name or code")
	}
	if err.Error() != "bom BOM-2 must name its parent product by name or code" {
		t.Errorf("Unexpected error message: %s", err.Error())
	}
}

func TestBOMDefinition_ParentRef(t *testing.T) {
	bom := BOMDefinition{ID: "BOM-1", ProductName: "Gearbox", ProductCode: "GB-01"}

	ref := bom.ParentRef()
	if ref.ID != "" || ref.Code != "GB-01" || ref.Name != "Gearbox" {
		t.Errorf("Unexpected parent ref: %+v", ref)
	}
	if ref.IsEmpty() {
		t.Error("Expected parent ref to be non-empty")
	}
}
