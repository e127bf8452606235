package entities

import (
	"encoding/json"
	"testing"
)

func TestMoney_UnmarshalJSONIsLenient(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"number", `{"unit_price": 12.5, "unit_cost": 7}`, "12.5/7"},
		{"string", `{"unit_price": "12.50", "unit_cost": "7"}`, "12.5/7"},
		{"comma decimal", `{"unit_price": "3,75", "unit_cost": "1,5"}`, "3.75/1.5"},
		{"garbage", `{"unit_price": "abc", "unit_cost": "n/a"}`, "0/0"},
		{"null", `{"unit_price": null, "unit_cost": null}`, "0/0"},
		{"missing", `{}`, "0/0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var p Product
			if err := json.Unmarshal([]byte(tc.input), &p); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			got := p.UnitPrice.String() + "/" + p.UnitCost.String()
			if got != tc.expected {
				t.Errorf("Expected %s, got %s", tc.expected, got)
			}
		})
	}
}

func TestMoney_SaleAndQuotationItemDecodeGarbage(t *testing.T) {
	var sale Sale
	if err := json.Unmarshal([]byte(`{"id": "S1", "quantity": 2, "unit_price": "abc"}`), &sale); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !sale.UnitPrice.IsZero() {
		t.Errorf("Expected zero unit price, got %s", sale.UnitPrice)
	}

	var quotation Quotation
	payload := `{"id": "Q1", "items": [{"product_id": "M", "quantity": 2, "unit_price": "x"}, {"product_id": "N", "quantity": 3, "unit_price": "2.5"}]}`
	if err := json.Unmarshal([]byte(payload), &quotation); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := quotation.Total().String(); got != "7.5" {
		t.Errorf("Expected total 7.5, got %s", got)
	}
}

func TestMoney_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(ParseMoney("19.90"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(data) != `"19.9"` {
		t.Errorf("Expected \"19.9\", got %s", data)
	}
}
