package entities

import (
	"fmt"
	"strings"
)

// UnknownMaterialName is the display name for demand that references no catalog product
const UnknownMaterialName = "Bilinmeyen"

// Product represents a catalog entry together with its current on-hand stock
type Product struct {
	ID        string   `json:"id"`
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	Unit      string   `json:"unit"`
	Quantity  Quantity `json:"quantity"`
	UnitPrice Money    `json:"unit_price"`
	UnitCost  Money    `json:"unit_cost"`
}

// NewProduct creates a validated Product
func NewProduct(id, code, name, unit string, stock Quantity) (*Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("product id cannot be empty")
	}
	if strings.TrimSpace(name) == "" && strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("product %s needs a name or a code", id)
	}

	return &Product{
		ID:       id,
		Code:     code,
		Name:     name,
		Unit:     unit,
		Quantity: stock,
	}, nil
}

// ProductRef identifies a product by stable id, falling back to code or name.
// BOM records may predate the catalog and carry only a name or code.
type ProductRef struct {
	ID   string `json:"id,omitempty"`
	Code string `json:"code,omitempty"`
	Name string `json:"name,omitempty"`
}

// IsEmpty reports whether the reference carries no identifying field
func (r ProductRef) IsEmpty() bool {
	return strings.TrimSpace(r.ID) == "" &&
		strings.TrimSpace(r.Code) == "" &&
		strings.TrimSpace(r.Name) == ""
}

// String renders the reference for log and warning messages
func (r ProductRef) String() string {
	switch {
	case r.ID != "":
		return "id=" + r.ID
	case r.Code != "":
		return "code=" + r.Code
	default:
		return "name=" + r.Name
	}
}

// StockSnapshot maps product ids to on-hand quantity, read once per analysis run
type StockSnapshot map[string]Quantity

// NewStockSnapshot captures current stock for every product in the catalog.
// Ids are trimmed like the resolver trims them. The first product wins when
// ids are duplicated.
func NewStockSnapshot(products []Product) StockSnapshot {
	snapshot := make(StockSnapshot, len(products))
	for _, p := range products {
		id := strings.TrimSpace(p.ID)
		if _, exists := snapshot[id]; exists {
			continue
		}
		snapshot[id] = p.Quantity
	}
	return snapshot
}

// Lookup returns on-hand stock for a product id, zero when the id is unknown
func (s StockSnapshot) Lookup(productID string) Quantity {
	if q, ok := s[strings.TrimSpace(productID)]; ok {
		return q
	}
	return ZeroQuantity
}
