package entities

import (
	"fmt"
	"strings"
)

// BOMComponent represents one component line of a Bill of Materials
type BOMComponent struct {
	ProductID       string   `json:"product_id"`
	ProductName     string   `json:"product_name,omitempty"`
	QuantityPerUnit Quantity `json:"quantity_per_unit"`
	Unit            string   `json:"unit,omitempty"`
}

// BOMDefinition maps one assembled product to the components needed to build one unit.
// The parent is identified by name or code; ProductID is optional because BOM records
// may predate a direct catalog link.
type BOMDefinition struct {
	ID          string         `json:"id"`
	ProductID   string         `json:"product_id,omitempty"`
	ProductName string         `json:"product_name"`
	ProductCode string         `json:"product_code"`
	Components  []BOMComponent `json:"components"`
}

// NewBOMComponent creates a validated BOMComponent
func NewBOMComponent(productID string, quantityPerUnit Quantity, unit string) (*BOMComponent, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, fmt.Errorf("component product id cannot be empty")
	}
	if !quantityPerUnit.IsPositive() {
		return nil, fmt.Errorf("quantity per unit must be positive, got %s", quantityPerUnit)
	}

	return &BOMComponent{
		ProductID:       productID,
		QuantityPerUnit: quantityPerUnit,
		Unit:            unit,
	}, nil
}

// NewBOMDefinition creates a validated BOMDefinition. A BOM with no components is legal.
func NewBOMDefinition(id, productName, productCode string, components []BOMComponent) (*BOMDefinition, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("bom id cannot be empty")
	}
	if strings.TrimSpace(productName) == "" && strings.TrimSpace(productCode) == "" {
		return nil, fmt.Errorf("bom %s must name its parent product by name or code", id)
	}

	return &BOMDefinition{
		ID:          id,
		ProductName: productName,
		ProductCode: productCode,
		Components:  components,
	}, nil
}

// ParentRef returns the reference used to locate the assembled product in the catalog
func (b BOMDefinition) ParentRef() ProductRef {
	return ProductRef{
		ID:   b.ProductID,
		Code: b.ProductCode,
		Name: b.ProductName,
	}
}
