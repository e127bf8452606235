package testing

import (
	"fmt"
	"time"

	"github.com/vsinha/mrpanalysis/pkg/application/dto"
	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
)

var fixtureTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

// MustCreateProduct is a helper for tests - panics on validation error
func MustCreateProduct(id, code, name string, stock int64) entities.Product {
	product, err := entities.NewProduct(id, code, name, "EA", entities.NewQuantity(stock))
	if err != nil {
		panic(err)
	}
	return *product
}

// MustCreateBOM is a helper for tests - panics on validation error.
// Components alternate product id and quantity per unit.
func MustCreateBOM(id, productName, productCode string, components ...interface{}) entities.BOMDefinition {
	if len(components)%2 != 0 {
		panic(fmt.Sprintf("bom %s: components must be id/quantity pairs", id))
	}

	lines := make([]entities.BOMComponent, 0, len(components)/2)
	for i := 0; i < len(components); i += 2 {
		component, err := entities.NewBOMComponent(
			components[i].(string),
			components[i+1].(entities.Quantity),
			"EA",
		)
		if err != nil {
			panic(err)
		}
		lines = append(lines, *component)
	}

	bom, err := entities.NewBOMDefinition(id, productName, productCode, lines)
	if err != nil {
		panic(err)
	}
	return *bom
}

// NewSale creates a pending direct sale
func NewSale(id, customer, productID string, quantity int64) entities.Sale {
	return entities.Sale{
		ID:           id,
		CustomerName: customer,
		ProductID:    productID,
		Quantity:     entities.NewQuantity(quantity),
		Status:       entities.SalePending,
		CreatedAt:    fixtureTime,
	}
}

// NewBOMSale creates a pending sale planned through a BOM
func NewBOMSale(id, customer, productID, bomID string, quantity int64) entities.Sale {
	sale := NewSale(id, customer, productID, quantity)
	sale.IsBOMProduct = true
	sale.BOMID = bomID
	return sale
}

// NewQuotation creates a draft quotation. Items alternate product id and quantity.
func NewQuotation(id, customer string, items ...interface{}) entities.Quotation {
	quotation := entities.Quotation{
		ID:           id,
		Number:       "TKL-" + id,
		CustomerName: customer,
		Status:       entities.QuotationDraft,
		CreatedAt:    fixtureTime,
	}
	for i := 0; i+1 < len(items); i += 2 {
		quotation.Items = append(quotation.Items, entities.QuotationItem{
			ProductID: items[i].(string),
			Quantity:  entities.NewQuantity(int64(items[i+1].(int))),
		})
	}
	return quotation
}

// ScenarioSingleShortage is one direct sale of 10 M against 4 in stock
func ScenarioSingleShortage() dto.AnalysisInput {
	return dto.AnalysisInput{
		Sales:     []entities.Sale{NewSale("S1", "Acme", "M", 10)},
		Products:  []entities.Product{MustCreateProduct("M", "M-01", "Steel sheet", 4)},
		Selection: entities.Selection{SaleIDs: []string{"S1"}},
	}
}

// ScenarioMergedQuotations is two quotations for M (3 and 5) against exactly 8 in stock
func ScenarioMergedQuotations() dto.AnalysisInput {
	return dto.AnalysisInput{
		Quotations: []entities.Quotation{
			NewQuotation("Q1", "Acme", "M", 3),
			NewQuotation("Q2", "Globex", "M", 5),
		},
		Products:  []entities.Product{MustCreateProduct("M", "M-01", "Steel sheet", 8)},
		Selection: entities.Selection{QuotationIDs: []string{"Q1", "Q2"}},
	}
}

// ScenarioBOMExplosion is a BOM-backed sale of 2 A whose BOM needs 3 C each
func ScenarioBOMExplosion() dto.AnalysisInput {
	return dto.AnalysisInput{
		Sales: []entities.Sale{NewBOMSale("S1", "Acme", "A", "BOM-A", 2)},
		Products: []entities.Product{
			MustCreateProduct("A", "A-01", "Assembly", 0),
			MustCreateProduct("C", "C-01", "Component", 4),
		},
		BOMs: []entities.BOMDefinition{
			MustCreateBOM("BOM-A", "Assembly", "A-01", "C", entities.NewQuantity(3)),
		},
		Selection: entities.Selection{SaleIDs: []string{"S1"}},
	}
}

// ScenarioEmptySelection has sources available but none selected
func ScenarioEmptySelection() dto.AnalysisInput {
	input := ScenarioSingleShortage()
	input.Selection = entities.Selection{}
	return input
}

// ScenarioMixed combines direct sales, quotations and a BOM sale over a shared catalog
func ScenarioMixed() dto.AnalysisInput {
	return dto.AnalysisInput{
		Sales: []entities.Sale{
			NewSale("S1", "Acme", "M1", 10),
			NewSale("S2", "Globex", "M2", 2),
			NewBOMSale("S3", "Initech", "A", "BOM-A", 4),
			NewSale("S4", "Umbrella", "M1", 5),
		},
		Quotations: []entities.Quotation{
			NewQuotation("Q1", "Acme", "M1", 1, "M3", 7),
			NewQuotation("Q2", "Hooli", "M2", 3),
		},
		Products: []entities.Product{
			MustCreateProduct("M1", "M1-01", "Bolt", 12),
			MustCreateProduct("M2", "M2-01", "Nut", 5),
			MustCreateProduct("M3", "M3-01", "Washer", 20),
			MustCreateProduct("A", "A-01", "Bracket", 1),
			MustCreateProduct("C1", "C1-01", "Plate", 10),
		},
		BOMs: []entities.BOMDefinition{
			MustCreateBOM("BOM-A", "bracket", "", "C1", entities.NewQuantity(2), "M1", entities.NewQuantity(1)),
		},
		Selection: entities.Selection{
			SaleIDs:      []string{"S1", "S2", "S3", "S4"},
			QuotationIDs: []string{"Q1", "Q2"},
		},
	}
}
