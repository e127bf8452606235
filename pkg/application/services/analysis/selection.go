package analysis

import (
	"fmt"
	"strings"

	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
)

// ActiveSales keeps sales that still represent outstanding demand
func ActiveSales(sales []entities.Sale) []entities.Sale {
	active := make([]entities.Sale, 0, len(sales))
	for _, sale := range sales {
		if sale.IsActive() {
			active = append(active, sale)
		}
	}
	return active
}

// ActiveQuotations keeps quotations in draft or approved status
func ActiveQuotations(quotations []entities.Quotation) []entities.Quotation {
	active := make([]entities.Quotation, 0, len(quotations))
	for _, quotation := range quotations {
		if quotation.IsActive() {
			active = append(active, quotation)
		}
	}
	return active
}

// ApplySelection resolves selected ids to records in selection order.
// The source mode is honored, repeated ids are taken once and ids that
// match no record produce a warning.
func ApplySelection(
	selection entities.Selection,
	sales []entities.Sale,
	quotations []entities.Quotation,
) ([]entities.Sale, []entities.Quotation, []entities.Warning) {
	warnings := make([]entities.Warning, 0)

	selectedSales := make([]entities.Sale, 0, len(selection.SaleIDs))
	if selection.Mode.IncludesSales() {
		index := make(map[string]int, len(sales))
		for i, sale := range sales {
			if _, exists := index[sale.ID]; !exists {
				index[sale.ID] = i
			}
		}
		seen := make(map[string]bool, len(selection.SaleIDs))
		for _, raw := range selection.SaleIDs {
			id := strings.TrimSpace(raw)
			if seen[id] {
				continue
			}
			seen[id] = true

			i, ok := index[id]
			if !ok {
				warnings = append(warnings, sourceNotFound(entities.SourceSale, id))
				continue
			}
			selectedSales = append(selectedSales, sales[i])
		}
	}

	selectedQuotations := make([]entities.Quotation, 0, len(selection.QuotationIDs))
	if selection.Mode.IncludesQuotes() {
		index := make(map[string]int, len(quotations))
		for i, quotation := range quotations {
			if _, exists := index[quotation.ID]; !exists {
				index[quotation.ID] = i
			}
		}
		seen := make(map[string]bool, len(selection.QuotationIDs))
		for _, raw := range selection.QuotationIDs {
			id := strings.TrimSpace(raw)
			if seen[id] {
				continue
			}
			seen[id] = true

			i, ok := index[id]
			if !ok {
				warnings = append(warnings, sourceNotFound(entities.SourceQuote, id))
				continue
			}
			selectedQuotations = append(selectedQuotations, quotations[i])
		}
	}

	return selectedSales, selectedQuotations, warnings
}

func sourceNotFound(sourceType entities.SourceType, id string) entities.Warning {
	return entities.Warning{
		Code:     entities.WarningSourceNotFound,
		SourceID: id,
		Message:  fmt.Sprintf("selected %s %s is not among the active sources", sourceType, id),
	}
}
