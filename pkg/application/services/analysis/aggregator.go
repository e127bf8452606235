package analysis

import (
	"strings"

	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
)

// DemandSet maps material ids to demand lines and remembers first-seen order
type DemandSet struct {
	lines map[string]*entities.DemandLine
	order []string
}

// NewDemandSet creates an empty demand set
func NewDemandSet() *DemandSet {
	return &DemandSet{
		lines: make(map[string]*entities.DemandLine),
		order: make([]string, 0),
	}
}

// Get returns the demand line for a material
func (d *DemandSet) Get(materialID string) (*entities.DemandLine, bool) {
	line, ok := d.lines[materialID]
	return line, ok
}

// Len returns the number of distinct materials
func (d *DemandSet) Len() int {
	return len(d.order)
}

// Keys returns material ids in first-seen order
func (d *DemandSet) Keys() []string {
	keys := make([]string, len(d.order))
	copy(keys, d.order)
	return keys
}

// Lines returns copies of the demand lines in first-seen order
func (d *DemandSet) Lines() []entities.DemandLine {
	lines := make([]entities.DemandLine, 0, len(d.order))
	for _, id := range d.order {
		line := *d.lines[id]
		line.Sources = append([]entities.Provenance(nil), line.Sources...)
		lines = append(lines, line)
	}
	return lines
}

func (d *DemandSet) add(source entities.DemandSource) {
	id := strings.TrimSpace(source.Material.ID)
	provenance := entities.Provenance{
		Type:     source.Type,
		SourceID: source.SourceID,
		Label:    source.Label,
		Quantity: source.Quantity,
	}

	line, exists := d.lines[id]
	if !exists {
		line = &entities.DemandLine{
			MaterialID:   id,
			MaterialName: source.Material.Name,
			MaterialCode: source.Material.Code,
			Needed:       entities.ZeroQuantity,
			Sources:      make([]entities.Provenance, 0, 1),
		}
		d.lines[id] = line
		d.order = append(d.order, id)
	}

	if line.MaterialName == "" {
		line.MaterialName = source.Material.Name
	}
	if line.MaterialCode == "" {
		line.MaterialCode = source.Material.Code
	}
	line.Needed = line.Needed.Add(source.Quantity)
	line.Sources = append(line.Sources, provenance)
}

// NormalizeSales converts sales orders into demand sources, one per sale
func NormalizeSales(sales []entities.Sale) []entities.DemandSource {
	sources := make([]entities.DemandSource, 0, len(sales))
	for _, sale := range sales {
		sources = append(sources, entities.DemandSource{
			Type:     entities.SourceSale,
			SourceID: sale.ID,
			Label:    sale.CustomerName,
			Material: entities.ProductRef{
				ID:   sale.ProductID,
				Code: sale.ProductCode,
				Name: sale.ProductName,
			},
			Quantity: sale.Quantity,
			IsBOM:    sale.IsBOMProduct,
			BOMID:    strings.TrimSpace(sale.BOMID),
		})
	}
	return sources
}

// NormalizeQuotations converts quotations into demand sources, one per line item
func NormalizeQuotations(quotations []entities.Quotation) []entities.DemandSource {
	sources := make([]entities.DemandSource, 0, len(quotations))
	for _, quotation := range quotations {
		label := quotation.CustomerName
		if label == "" {
			label = quotation.Number
		}
		for _, item := range quotation.Items {
			sources = append(sources, entities.DemandSource{
				Type:     entities.SourceQuote,
				SourceID: quotation.ID,
				Label:    label,
				Material: entities.ProductRef{
					ID:   item.ProductID,
					Code: item.ProductCode,
					Name: item.ProductName,
				},
				Quantity: item.Quantity,
			})
		}
	}
	return sources
}

// Aggregate merges the direct demand of sales and quotations per material.
// BOM-backed sales are left to Explode.
func Aggregate(sales []entities.Sale, quotations []entities.Quotation, mode entities.SourceMode) *DemandSet {
	sources := make([]entities.DemandSource, 0, len(sales)+len(quotations))
	if mode.IncludesSales() {
		sources = append(sources, NormalizeSales(sales)...)
	}
	if mode.IncludesQuotes() {
		sources = append(sources, NormalizeQuotations(quotations)...)
	}
	return AggregateSources(sources)
}

// AggregateSources merges normalized demand sources. Sources without a
// material id are skipped, as are BOM-backed sources.
func AggregateSources(sources []entities.DemandSource) *DemandSet {
	set := NewDemandSet()
	for _, source := range sources {
		if source.IsBOM && source.BOMID != "" {
			continue
		}
		if strings.TrimSpace(source.Material.ID) == "" {
			continue
		}
		set.add(source)
	}
	return set
}
