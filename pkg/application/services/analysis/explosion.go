package analysis

import (
	"fmt"
	"strings"

	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
	"github.com/vsinha/mrpanalysis/pkg/domain/services"
)

// Explode builds one parent row per BOM-backed sale, each carrying one level
// of component rows scaled by the sale quantity. Sales whose BOM or parent
// product cannot be found are skipped with a warning.
func Explode(
	sales []entities.Sale,
	boms []entities.BOMDefinition,
	resolver *services.ProductResolver,
) ([]entities.DemandLine, []entities.Warning) {
	bomIndex := make(map[string]*entities.BOMDefinition, len(boms))
	for i := range boms {
		id := strings.TrimSpace(boms[i].ID)
		if _, exists := bomIndex[id]; !exists {
			bomIndex[id] = &boms[i]
		}
	}

	parents := make([]entities.DemandLine, 0)
	warnings := make([]entities.Warning, 0)

	for _, sale := range sales {
		if !sale.IsBOMBacked() {
			continue
		}
		bomID := strings.TrimSpace(sale.BOMID)

		bom, ok := bomIndex[bomID]
		if !ok {
			warnings = append(warnings, entities.Warning{
				Code:     entities.WarningBOMNotFound,
				SourceID: sale.ID,
				BOMID:    bomID,
				Message:  fmt.Sprintf("sale %s references unknown BOM %s", sale.ID, bomID),
			})
			continue
		}

		parent, err := resolver.Resolve(bom.ParentRef())
		if err != nil {
			warnings = append(warnings, entities.Warning{
				Code:     entities.WarningBOMParentUnresolved,
				SourceID: sale.ID,
				BOMID:    bomID,
				Message:  fmt.Sprintf("BOM %s parent %s is not in the product catalog", bomID, bom.ParentRef()),
			})
			continue
		}

		line, componentWarnings := explodeSale(sale, bom, parent, resolver)
		parents = append(parents, line)
		warnings = append(warnings, componentWarnings...)
	}

	return parents, warnings
}

func explodeSale(
	sale entities.Sale,
	bom *entities.BOMDefinition,
	parent *entities.Product,
	resolver *services.ProductResolver,
) (entities.DemandLine, []entities.Warning) {
	var warnings []entities.Warning

	line := entities.DemandLine{
		MaterialID:   parent.ID,
		MaterialName: parent.Name,
		MaterialCode: parent.Code,
		Unit:         parent.Unit,
		Needed:       sale.Quantity,
		Sources:      []entities.Provenance{saleProvenance(sale, sale.Quantity)},
		IsBOMParent:  true,
		BOMID:        bom.ID,
		Resolved:     true,
		Children:     make([]entities.DemandLine, 0, len(bom.Components)),
	}

	for _, component := range bom.Components {
		needed := component.QuantityPerUnit.Mul(sale.Quantity)
		child := entities.DemandLine{
			MaterialID:   component.ProductID,
			MaterialName: entities.UnknownMaterialName,
			Unit:         component.Unit,
			Needed:       needed,
			Sources:      []entities.Provenance{saleProvenance(sale, needed)},
			IsBOMChild:   true,
			BOMID:        bom.ID,
		}

		product, err := resolver.ResolveID(component.ProductID)
		if err != nil {
			warnings = append(warnings, entities.Warning{
				Code:     entities.WarningComponentUnresolved,
				SourceID: sale.ID,
				BOMID:    bom.ID,
				Message:  fmt.Sprintf("BOM %s component %s is not in the product catalog", bom.ID, component.ProductID),
			})
		} else {
			child.MaterialID = product.ID
			child.MaterialName = product.Name
			child.MaterialCode = product.Code
			child.Resolved = true
			if child.Unit == "" {
				child.Unit = product.Unit
			}
		}

		line.Children = append(line.Children, child)
	}

	return line, warnings
}

func saleProvenance(sale entities.Sale, quantity entities.Quantity) entities.Provenance {
	return entities.Provenance{
		Type:     entities.SourceSale,
		SourceID: sale.ID,
		Label:    sale.CustomerName,
		Quantity: quantity,
	}
}
