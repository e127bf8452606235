package analysis

import (
	"fmt"

	"github.com/vsinha/mrpanalysis/pkg/application/dto"
	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
	"github.com/vsinha/mrpanalysis/pkg/domain/services"
)

// RunMRPAnalysis runs a complete analysis over in-memory collections.
// It is pure: no I/O, no shared state, and identical input yields identical output.
// The only hard failure is an empty selection.
func RunMRPAnalysis(input dto.AnalysisInput) (*dto.AnalysisResult, error) {
	if input.Selection.IsEmpty() {
		return nil, entities.ErrEmptySelection
	}

	sales, quotations, warnings := ApplySelection(input.Selection, input.Sales, input.Quotations)

	resolver := services.NewProductResolver(input.Products)
	stock := entities.NewStockSnapshot(input.Products)

	parents, explosionWarnings := Explode(sales, input.BOMs, resolver)
	warnings = append(warnings, explosionWarnings...)

	direct, resolveWarnings := resolveDirectLines(Aggregate(sales, quotations, input.Selection.Mode), resolver)
	warnings = append(warnings, resolveWarnings...)

	lines := make([]entities.DemandLine, 0, len(parents)+len(direct))
	lines = append(lines, parents...)
	lines = append(lines, direct...)

	rows := Rank(ClassifyAll(lines, stock))

	return &dto.AnalysisResult{
		Rows:            rows,
		Summary:         Summarize(rows),
		Recommendations: Recommend(rows),
		Warnings:        warnings,
	}, nil
}

// resolveDirectLines replaces source-provided display fields with catalog
// ones. Unresolved materials keep their line with a fallback name.
func resolveDirectLines(
	set *DemandSet,
	resolver *services.ProductResolver,
) ([]entities.DemandLine, []entities.Warning) {
	lines := set.Lines()
	var warnings []entities.Warning

	for i := range lines {
		product, err := resolver.ResolveID(lines[i].MaterialID)
		if err != nil {
			lines[i].MaterialName = entities.UnknownMaterialName
			lines[i].Resolved = false
			warnings = append(warnings, entities.Warning{
				Code:     entities.WarningMaterialUnresolved,
				SourceID: lines[i].Sources[0].SourceID,
				Message:  fmt.Sprintf("material %s is not in the product catalog", lines[i].MaterialID),
			})
			continue
		}

		lines[i].MaterialName = product.Name
		lines[i].MaterialCode = product.Code
		lines[i].Unit = product.Unit
		lines[i].Resolved = true
	}

	return lines, warnings
}
