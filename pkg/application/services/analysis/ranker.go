package analysis

import (
	"sort"

	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
)

// Rank orders rows with BOM parents first, then by ascending difference so
// the worst shortages surface first. Ties keep their input order.
func Rank(rows []entities.AnalysisRow) []entities.AnalysisRow {
	ranked := make([]entities.AnalysisRow, len(rows))
	copy(ranked, rows)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].IsBOMParent != ranked[j].IsBOMParent {
			return ranked[i].IsBOMParent
		}
		return ranked[i].Difference.Cmp(ranked[j].Difference) < 0
	})

	return ranked
}

// Summarize tallies top-level rows. Borderline rows count as sufficient and
// children are excluded from every total.
func Summarize(rows []entities.AnalysisRow) entities.Summary {
	summary := entities.Summary{
		Total:       len(rows),
		TotalNeeded: entities.ZeroQuantity,
	}

	for _, row := range rows {
		if row.Difference.IsNegative() {
			summary.ShortageCount++
		} else {
			summary.SufficientCount++
		}
		summary.TotalNeeded = summary.TotalNeeded.Add(row.Needed)
	}

	return summary
}
