package analysis

import "github.com/vsinha/mrpanalysis/pkg/domain/entities"

// Classify reconciles a demand line against the stock snapshot.
// Children are classified independently of their parent.
func Classify(line entities.DemandLine, stock entities.StockSnapshot) entities.AnalysisRow {
	onHand := stock.Lookup(line.MaterialID)
	difference := onHand.Sub(line.Needed)

	row := entities.AnalysisRow{
		MaterialID:   line.MaterialID,
		MaterialName: line.MaterialName,
		MaterialCode: line.MaterialCode,
		Unit:         line.Unit,
		Needed:       line.Needed,
		Stock:        onHand,
		Difference:   difference,
		Status:       entities.StatusForDifference(difference),
		Sources:      line.Sources,
		IsBOMParent:  line.IsBOMParent,
		IsBOMChild:   line.IsBOMChild,
		BOMID:        line.BOMID,
		Resolved:     line.Resolved,
	}

	if line.IsBOMParent {
		row.Children = make([]entities.AnalysisRow, 0, len(line.Children))
		for _, child := range line.Children {
			row.Children = append(row.Children, Classify(child, stock))
		}
	}

	return row
}

// ClassifyAll classifies every line, preserving order
func ClassifyAll(lines []entities.DemandLine, stock entities.StockSnapshot) []entities.AnalysisRow {
	rows := make([]entities.AnalysisRow, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, Classify(line, stock))
	}
	return rows
}
