package analysis

import (
	"fmt"

	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
)

// Recommend emits one recommendation per shortage row, children included.
// A child's recommendation follows its parent's.
func Recommend(rows []entities.AnalysisRow) []entities.Recommendation {
	recommendations := make([]entities.Recommendation, 0)

	for _, row := range rows {
		if row.IsShortage() {
			recommendations = append(recommendations, recommendationFor(row))
		}
		for _, child := range row.Children {
			if child.IsShortage() {
				recommendations = append(recommendations, recommendationFor(child))
			}
		}
	}

	return recommendations
}

func recommendationFor(row entities.AnalysisRow) entities.Recommendation {
	quantity := row.Difference.Abs()

	orderType := entities.Buy
	actions := []entities.Action{
		{Type: entities.ActionOpenPurchasing},
		{Type: entities.ActionOpenWorkOrder},
	}
	if row.IsBOMParent {
		orderType = entities.Make
		actions = []entities.Action{
			{Type: entities.ActionOpenProduction, BOMID: row.BOMID, Quantity: quantity},
		}
	}

	return entities.Recommendation{
		MaterialID:   row.MaterialID,
		MaterialName: row.MaterialName,
		MaterialCode: row.MaterialCode,
		Quantity:     quantity,
		OrderType:    orderType,
		Message:      recommendationMessage(row, quantity, orderType),
		Actions:      actions,
		Sources:      row.Sources,
		IsBOMChild:   row.IsBOMChild,
		BOMID:        row.BOMID,
	}
}

func recommendationMessage(row entities.AnalysisRow, quantity entities.Quantity, orderType entities.OrderType) string {
	// the code marker is always rendered, even when empty
	return fmt.Sprintf("%s units of %s (#%s) require %s.", quantity, row.MaterialName, row.MaterialCode, orderType.Wording())
}
