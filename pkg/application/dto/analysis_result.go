package dto

import (
	"time"

	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
)

// AnalysisInput carries every collection one analysis run reads.
// Sales and quotations are expected to be pre-filtered to active records.
type AnalysisInput struct {
	Sales      []entities.Sale          `json:"sales"`
	Quotations []entities.Quotation     `json:"quotations"`
	Products   []entities.Product       `json:"products"`
	BOMs       []entities.BOMDefinition `json:"boms"`
	Selection  entities.Selection       `json:"selection"`
}

// AnalysisResult contains the complete output of an analysis run
type AnalysisResult struct {
	Rows            []entities.AnalysisRow    `json:"rows"`
	Summary         entities.Summary          `json:"summary"`
	Recommendations []entities.Recommendation `json:"recommendations"`
	Warnings        []entities.Warning        `json:"warnings"`
}

// Shortages returns the top-level rows currently short of stock
func (r *AnalysisResult) Shortages() []entities.AnalysisRow {
	shortages := make([]entities.AnalysisRow, 0)
	for _, row := range r.Rows {
		if row.IsShortage() {
			shortages = append(shortages, row)
		}
	}
	return shortages
}

// AnalysisRun wraps a result with the metadata of the run that produced it
type AnalysisRun struct {
	ID          string          `json:"id"`
	CompletedAt time.Time       `json:"completed_at"`
	Duration    time.Duration   `json:"duration_ns"`
	Result      *AnalysisResult `json:"result"`
}
