package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/vsinha/mrpanalysis/pkg/application/dto"
	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
)

// Workbook sheet names
const (
	AnalysisSheet        = "Analysis"
	RecommendationsSheet = "Recommendations"
	WarningsSheet        = "Warnings"
)

var statusFills = map[entities.CoverageStatus]string{
	entities.Sufficient: "#E2EFDA",
	entities.Borderline: "#FFF2CC",
	entities.Shortage:   "#F8CBAD",
}

func generateXLSXOutput(result *dto.AnalysisResult, config Config) error {
	dir := config.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := BuildWorkbook(result)
	if err != nil {
		return err
	}
	defer f.Close()

	filename := filepath.Join(dir, WorkbookFile)
	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	if config.Verbose {
		fmt.Printf("💾 Workbook saved to: %s\n", filename)
	}
	return nil
}

// BuildWorkbook lays the analysis out over Analysis, Recommendations and Warnings sheets
func BuildWorkbook(result *dto.AnalysisResult) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", AnalysisSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	for _, sheet := range []string{RecommendationsSheet, WarningsSheet} {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	statusStyles := make(map[entities.CoverageStatus]int, len(statusFills))
	for status, color := range statusFills {
		style, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create status style: %w", err)
		}
		statusStyles[status] = style
	}

	// Analysis
	writeHeader(f, AnalysisSheet, rowsHeader[:len(rowsHeader)-1], headerStyle)
	row := 2
	for _, parent := range result.Rows {
		lines := append([]entities.AnalysisRow{parent}, parent.Children...)
		for _, line := range lines {
			values := []interface{}{
				line.MaterialID,
				line.MaterialName,
				line.MaterialCode,
				line.Unit,
				line.Needed.Float64(),
				line.Stock.Float64(),
				line.Difference.Float64(),
				line.Status.String(),
				line.IsBOMParent,
				line.IsBOMChild,
				line.BOMID,
			}
			if err := setRow(f, AnalysisSheet, row, values); err != nil {
				return nil, err
			}
			statusCell, _ := excelize.CoordinatesToCellName(8, row)
			if err := f.SetCellStyle(AnalysisSheet, statusCell, statusCell, statusStyles[line.Status]); err != nil {
				return nil, fmt.Errorf("failed to style status cell: %w", err)
			}
			row++
		}
	}

	summaryRow := row + 1
	summary := result.Summary
	if err := setRow(f, AnalysisSheet, summaryRow, []interface{}{
		"Total", summary.Total, "Shortages", summary.ShortageCount,
		"Sufficient", summary.SufficientCount, "Total needed", summary.TotalNeeded.Float64(),
	}); err != nil {
		return nil, err
	}

	// Recommendations
	writeHeader(f, RecommendationsSheet, recommendationsHeader, headerStyle)
	for i, rec := range result.Recommendations {
		if err := setRow(f, RecommendationsSheet, i+2, []interface{}{
			rec.MaterialID,
			rec.MaterialName,
			rec.MaterialCode,
			rec.Quantity.Float64(),
			rec.OrderType.String(),
			actionList(rec.Actions),
			rec.BOMID,
			rec.Message,
		}); err != nil {
			return nil, err
		}
	}

	// Warnings
	writeHeader(f, WarningsSheet, warningsHeader, headerStyle)
	for i, warning := range result.Warnings {
		if err := setRow(f, WarningsSheet, i+2, []interface{}{
			warning.Code.String(), warning.SourceID, warning.BOMID, warning.Message,
		}); err != nil {
			return nil, err
		}
	}

	widths := []float64{14, 28, 14, 8, 12, 12, 12, 14, 12, 12, 12}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(AnalysisSheet, col, col, w)
	}
	_ = f.SetColWidth(RecommendationsSheet, "H", "H", 60)

	f.SetActiveSheet(0)
	return f, nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
		_ = f.SetCellStyle(sheet, cell, cell, style)
	}
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("invalid row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}
