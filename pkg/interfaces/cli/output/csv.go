package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/vsinha/mrpanalysis/pkg/application/dto"
	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
)

var (
	rowsHeader            = []string{"material_id", "material_name", "material_code", "unit", "needed", "stock", "difference", "status", "is_bom_parent", "is_bom_child", "bom_id", "sources"}
	recommendationsHeader = []string{"material_id", "material_name", "material_code", "quantity", "order_type", "actions", "bom_id", "message"}
	warningsHeader        = []string{"code", "source_id", "bom_id", "message"}
)

func generateCSVOutput(result *dto.AnalysisResult, config Config) error {
	if config.OutputDir == "" {
		return WriteRowsCSV(os.Stdout, result.Rows)
	}

	rowsFile, err := createOutputFile(config.OutputDir, RowsCSVFile, func(w io.Writer) error {
		return WriteRowsCSV(w, result.Rows)
	})
	if err != nil {
		return fmt.Errorf("failed to write analysis rows CSV: %w", err)
	}

	recFile, err := createOutputFile(config.OutputDir, RecommendationsFile, func(w io.Writer) error {
		return WriteRecommendationsCSV(w, result.Recommendations)
	})
	if err != nil {
		return fmt.Errorf("failed to write recommendations CSV: %w", err)
	}

	warnFile, err := createOutputFile(config.OutputDir, WarningsCSVFile, func(w io.Writer) error {
		return WriteWarningsCSV(w, result.Warnings)
	})
	if err != nil {
		return fmt.Errorf("failed to write warnings CSV: %w", err)
	}

	if config.Verbose {
		fmt.Printf("💾 CSV results saved to:\n")
		fmt.Printf("  Rows: %s\n", rowsFile)
		fmt.Printf("  Recommendations: %s\n", recFile)
		fmt.Printf("  Warnings: %s\n", warnFile)
	}

	return nil
}

// WriteRowsCSV writes one record per row with children directly after their parent
func WriteRowsCSV(w io.Writer, rows []entities.AnalysisRow) error {
	return writeCSV(w, rowsHeader, flattenRows(rows, rowRecord))
}

// WriteRecommendationsCSV writes one record per recommendation
func WriteRecommendationsCSV(w io.Writer, recommendations []entities.Recommendation) error {
	records := make([][]string, 0, len(recommendations))
	for _, rec := range recommendations {
		records = append(records, []string{
			rec.MaterialID,
			rec.MaterialName,
			rec.MaterialCode,
			rec.Quantity.String(),
			rec.OrderType.String(),
			actionList(rec.Actions),
			rec.BOMID,
			rec.Message,
		})
	}
	return writeCSV(w, recommendationsHeader, records)
}

// WriteWarningsCSV writes one record per data-integrity warning
func WriteWarningsCSV(w io.Writer, warnings []entities.Warning) error {
	records := make([][]string, 0, len(warnings))
	for _, warning := range warnings {
		records = append(records, []string{warning.Code.String(), warning.SourceID, warning.BOMID, warning.Message})
	}
	return writeCSV(w, warningsHeader, records)
}

func flattenRows(rows []entities.AnalysisRow, record func(entities.AnalysisRow) []string) [][]string {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, record(row))
		for _, child := range row.Children {
			records = append(records, record(child))
		}
	}
	return records
}

func rowRecord(row entities.AnalysisRow) []string {
	return []string{
		row.MaterialID,
		row.MaterialName,
		row.MaterialCode,
		row.Unit,
		row.Needed.String(),
		row.Stock.String(),
		row.Difference.String(),
		row.Status.String(),
		fmt.Sprintf("%t", row.IsBOMParent),
		fmt.Sprintf("%t", row.IsBOMChild),
		row.BOMID,
		sourceList(row.Sources),
	}
}

func writeCSV(w io.Writer, header []string, records [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}
