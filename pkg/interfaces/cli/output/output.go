package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/vsinha/mrpanalysis/pkg/application/dto"
	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format       string
	OutputDir    string
	Verbose      bool
	AnalysisTime time.Duration
	InputFiles   map[string]string
}

// Output file names
const (
	TextFile            = "mrp_analysis.txt"
	JSONFile            = "mrp_analysis.json"
	RowsCSVFile         = "analysis_rows.csv"
	RecommendationsFile = "recommendations.csv"
	WarningsCSVFile     = "warnings.csv"
	WorkbookFile        = "mrp_analysis.xlsx"
)

// Generate creates output in the specified format
func Generate(run *dto.AnalysisRun, config Config) error {
	switch config.Format {
	case "", "text":
		return generateTextOutput(run, config)
	case "json":
		return generateJSONOutput(run, config)
	case "csv":
		return generateCSVOutput(run.Result, config)
	case "xlsx":
		return generateXLSXOutput(run.Result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

func generateTextOutput(run *dto.AnalysisRun, config Config) error {
	if err := WriteText(os.Stdout, run.Result, config.AnalysisTime); err != nil {
		return err
	}

	if config.OutputDir == "" {
		return nil
	}
	filename, err := createOutputFile(config.OutputDir, TextFile, func(w io.Writer) error {
		return WriteText(w, run.Result, config.AnalysisTime)
	})
	if err != nil {
		return err
	}
	if config.Verbose {
		fmt.Printf("💾 Results saved to: %s\n", filename)
	}
	return nil
}

// WriteText renders a human-readable report
func WriteText(w io.Writer, result *dto.AnalysisResult, elapsed time.Duration) error {
	summary := result.Summary

	fmt.Fprintf(w, "📊 MRP Analysis Summary\n")
	fmt.Fprintf(w, "=======================\n\n")
	fmt.Fprintf(w, "Materials:    %d\n", summary.Total)
	fmt.Fprintf(w, "Shortages:    %d\n", summary.ShortageCount)
	fmt.Fprintf(w, "Sufficient:   %d\n", summary.SufficientCount)
	fmt.Fprintf(w, "Total Needed: %s\n", summary.TotalNeeded)
	if elapsed > 0 {
		fmt.Fprintf(w, "Analysis Time: %v\n", elapsed)
	}
	fmt.Fprintln(w)

	if len(result.Rows) > 0 {
		fmt.Fprintf(w, "📋 Materials:\n")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "Material\tCode\tNeeded\tStock\tDifference\tStatus\tSources")
		fmt.Fprintln(tw, "--------\t----\t------\t-----\t----------\t------\t-------")
		for _, row := range result.Rows {
			writeTextRow(tw, row, "")
			for _, child := range row.Children {
				writeTextRow(tw, child, "  └ ")
			}
		}
		if err := tw.Flush(); err != nil {
			return fmt.Errorf("failed to write table: %w", err)
		}
		fmt.Fprintln(w)
	}

	if len(result.Recommendations) > 0 {
		fmt.Fprintf(w, "🛠️  Recommendations:\n")
		for _, rec := range result.Recommendations {
			fmt.Fprintf(w, "  • %s [%s]\n", rec.Message, actionList(rec.Actions))
		}
		fmt.Fprintln(w)
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintf(w, "⚠️  Warnings:\n")
		for _, warning := range result.Warnings {
			fmt.Fprintf(w, "  • %s: %s\n", warning.Code, warning.Message)
		}
		fmt.Fprintln(w)
	}

	return nil
}

func writeTextRow(w io.Writer, row entities.AnalysisRow, prefix string) {
	name := prefix + row.MaterialName
	if row.IsBOMParent {
		name += " [BOM " + row.BOMID + "]"
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		name,
		row.MaterialCode,
		row.Needed,
		row.Stock,
		row.Difference,
		row.Status,
		sourceList(row.Sources))
}

func sourceList(sources []entities.Provenance) string {
	parts := make([]string, 0, len(sources))
	for _, source := range sources {
		parts = append(parts, fmt.Sprintf("%s %s (%s)", source.Type, source.Label, source.Quantity))
	}
	return strings.Join(parts, "; ")
}

func actionList(actions []entities.Action) string {
	parts := make([]string, 0, len(actions))
	for _, action := range actions {
		parts = append(parts, action.Type.String())
	}
	return strings.Join(parts, " | ")
}

func generateJSONOutput(run *dto.AnalysisRun, config Config) error {
	if config.OutputDir == "" {
		return WriteJSON(os.Stdout, run)
	}

	filename, err := createOutputFile(config.OutputDir, JSONFile, func(w io.Writer) error {
		return WriteJSON(w, run)
	})
	if err != nil {
		return err
	}
	if config.Verbose {
		fmt.Printf("💾 JSON results saved to: %s\n", filename)
	}
	return nil
}

// WriteJSON writes the run as indented JSON
func WriteJSON(w io.Writer, run *dto.AnalysisRun) error {
	jsonData, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if _, err := w.Write(append(jsonData, '\n')); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

func createOutputFile(dir, name string, write func(io.Writer) error) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := filepath.Join(dir, name)
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer file.Close()

	if err := write(file); err != nil {
		return "", err
	}
	return filename, nil
}
