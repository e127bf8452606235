package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/vsinha/mrpanalysis/pkg/interfaces/cli/commands"
)

type command interface {
	Execute(ctx context.Context) error
}

func main() {
	args := os.Args[1:]
	name := "analyze"
	if len(args) > 0 && (args[0] == "analyze" || args[0] == "generate") {
		name, args = args[0], args[1:]
	}

	var cmd command
	switch name {
	case "generate":
		cmd = parseGenerate(args)
	default:
		cmd = parseAnalyze(args)
	}

	if err := cmd.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseAnalyze(args []string) command {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	var (
		scenarioDir = fs.String("scenario", "", "Path to scenario directory containing CSV files")
		sales       = fs.String("sales", "", "Comma-separated sale ids to analyze")
		quotes      = fs.String("quotes", "", "Comma-separated quotation ids to analyze")
		mode        = fs.String("mode", "", "Source mode: BOTH, SALES_ONLY, QUOTES_ONLY")
		all         = fs.Bool("all", false, "Analyze every active sale and quotation")
		outputDir   = fs.String("output", "", "Output directory for results (optional)")
		format      = fs.String("format", "text", "Output format: text, json, csv, xlsx")
		verbose     = fs.Bool("verbose", false, "Enable verbose output")
		help        = fs.Bool("help", false, "Show help message")
	)
	_ = fs.Parse(args)

	return commands.NewAnalyzeCommand(commands.Config{
		ScenarioDir:  *scenarioDir,
		SaleIDs:      *sales,
		QuotationIDs: *quotes,
		Mode:         *mode,
		All:          *all,
		OutputDir:    *outputDir,
		Format:       *format,
		Verbose:      *verbose,
		Help:         *help,
	})
}

func parseGenerate(args []string) command {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	var (
		materials     = fs.Int("materials", 0, "Number of purchasable materials")
		assemblies    = fs.Int("assemblies", 0, "Number of BOM-backed assemblies")
		maxComponents = fs.Int("max-components", 4, "Maximum components per assembly")
		sales         = fs.Int("sales", 0, "Number of sales orders")
		quotations    = fs.Int("quotations", 0, "Number of quotations")
		bomRatio      = fs.Float64("bom-ratio", 0.3, "Share of sales that sell an assembly")
		stock         = fs.Float64("stock", 1.0, "Stock multiplier")
		outputDir     = fs.String("output", "", "Output directory for generated files")
		seed          = fs.Int64("seed", 0, "Random seed for reproducible generation")
		verbose       = fs.Bool("verbose", false, "Enable verbose output")
		help          = fs.Bool("help", false, "Show help message")
	)
	_ = fs.Parse(args)

	return commands.NewGenerateCommand(commands.GenerateConfig{
		Materials:     *materials,
		Assemblies:    *assemblies,
		MaxComponents: *maxComponents,
		Sales:         *sales,
		Quotations:    *quotations,
		BOMSaleRatio:  *bomRatio,
		Stock:         *stock,
		OutputDir:     *outputDir,
		Seed:          *seed,
		Verbose:       *verbose,
		Help:          *help,
	})
}
