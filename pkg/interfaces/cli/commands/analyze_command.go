package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vsinha/mrpanalysis/pkg/application/services/orchestration"
	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
	"github.com/vsinha/mrpanalysis/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/mrpanalysis/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/mrpanalysis/pkg/interfaces/cli/output"
)

// Config holds configuration for the analyze command
type Config struct {
	ScenarioDir  string
	SaleIDs      string
	QuotationIDs string
	Mode         string
	All          bool
	OutputDir    string
	Format       string
	Verbose      bool
	Help         bool
}

// AnalyzeCommand runs one analysis over a scenario directory
type AnalyzeCommand struct {
	config Config
}

// NewAnalyzeCommand creates a new analyze command with the given configuration
func NewAnalyzeCommand(config Config) *AnalyzeCommand {
	return &AnalyzeCommand{
		config: config,
	}
}

// Execute runs the analyze command
func (c *AnalyzeCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	mode, err := entities.ParseSourceMode(c.config.Mode)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if c.config.Verbose {
		c.printHeader()
		fmt.Println("📂 Loading data from CSV files...")
	}

	scenario, err := csv.NewLoader().LoadScenario(c.config.ScenarioDir)
	if err != nil {
		return fmt.Errorf("error loading scenario: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("✅ Data loaded successfully:\n")
		fmt.Printf("  Products: %d\n", len(scenario.Products))
		fmt.Printf("  BOMs: %d\n", len(scenario.BOMs))
		fmt.Printf("  Sales: %d\n", len(scenario.Sales))
		fmt.Printf("  Quotations: %d\n", len(scenario.Quotations))
		fmt.Println()
	}

	store := memory.NewStore()
	if err := store.Load(scenario.Products, scenario.BOMs, scenario.Sales, scenario.Quotations); err != nil {
		return fmt.Errorf("failed to load scenario into repositories: %w", err)
	}

	orchestrator := orchestration.NewAnalysisOrchestrator(store.Products, store.BOMs, store.Sales, store.Quotations)

	if c.config.Verbose {
		fmt.Println("🔍 Validating BOM definitions...")
		validation, err := orchestrator.ValidateBOMs(ctx)
		if err != nil {
			return fmt.Errorf("failed to validate BOMs: %w", err)
		}
		for _, problem := range validation.Errors {
			fmt.Printf("  ❌ %s\n", problem)
		}
		for _, warning := range validation.Warnings {
			fmt.Printf("  ⚠️  %s\n", warning)
		}
		if validation.IsValid() && len(validation.Warnings) == 0 {
			fmt.Println("✅ BOM validation passed")
		}
		fmt.Println()
	}

	selection, err := c.resolveSelection(ctx, orchestrator, scenario, mode)
	if err != nil {
		return err
	}

	if c.config.Verbose {
		fmt.Printf("🔄 Analyzing %d sales and %d quotations (%s)...\n",
			len(selection.SaleIDs), len(selection.QuotationIDs), selection.Mode)
	}

	startTime := time.Now()
	run, err := orchestrator.Analyze(ctx, selection)
	analysisTime := time.Since(startTime)
	if err != nil {
		return fmt.Errorf("error running analysis: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("✅ Analysis %s completed in %v\n\n", run.ID, analysisTime)
	}

	outputConfig := output.Config{
		Format:       c.config.Format,
		OutputDir:    c.config.OutputDir,
		Verbose:      c.config.Verbose,
		AnalysisTime: analysisTime,
		InputFiles:   c.inputFiles(),
	}

	if err := output.Generate(run, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	if c.config.Verbose {
		fmt.Println("🏁 MRP analysis complete!")
	}

	return nil
}

// resolveSelection picks ids from flags first, then the scenario's
// selection file, then every active source when -all is set
func (c *AnalyzeCommand) resolveSelection(
	ctx context.Context,
	orchestrator *orchestration.AnalysisOrchestrator,
	scenario *csv.Scenario,
	mode entities.SourceMode,
) (entities.Selection, error) {
	if c.config.SaleIDs != "" || c.config.QuotationIDs != "" {
		return entities.Selection{
			SaleIDs:      splitIDs(c.config.SaleIDs),
			QuotationIDs: splitIDs(c.config.QuotationIDs),
			Mode:         mode,
		}, nil
	}

	if scenario.HasSelection {
		selection := scenario.Selection
		if c.config.Mode != "" {
			selection.Mode = mode
		}
		return selection, nil
	}

	if !c.config.All {
		return entities.Selection{Mode: mode}, nil
	}

	candidates, err := orchestrator.Candidates(ctx)
	if err != nil {
		return entities.Selection{}, fmt.Errorf("failed to list candidates: %w", err)
	}
	selection := entities.Selection{Mode: mode}
	for _, sale := range candidates.Sales {
		selection.SaleIDs = append(selection.SaleIDs, sale.ID)
	}
	for _, quotation := range candidates.Quotations {
		selection.QuotationIDs = append(selection.QuotationIDs, quotation.ID)
	}
	return selection, nil
}

func splitIDs(list string) []string {
	var ids []string
	for _, id := range strings.Split(list, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func (c *AnalyzeCommand) validateInputs() error {
	if c.config.ScenarioDir == "" {
		return fmt.Errorf("must specify -scenario directory")
	}
	info, err := os.Stat(c.config.ScenarioDir)
	if err != nil {
		return fmt.Errorf("scenario directory not found: %s", c.config.ScenarioDir)
	}
	if !info.IsDir() {
		return fmt.Errorf("scenario path is not a directory: %s", c.config.ScenarioDir)
	}
	return nil
}

func (c *AnalyzeCommand) inputFiles() map[string]string {
	return map[string]string{
		"Products":   filepath.Join(c.config.ScenarioDir, csv.ProductsFile),
		"BOMs":       filepath.Join(c.config.ScenarioDir, csv.BOMsFile),
		"Sales":      filepath.Join(c.config.ScenarioDir, csv.SalesFile),
		"Quotations": filepath.Join(c.config.ScenarioDir, csv.QuotationsFile),
	}
}

func (c *AnalyzeCommand) printHeader() {
	files := c.inputFiles()
	fmt.Printf("🚀 MRP Analysis CLI\n")
	fmt.Printf("Input files:\n")
	fmt.Printf("  Products: %s\n", files["Products"])
	fmt.Printf("  BOMs: %s\n", files["BOMs"])
	fmt.Printf("  Sales: %s\n", files["Sales"])
	fmt.Printf("  Quotations: %s\n", files["Quotations"])
	fmt.Printf("Output format: %s\n", c.config.Format)
	if c.config.OutputDir != "" {
		fmt.Printf("Output directory: %s\n", c.config.OutputDir)
	}
	fmt.Println()
}

func (c *AnalyzeCommand) showHelp() {
	fmt.Printf(`MRP Analysis CLI - material shortage analysis over sales and quotations

USAGE:
    mrp analyze -scenario <directory> [options]

OPTIONS:
    -scenario <dir>     Path to scenario directory containing CSV files
    -sales <ids>        Comma-separated sale ids to analyze
    -quotes <ids>       Comma-separated quotation ids to analyze
    -mode <mode>        Source mode: BOTH, SALES_ONLY, QUOTES_ONLY (default: BOTH)
    -all                Analyze every active sale and quotation
    -output <dir>       Output directory for results (optional)
    -format <fmt>       Output format: text, json, csv, xlsx (default: text)
    -verbose            Enable verbose output
    -help               Show this help message

Selection precedence: -sales/-quotes, then selection.yaml, then -all.

SCENARIO DIRECTORY STRUCTURE:
    scenario_name/
    ├── products.csv    # Product catalog with stock on hand
    ├── boms.csv        # BOM definitions, one row per component (optional)
    ├── sales.csv       # Sales orders (optional)
    ├── quotations.csv  # Quotations, one row per item (optional)
    └── selection.yaml  # Default selection (optional)

CSV FILE FORMATS:

products.csv:
    id,code,name,unit,quantity,price,cost
    P-100,GB-01,Gearbox,EA,4,1200,800

boms.csv:
    bom_id,product_name,product_code,component_id,quantity_per_unit,unit
    BOM-1,Gearbox,GB-01,P-200,3,EA

sales.csv:
    id,customer_name,product_id,product_name,quantity,unit_price,is_bom_product,bom_id,status
    S-1,Acme,P-100,Gearbox,2,1500,true,BOM-1,PENDING

quotations.csv:
    quotation_id,number,customer_name,status,product_id,product_name,quantity,unit_price
    Q-1,TKL-0001,Globex,DRAFT,P-200,Shaft,10,40

selection.yaml:
    mode: BOTH
    sales: [S-1]
    quotations: [Q-1]

EXAMPLES:
    # Analyze the scenario's default selection
    mrp analyze -scenario examples/workshop -verbose

    # Analyze two sales only
    mrp analyze -scenario examples/workshop -sales S-1,S-2 -mode SALES_ONLY

    # Export every active source to a workbook
    mrp analyze -scenario examples/workshop -all -format xlsx -output results/
`)
}
