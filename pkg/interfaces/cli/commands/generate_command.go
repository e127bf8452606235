package commands

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
	"github.com/vsinha/mrpanalysis/pkg/infrastructure/repositories/csv"
)

// GenerateConfig holds configuration for scenario generation
type GenerateConfig struct {
	Materials     int     // Number of purchasable materials
	Assemblies    int     // Number of BOM-backed assemblies
	MaxComponents int     // Upper bound of components per assembly
	Sales         int     // Number of sales orders
	Quotations    int     // Number of quotations
	BOMSaleRatio  float64 // Share of sales that sell an assembly
	Stock         float64 // Stock multiplier (e.g., 0.5 = half coverage, 2.0 = double coverage)
	OutputDir     string  // Output directory for generated files
	Seed          int64   // Random seed for reproducible generation
	Help          bool    // Show help
	Verbose       bool    // Verbose output
}

// GenerateCommand handles scenario generation
type GenerateCommand struct {
	config GenerateConfig
	rand   *rand.Rand
}

// NewGenerateCommand creates a new generate command
func NewGenerateCommand(config GenerateConfig) *GenerateCommand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &GenerateCommand{
		config: config,
		rand:   rand.New(rand.NewSource(seed)),
	}
}

var (
	materialNames = []string{"Shaft", "Bearing", "Bolt", "Gasket", "Housing", "Spring", "Bracket", "Seal", "Washer", "Pin"}
	assemblyNames = []string{"Gearbox", "Pump", "Valve", "Motor", "Actuator", "Compressor"}
	customers     = []string{"Acme", "Globex", "Initech", "Umbrella", "Hooli", "Stark", "Wayne", "Tyrell"}
)

// Execute runs the generate command
func (cmd *GenerateCommand) Execute(ctx context.Context) error {
	if cmd.config.Help {
		cmd.printHelp()
		return nil
	}

	if err := cmd.validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if cmd.config.Verbose {
		fmt.Printf(
			"🔧 Generating scenario with %d materials, %d assemblies, %d sales, %d quotations, %.1fx stock\n",
			cmd.config.Materials,
			cmd.config.Assemblies,
			cmd.config.Sales,
			cmd.config.Quotations,
			cmd.config.Stock,
		)
		fmt.Printf("📁 Output directory: %s\n", cmd.config.OutputDir)
		fmt.Printf("🎲 Random seed: %d\n", cmd.config.Seed)
	}

	scenario := &csv.Scenario{}

	if cmd.config.Verbose {
		fmt.Println("📦 Generating products...")
	}
	materials, assemblies := cmd.generateProducts()
	scenario.Products = append(append(scenario.Products, materials...), assemblies...)

	if cmd.config.Verbose {
		fmt.Println("🌳 Generating BOM definitions...")
	}
	boms, err := cmd.generateBOMs(materials, assemblies)
	if err != nil {
		return fmt.Errorf("failed to generate BOMs: %w", err)
	}
	scenario.BOMs = boms

	if cmd.config.Verbose {
		fmt.Println("📋 Generating sales and quotations...")
	}
	scenario.Sales = cmd.generateSales(materials, assemblies, boms)
	scenario.Quotations = cmd.generateQuotations(materials)

	if cmd.config.Verbose {
		fmt.Println("📦 Sizing stock against demand...")
	}
	cmd.assignStock(scenario)

	scenario.Selection = selectActive(scenario)
	scenario.HasSelection = true

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := csv.NewWriter().WriteScenario(cmd.config.OutputDir, scenario); err != nil {
		return fmt.Errorf("failed to write scenario: %w", err)
	}

	if cmd.config.Verbose {
		fmt.Printf("✅ Scenario written to %s\n", cmd.config.OutputDir)
	}
	return nil
}

func (cmd *GenerateCommand) validate() error {
	switch {
	case cmd.config.OutputDir == "":
		return fmt.Errorf("--output is required")
	case cmd.config.Materials <= 0:
		return fmt.Errorf("--materials must be positive")
	case cmd.config.Assemblies < 0 || cmd.config.Sales < 0 || cmd.config.Quotations < 0:
		return fmt.Errorf("counts cannot be negative")
	case cmd.config.BOMSaleRatio < 0 || cmd.config.BOMSaleRatio > 1:
		return fmt.Errorf("--bom-ratio must be between 0 and 1")
	case cmd.config.Stock < 0:
		return fmt.Errorf("--stock cannot be negative")
	}
	if cmd.config.MaxComponents <= 0 {
		cmd.config.MaxComponents = 4
	}
	return nil
}

func (cmd *GenerateCommand) generateProducts() ([]*entities.Product, []*entities.Product) {
	materials := make([]*entities.Product, 0, cmd.config.Materials)
	for i := 1; i <= cmd.config.Materials; i++ {
		name := fmt.Sprintf("%s %d", materialNames[cmd.rand.Intn(len(materialNames))], i)
		materials = append(materials, cmd.newProduct(fmt.Sprintf("M-%04d", i), fmt.Sprintf("MAT-%04d", i), name))
	}

	assemblies := make([]*entities.Product, 0, cmd.config.Assemblies)
	for i := 1; i <= cmd.config.Assemblies; i++ {
		name := fmt.Sprintf("%s %d", assemblyNames[cmd.rand.Intn(len(assemblyNames))], i)
		assemblies = append(assemblies, cmd.newProduct(fmt.Sprintf("A-%04d", i), fmt.Sprintf("ASM-%04d", i), name))
	}
	return materials, assemblies
}

func (cmd *GenerateCommand) newProduct(id, code, name string) *entities.Product {
	cost := decimal.NewFromInt(int64(5 + cmd.rand.Intn(500)))
	return &entities.Product{
		ID:        id,
		Code:      code,
		Name:      name,
		Unit:      "EA",
		UnitCost:  entities.NewMoney(cost),
		UnitPrice: entities.NewMoney(cost).Mul(decimal.NewFromFloat(1.4)).Round(2),
	}
}

// generateBOMs gives every assembly one definition that names its parent by
// code and name, over distinct materials
func (cmd *GenerateCommand) generateBOMs(materials, assemblies []*entities.Product) ([]*entities.BOMDefinition, error) {
	boms := make([]*entities.BOMDefinition, 0, len(assemblies))
	for i, assembly := range assemblies {
		count := 1 + cmd.rand.Intn(cmd.config.MaxComponents)
		if count > len(materials) {
			count = len(materials)
		}

		components := make([]entities.BOMComponent, 0, count)
		for _, index := range cmd.rand.Perm(len(materials))[:count] {
			component, err := entities.NewBOMComponent(materials[index].ID, entities.NewQuantity(int64(1+cmd.rand.Intn(4))), "EA")
			if err != nil {
				return nil, err
			}
			component.ProductName = materials[index].Name
			components = append(components, *component)
		}

		bom, err := entities.NewBOMDefinition(fmt.Sprintf("BOM-%04d", i+1), assembly.Name, assembly.Code, components)
		if err != nil {
			return nil, err
		}
		boms = append(boms, bom)
	}
	return boms, nil
}

func (cmd *GenerateCommand) generateSales(materials, assemblies []*entities.Product, boms []*entities.BOMDefinition) []*entities.Sale {
	sales := make([]*entities.Sale, 0, cmd.config.Sales)
	now := time.Now().UTC().Truncate(time.Second)

	for i := 1; i <= cmd.config.Sales; i++ {
		sale := &entities.Sale{
			ID:           fmt.Sprintf("S-%04d", i),
			CustomerName: customers[cmd.rand.Intn(len(customers))],
			Quantity:     entities.NewQuantity(int64(1 + cmd.rand.Intn(20))),
			Status:       cmd.saleStatus(),
			CreatedAt:    now.Add(-time.Duration(cmd.rand.Intn(720)) * time.Hour),
		}

		var product *entities.Product
		if len(assemblies) > 0 && cmd.rand.Float64() < cmd.config.BOMSaleRatio {
			index := cmd.rand.Intn(len(assemblies))
			product = assemblies[index]
			sale.IsBOMProduct = true
			sale.BOMID = boms[index].ID
		} else {
			product = materials[cmd.rand.Intn(len(materials))]
		}
		sale.ProductID = product.ID
		sale.ProductName = product.Name
		sale.UnitPrice = product.UnitPrice

		sales = append(sales, sale)
	}
	return sales
}

func (cmd *GenerateCommand) saleStatus() entities.SaleStatus {
	switch roll := cmd.rand.Intn(10); {
	case roll == 0:
		return entities.SaleCancelled
	case roll == 1:
		return entities.SaleShipped
	default:
		return entities.SalePending
	}
}

func (cmd *GenerateCommand) generateQuotations(materials []*entities.Product) []*entities.Quotation {
	statuses := []entities.QuotationStatus{
		entities.QuotationDraft,
		entities.QuotationSent,
		entities.QuotationApproved,
		entities.QuotationRejected,
		entities.QuotationConverted,
	}

	quotations := make([]*entities.Quotation, 0, cmd.config.Quotations)
	for i := 1; i <= cmd.config.Quotations; i++ {
		quotation := &entities.Quotation{
			ID:           fmt.Sprintf("Q-%04d", i),
			Number:       fmt.Sprintf("TKL-%04d", i),
			CustomerName: customers[cmd.rand.Intn(len(customers))],
			Status:       statuses[cmd.rand.Intn(len(statuses))],
		}

		items := 1 + cmd.rand.Intn(3)
		for j := 0; j < items; j++ {
			product := materials[cmd.rand.Intn(len(materials))]
			quotation.Items = append(quotation.Items, entities.QuotationItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    entities.NewQuantity(int64(1 + cmd.rand.Intn(30))),
				UnitPrice:   product.UnitPrice,
			})
		}
		quotations = append(quotations, quotation)
	}
	return quotations
}

// assignStock sets each product's stock to its total generated demand
// scaled by the stock multiplier with some jitter
func (cmd *GenerateCommand) assignStock(scenario *csv.Scenario) {
	demand := make(map[string]float64)
	bomsByID := make(map[string]*entities.BOMDefinition, len(scenario.BOMs))
	for _, bom := range scenario.BOMs {
		bomsByID[bom.ID] = bom
	}

	for _, sale := range scenario.Sales {
		quantity := sale.Quantity.Float64()
		demand[sale.ProductID] += quantity
		if bom, ok := bomsByID[sale.BOMID]; ok && sale.IsBOMProduct {
			for _, component := range bom.Components {
				demand[component.ProductID] += quantity * component.QuantityPerUnit.Float64()
			}
		}
	}
	for _, quotation := range scenario.Quotations {
		for _, item := range quotation.Items {
			demand[item.ProductID] += item.Quantity.Float64()
		}
	}

	for _, product := range scenario.Products {
		jitter := 0.75 + cmd.rand.Float64()*0.5
		product.Quantity = entities.NewQuantity(int64(demand[product.ID] * cmd.config.Stock * jitter))
	}
}

func selectActive(scenario *csv.Scenario) entities.Selection {
	selection := entities.Selection{Mode: entities.ModeBoth}
	for _, sale := range scenario.Sales {
		if sale.IsActive() {
			selection.SaleIDs = append(selection.SaleIDs, sale.ID)
		}
	}
	for _, quotation := range scenario.Quotations {
		if quotation.IsActive() {
			selection.QuotationIDs = append(selection.QuotationIDs, quotation.ID)
		}
	}
	return selection
}

// printHelp shows usage information
func (cmd *GenerateCommand) printHelp() {
	fmt.Println(`MRP Scenario Generator

USAGE:
    mrp generate [OPTIONS]

OPTIONS:
    --materials <N>       Number of purchasable materials (required)
    --assemblies <N>      Number of BOM-backed assemblies (default: 0)
    --max-components <N>  Maximum components per assembly (default: 4)
    --sales <N>           Number of sales orders (default: 0)
    --quotations <N>      Number of quotations (default: 0)
    --bom-ratio <F>       Share of sales that sell an assembly, 0 to 1 (default: 0.3)
    --stock <F>           Stock multiplier (e.g., 0.5 = half coverage, 2.0 = double coverage) (default: 1.0)
    --output <DIR>        Output directory for generated files (required)
    --seed <N>            Random seed for reproducible generation (optional)
    --verbose             Enable verbose output
    --help                Show this help message

EXAMPLES:
    # Generate small test scenario
    mrp generate --materials 20 --assemblies 3 --sales 10 --quotations 5 --output ./test_scenario

    # Generate a short-stocked scenario
    mrp generate --materials 500 --assemblies 40 --sales 300 --quotations 100 --stock 0.6 --output ./tight --verbose

    # Generate reproducible scenario
    mrp generate --materials 100 --assemblies 10 --sales 50 --output ./repro_scenario --seed 12345`)
}
