package main

import (
	"context"
	"fmt"
	"os"

	"github.com/vsinha/mrpanalysis/pkg/application/dto"
	"github.com/vsinha/mrpanalysis/pkg/application/services/analysis"
	"github.com/vsinha/mrpanalysis/pkg/application/services/remediation"
	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
	"github.com/vsinha/mrpanalysis/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/mrpanalysis/pkg/interfaces/cli/output"
)

func main() {
	ctx := context.Background()

	input := workshopInput()

	fmt.Println("🚀 Running shortage analysis for the gearbox workshop...")
	fmt.Printf("Selected: %d sales, %d quotations\n\n",
		len(input.Selection.SaleIDs), len(input.Selection.QuotationIDs))

	result, err := analysis.RunMRPAnalysis(input)
	if err != nil {
		fmt.Printf("❌ Analysis failed: %v\n", err)
		return
	}

	if err := output.WriteText(os.Stdout, result, 0); err != nil {
		fmt.Printf("❌ Failed to render report: %v\n", err)
		return
	}

	// Act on the first production recommendation
	store := memory.NewStore()
	boms := make([]*entities.BOMDefinition, len(input.BOMs))
	for i := range input.BOMs {
		boms[i] = &input.BOMs[i]
	}
	if err := store.BOMs.LoadBOMs(boms); err != nil {
		fmt.Printf("❌ Failed to load BOMs: %v\n", err)
		return
	}
	service := remediation.NewService(remediation.NewDefaultHandler(store.BOMs, store.Products, store.WorkOrders))

	for _, rec := range result.Recommendations {
		if rec.OrderType != entities.Make {
			continue
		}
		outcome, err := service.Execute(ctx, rec.Actions[0])
		if err != nil {
			fmt.Printf("❌ Remediation failed: %v\n", err)
			return
		}
		fmt.Printf("🏭 Opened work order %s: %s x %s (navigate to %s)\n",
			outcome.WorkOrder.ID, outcome.WorkOrder.ProductName, outcome.WorkOrder.Quantity, outcome.Target)
		break
	}
}

func workshopInput() dto.AnalysisInput {
	product := func(id, code, name string, stock int64) entities.Product {
		p, err := entities.NewProduct(id, code, name, "EA", entities.NewQuantity(stock))
		if err != nil {
			panic(err)
		}
		return *p
	}

	shaft, _ := entities.NewBOMComponent("SH", entities.NewQuantity(2), "EA")
	bearing, _ := entities.NewBOMComponent("BR", entities.NewQuantity(4), "EA")
	gearbox, err := entities.NewBOMDefinition("BOM-GB", "Gearbox", "GB-01", []entities.BOMComponent{*shaft, *bearing})
	if err != nil {
		panic(err)
	}

	return dto.AnalysisInput{
		Products: []entities.Product{
			product("GB", "GB-01", "Gearbox", 1),
			product("SH", "SH-01", "Shaft", 5),
			product("BR", "BR-01", "Bearing", 30),
			product("GK", "GK-01", "Gasket", 10),
		},
		BOMs: []entities.BOMDefinition{*gearbox},
		Sales: []entities.Sale{
			{ID: "S-1", CustomerName: "Acme", ProductID: "GB", Quantity: entities.NewQuantity(4), IsBOMProduct: true, BOMID: "BOM-GB"},
			{ID: "S-2", CustomerName: "Globex", ProductID: "GK", Quantity: entities.NewQuantity(6)},
		},
		Quotations: []entities.Quotation{
			{ID: "Q-1", Number: "TKL-0001", CustomerName: "Initech", Items: []entities.QuotationItem{
				{ProductID: "GK", Quantity: entities.NewQuantity(4)},
				{ProductID: "SH", Quantity: entities.NewQuantity(1)},
			}},
		},
		Selection: entities.Selection{
			SaleIDs:      []string{"S-1", "S-2"},
			QuotationIDs: []string{"Q-1"},
		},
	}
}
