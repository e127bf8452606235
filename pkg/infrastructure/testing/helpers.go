package testing

import (
	"github.com/vsinha/mrpanalysis/pkg/application/dto"
	testhelpers "github.com/vsinha/mrpanalysis/pkg/application/services/testing"
	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
	"github.com/vsinha/mrpanalysis/pkg/infrastructure/repositories/memory"
)

// BuildStore loads an analysis input into fresh memory repositories.
// The input's selection is not stored.
func BuildStore(input dto.AnalysisInput) *memory.Store {
	store := memory.NewStore()

	products := make([]*entities.Product, 0, len(input.Products))
	for i := range input.Products {
		products = append(products, &input.Products[i])
	}
	boms := make([]*entities.BOMDefinition, 0, len(input.BOMs))
	for i := range input.BOMs {
		boms = append(boms, &input.BOMs[i])
	}
	sales := make([]*entities.Sale, 0, len(input.Sales))
	for i := range input.Sales {
		sales = append(sales, &input.Sales[i])
	}
	quotations := make([]*entities.Quotation, 0, len(input.Quotations))
	for i := range input.Quotations {
		quotations = append(quotations, &input.Quotations[i])
	}

	if err := store.Load(products, boms, sales, quotations); err != nil {
		panic(err)
	}
	return store
}

// BuildMixedStore returns repositories holding the mixed sales, quotations and BOM scenario
func BuildMixedStore() *memory.Store {
	return BuildStore(testhelpers.ScenarioMixed())
}

// BuildBOMStore returns repositories holding the single BOM-backed sale scenario
func BuildBOMStore() *memory.Store {
	return BuildStore(testhelpers.ScenarioBOMExplosion())
}
