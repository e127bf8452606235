package memory

import (
	"fmt"

	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
)

// Store bundles the repositories one scenario needs
type Store struct {
	Products   *ProductRepository
	BOMs       *BOMRepository
	Sales      *SalesRepository
	Quotations *QuotationRepository
	WorkOrders *WorkOrderRepository
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		Products:   NewProductRepository(0),
		BOMs:       NewBOMRepository(0),
		Sales:      NewSalesRepository(0),
		Quotations: NewQuotationRepository(0),
		WorkOrders: NewWorkOrderRepository(),
	}
}

// Load fills the read-side repositories
func (s *Store) Load(
	products []*entities.Product,
	boms []*entities.BOMDefinition,
	sales []*entities.Sale,
	quotations []*entities.Quotation,
) error {
	if err := s.Products.LoadProducts(products); err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}
	if err := s.BOMs.LoadBOMs(boms); err != nil {
		return fmt.Errorf("failed to load BOMs: %w", err)
	}
	if err := s.Sales.LoadSales(sales); err != nil {
		return fmt.Errorf("failed to load sales: %w", err)
	}
	if err := s.Quotations.LoadQuotations(quotations); err != nil {
		return fmt.Errorf("failed to load quotations: %w", err)
	}
	return nil
}
