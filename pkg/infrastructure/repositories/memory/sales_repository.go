package memory

import (
	"fmt"
	"sync"

	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
	"github.com/vsinha/mrpanalysis/pkg/domain/repositories"
)

// SalesRepository provides in-memory sales order storage
type SalesRepository struct {
	mu       sync.RWMutex
	sales    []entities.Sale
	salesMap map[string]int
}

// NewSalesRepository creates a new in-memory sales repository
func NewSalesRepository(expectedSales int) *SalesRepository {
	return &SalesRepository{
		sales:    make([]entities.Sale, 0, expectedSales),
		salesMap: make(map[string]int, expectedSales),
	}
}

// Verify interface compliance
var _ repositories.SalesRepository = (*SalesRepository)(nil)

// LoadSales loads sales orders. A repeated id keeps the first sale.
func (r *SalesRepository) LoadSales(sales []*entities.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, sale := range sales {
		if sale == nil {
			continue
		}
		if _, exists := r.salesMap[sale.ID]; exists {
			continue
		}
		r.salesMap[sale.ID] = len(r.sales)
		r.sales = append(r.sales, *sale)
	}
	return nil
}

// GetSale returns a sales order by id
func (r *SalesRepository) GetSale(id string) (*entities.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.salesMap[id]
	if !exists {
		return nil, fmt.Errorf("sale not found: %s", id)
	}
	sale := r.sales[index]
	return &sale, nil
}

// GetSales returns all sales orders in load order
func (r *SalesRepository) GetSales() ([]*entities.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sales := make([]*entities.Sale, 0, len(r.sales))
	for i := range r.sales {
		sale := r.sales[i]
		sales = append(sales, &sale)
	}
	return sales, nil
}

// QuotationRepository provides in-memory quotation storage
type QuotationRepository struct {
	mu            sync.RWMutex
	quotations    []entities.Quotation
	quotationsMap map[string]int
}

// NewQuotationRepository creates a new in-memory quotation repository
func NewQuotationRepository(expectedQuotations int) *QuotationRepository {
	return &QuotationRepository{
		quotations:    make([]entities.Quotation, 0, expectedQuotations),
		quotationsMap: make(map[string]int, expectedQuotations),
	}
}

// Verify interface compliance
var _ repositories.QuotationRepository = (*QuotationRepository)(nil)

// LoadQuotations loads quotations. A repeated id keeps the first quotation.
func (r *QuotationRepository) LoadQuotations(quotations []*entities.Quotation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, quotation := range quotations {
		if quotation == nil {
			continue
		}
		if _, exists := r.quotationsMap[quotation.ID]; exists {
			continue
		}
		stored := *quotation
		stored.Items = append([]entities.QuotationItem(nil), quotation.Items...)
		r.quotationsMap[quotation.ID] = len(r.quotations)
		r.quotations = append(r.quotations, stored)
	}
	return nil
}

// GetQuotation returns a quotation by id
func (r *QuotationRepository) GetQuotation(id string) (*entities.Quotation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.quotationsMap[id]
	if !exists {
		return nil, fmt.Errorf("quotation not found: %s", id)
	}
	quotation := r.quotations[index]
	return &quotation, nil
}

// GetQuotations returns all quotations in load order
func (r *QuotationRepository) GetQuotations() ([]*entities.Quotation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	quotations := make([]*entities.Quotation, 0, len(r.quotations))
	for i := range r.quotations {
		quotation := r.quotations[i]
		quotations = append(quotations, &quotation)
	}
	return quotations, nil
}
