package repositories

import "github.com/vsinha/mrpanalysis/pkg/domain/entities"

// SalesRepository provides access to sales orders
type SalesRepository interface {
	GetSale(id string) (*entities.Sale, error)
	GetSales() ([]*entities.Sale, error)
	LoadSales(sales []*entities.Sale) error
}

// QuotationRepository provides access to price quotations
type QuotationRepository interface {
	GetQuotation(id string) (*entities.Quotation, error)
	GetQuotations() ([]*entities.Quotation, error)
	LoadQuotations(quotations []*entities.Quotation) error
}
