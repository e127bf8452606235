package repositories

import "github.com/vsinha/mrpanalysis/pkg/domain/entities"

// ProductRepository provides access to the product catalog and its stock levels
type ProductRepository interface {
	GetProduct(id string) (*entities.Product, error)
	GetAllProducts() ([]*entities.Product, error)
	LoadProducts(products []*entities.Product) error
}
