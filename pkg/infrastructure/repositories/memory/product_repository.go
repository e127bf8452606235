package memory

import (
	"fmt"
	"sync"

	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
	"github.com/vsinha/mrpanalysis/pkg/domain/repositories"
)

// ProductRepository provides in-memory product catalog storage
type ProductRepository struct {
	mu          sync.RWMutex
	products    []entities.Product
	productsMap map[string]int
}

// NewProductRepository creates a new in-memory product repository
func NewProductRepository(expectedProducts int) *ProductRepository {
	return &ProductRepository{
		products:    make([]entities.Product, 0, expectedProducts),
		productsMap: make(map[string]int, expectedProducts),
	}
}

// Verify interface compliance
var _ repositories.ProductRepository = (*ProductRepository)(nil)

// LoadProducts loads products into the repository. A repeated id keeps the first product.
func (r *ProductRepository) LoadProducts(products []*entities.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, product := range products {
		if product == nil {
			continue
		}
		if _, exists := r.productsMap[product.ID]; exists {
			continue
		}
		r.productsMap[product.ID] = len(r.products)
		r.products = append(r.products, *product)
	}
	return nil
}

// GetProduct returns a product by id
func (r *ProductRepository) GetProduct(id string) (*entities.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.productsMap[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", entities.ErrProductNotFound, id)
	}
	product := r.products[index]
	return &product, nil
}

// GetAllProducts returns copies of all products in load order
func (r *ProductRepository) GetAllProducts() ([]*entities.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*entities.Product, 0, len(r.products))
	for i := range r.products {
		product := r.products[i]
		products = append(products, &product)
	}
	return products, nil
}
