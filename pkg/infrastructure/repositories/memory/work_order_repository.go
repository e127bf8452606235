package memory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
	"github.com/vsinha/mrpanalysis/pkg/domain/repositories"
)

// WorkOrderRepository provides thread-safe in-memory work order storage
type WorkOrderRepository struct {
	mu          sync.RWMutex
	orders      []entities.WorkOrder
	ordersIndex map[string]int
}

// NewWorkOrderRepository creates a new in-memory work order repository
func NewWorkOrderRepository() *WorkOrderRepository {
	return &WorkOrderRepository{
		orders:      make([]entities.WorkOrder, 0),
		ordersIndex: make(map[string]int),
	}
}

// Verify interface compliance
var _ repositories.WorkOrderRepository = (*WorkOrderRepository)(nil)

// SaveWorkOrder inserts or replaces a work order. Orders without an id get a UUID.
func (r *WorkOrderRepository) SaveWorkOrder(order *entities.WorkOrder) error {
	if order == nil {
		return fmt.Errorf("work order cannot be nil")
	}
	if strings.TrimSpace(order.ID) == "" {
		order.ID = uuid.NewString()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if index, exists := r.ordersIndex[order.ID]; exists {
		r.orders[index] = *order
		return nil
	}
	r.ordersIndex[order.ID] = len(r.orders)
	r.orders = append(r.orders, *order)
	return nil
}

// GetWorkOrder returns a work order by id
func (r *WorkOrderRepository) GetWorkOrder(id string) (*entities.WorkOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.ordersIndex[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", entities.ErrWorkOrderNotFound, id)
	}
	order := r.orders[index]
	return &order, nil
}

// GetAllWorkOrders returns all work orders in creation order
func (r *WorkOrderRepository) GetAllWorkOrders() ([]*entities.WorkOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]*entities.WorkOrder, 0, len(r.orders))
	for i := range r.orders {
		order := r.orders[i]
		orders = append(orders, &order)
	}
	return orders, nil
}
