package repositories

import "github.com/vsinha/mrpanalysis/pkg/domain/entities"

// WorkOrderRepository stores production work orders created from recommendations
type WorkOrderRepository interface {
	SaveWorkOrder(order *entities.WorkOrder) error
	GetWorkOrder(id string) (*entities.WorkOrder, error)
	GetAllWorkOrders() ([]*entities.WorkOrder, error)
}
