package entities

import (
	"fmt"
	"strings"
	"time"
)

// WorkOrderStatus represents the state of a production work order
type WorkOrderStatus int

const (
	WorkOrderOpen WorkOrderStatus = iota
	WorkOrderInProgress
	WorkOrderCompleted
)

// String method for WorkOrderStatus enum
func (s WorkOrderStatus) String() string {
	switch s {
	case WorkOrderOpen:
		return "open"
	case WorkOrderInProgress:
		return "in_progress"
	case WorkOrderCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler
func (s WorkOrderStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// WorkOrder is a production order spawned from a BOM
type WorkOrder struct {
	ID          string          `json:"id"`
	BOMID       string          `json:"bom_id"`
	ProductName string          `json:"product_name"`
	Quantity    Quantity        `json:"quantity"`
	Status      WorkOrderStatus `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewWorkOrder creates a validated WorkOrder in the open state
func NewWorkOrder(id, bomID, productName string, quantity Quantity, createdAt time.Time) (*WorkOrder, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("work order id cannot be empty")
	}
	if strings.TrimSpace(bomID) == "" {
		return nil, fmt.Errorf("bom id cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, fmt.Errorf("%w, got %s", ErrInvalidQuantity, quantity)
	}

	return &WorkOrder{
		ID:          id,
		BOMID:       bomID,
		ProductName: productName,
		Quantity:    quantity,
		Status:      WorkOrderOpen,
		CreatedAt:   createdAt,
	}, nil
}
