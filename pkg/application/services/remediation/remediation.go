package remediation

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
	"github.com/vsinha/mrpanalysis/pkg/domain/repositories"
	"github.com/vsinha/mrpanalysis/pkg/infrastructure/events"
)

// Navigation targets returned by the default handler
const (
	PurchasingTarget = "/purchasing"
	WorkOrdersTarget = "/work-orders"
)

// Handler performs the follow-up flows a recommendation can trigger.
// Analysis only describes these actions; a Handler carries them out.
type Handler interface {
	CreateWorkOrderFromBOM(ctx context.Context, bomID string, quantity entities.Quantity) (*entities.WorkOrder, error)
	NavigateToPurchasing(ctx context.Context) (string, error)
	NavigateToWorkOrders(ctx context.Context) (string, error)
}

// MetricsRecorder observes executed actions
type MetricsRecorder interface {
	RecordRemediation(action entities.ActionType, createdWorkOrder bool)
}

// Outcome reports what executing an action did
type Outcome struct {
	Action    entities.ActionType `json:"action"`
	WorkOrder *entities.WorkOrder `json:"work_order,omitempty"`
	Target    string              `json:"target"`
}

// Service dispatches recommendation actions to a Handler
type Service struct {
	handler   Handler
	publisher events.Publisher
	metrics   MetricsRecorder
}

// NewService creates a remediation service
func NewService(handler Handler) *Service {
	return &Service{handler: handler}
}

// WithPublisher attaches an event publisher
func (s *Service) WithPublisher(publisher events.Publisher) *Service {
	s.publisher = publisher
	return s
}

// WithMetrics attaches a metrics recorder
func (s *Service) WithMetrics(metrics MetricsRecorder) *Service {
	s.metrics = metrics
	return s
}

// Execute carries out one action
func (s *Service) Execute(ctx context.Context, action entities.Action) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	outcome := &Outcome{Action: action.Type}

	switch action.Type {
	case entities.ActionOpenProduction:
		if strings.TrimSpace(action.BOMID) == "" {
			return nil, fmt.Errorf("production action needs a BOM id")
		}
		if !action.Quantity.IsPositive() {
			return nil, fmt.Errorf("production action for BOM %s: %w", action.BOMID, entities.ErrInvalidQuantity)
		}
		order, err := s.handler.CreateWorkOrderFromBOM(ctx, action.BOMID, action.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to create work order from BOM %s: %w", action.BOMID, err)
		}
		outcome.WorkOrder = order
		outcome.Target = WorkOrdersTarget
		s.publish(events.NewWorkOrderCreatedEvent(*order))

	case entities.ActionOpenPurchasing:
		target, err := s.handler.NavigateToPurchasing(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to open purchasing: %w", err)
		}
		outcome.Target = target

	case entities.ActionOpenWorkOrder:
		target, err := s.handler.NavigateToWorkOrders(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to open work orders: %w", err)
		}
		outcome.Target = target

	default:
		return nil, fmt.Errorf("unsupported remediation action: %s", action.Type)
	}

	if outcome.WorkOrder == nil {
		s.publish(events.NewRemediationNavigatedEvent(action.Type, outcome.Target))
	}
	if s.metrics != nil {
		s.metrics.RecordRemediation(action.Type, outcome.WorkOrder != nil)
	}

	return outcome, nil
}

func (s *Service) publish(event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(event); err != nil {
		log.Printf("remediation: failed to publish %s: %v", event.Type(), err)
	}
}

// DefaultHandler creates work orders in a repository and answers navigation
// requests with fixed route targets
type DefaultHandler struct {
	bomRepo       repositories.BOMRepository
	productRepo   repositories.ProductRepository
	workOrderRepo repositories.WorkOrderRepository
	now           func() time.Time
}

// NewDefaultHandler creates the default remediation handler
func NewDefaultHandler(
	bomRepo repositories.BOMRepository,
	productRepo repositories.ProductRepository,
	workOrderRepo repositories.WorkOrderRepository,
) *DefaultHandler {
	return &DefaultHandler{
		bomRepo:       bomRepo,
		productRepo:   productRepo,
		workOrderRepo: workOrderRepo,
		now:           time.Now,
	}
}

// Verify interface compliance
var _ Handler = (*DefaultHandler)(nil)

// CreateWorkOrderFromBOM opens a work order for the BOM's parent product
func (h *DefaultHandler) CreateWorkOrderFromBOM(ctx context.Context, bomID string, quantity entities.Quantity) (*entities.WorkOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bom, err := h.bomRepo.GetBOM(bomID)
	if err != nil {
		return nil, err
	}

	order, err := entities.NewWorkOrder(uuid.NewString(), bom.ID, h.productName(bom), quantity, h.now())
	if err != nil {
		return nil, err
	}
	if err := h.workOrderRepo.SaveWorkOrder(order); err != nil {
		return nil, fmt.Errorf("failed to save work order: %w", err)
	}
	return order, nil
}

func (h *DefaultHandler) productName(bom *entities.BOMDefinition) string {
	if bom.ProductName != "" {
		return bom.ProductName
	}
	if h.productRepo != nil && bom.ProductID != "" {
		if product, err := h.productRepo.GetProduct(bom.ProductID); err == nil {
			return product.Name
		}
	}
	return bom.ProductCode
}

// NavigateToPurchasing returns the purchasing route
func (h *DefaultHandler) NavigateToPurchasing(ctx context.Context) (string, error) {
	return PurchasingTarget, ctx.Err()
}

// NavigateToWorkOrders returns the work order list route
func (h *DefaultHandler) NavigateToWorkOrders(ctx context.Context) (string, error) {
	return WorkOrdersTarget, ctx.Err()
}
