package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vsinha/mrpanalysis/pkg/application/services/remediation"
	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
	"github.com/vsinha/mrpanalysis/pkg/domain/repositories"
)

// RemediationController executes recommendation actions
type RemediationController struct {
	service       *remediation.Service
	workOrderRepo repositories.WorkOrderRepository
}

// NewRemediationController creates a new controller
func NewRemediationController(service *remediation.Service, workOrderRepo repositories.WorkOrderRepository) *RemediationController {
	return &RemediationController{
		service:       service,
		workOrderRepo: workOrderRepo,
	}
}

// Execute carries out one action taken from a recommendation
// POST /api/v1/remediations {"type": "OPEN_PRODUCTION", "bom_id": "BOM-1", "quantity": 3}
func (c *RemediationController) Execute(ctx *gin.Context) {
	var action entities.Action
	if err := ctx.ShouldBindJSON(&action); err != nil {
		respondError(ctx, http.StatusBadRequest, "invalid action", err)
		return
	}

	outcome, err := c.service.Execute(ctx.Request.Context(), action)
	switch {
	case err == nil:
	case errors.Is(err, entities.ErrBOMNotFound):
		respondError(ctx, http.StatusNotFound, "BOM not found", err)
		return
	case errors.Is(err, entities.ErrInvalidQuantity):
		respondError(ctx, http.StatusBadRequest, "invalid quantity", err)
		return
	default:
		respondError(ctx, http.StatusUnprocessableEntity, "action failed", err)
		return
	}

	status := http.StatusOK
	if outcome.WorkOrder != nil {
		status = http.StatusCreated
	}
	ctx.JSON(status, outcome)
}

// ListWorkOrders returns every work order created so far
// GET /api/v1/work-orders
func (c *RemediationController) ListWorkOrders(ctx *gin.Context) {
	orders, err := c.workOrderRepo.GetAllWorkOrders()
	if err != nil {
		respondError(ctx, http.StatusInternalServerError, "failed to list work orders", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"work_orders": orders})
}

// GetWorkOrder returns one work order
// GET /api/v1/work-orders/:id
func (c *RemediationController) GetWorkOrder(ctx *gin.Context) {
	order, err := c.workOrderRepo.GetWorkOrder(ctx.Param("id"))
	if errors.Is(err, entities.ErrWorkOrderNotFound) {
		respondError(ctx, http.StatusNotFound, "work order not found", err)
		return
	}
	if err != nil {
		respondError(ctx, http.StatusInternalServerError, "failed to load work order", err)
		return
	}
	ctx.JSON(http.StatusOK, order)
}
