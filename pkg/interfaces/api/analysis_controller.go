package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vsinha/mrpanalysis/pkg/application/dto"
	"github.com/vsinha/mrpanalysis/pkg/application/services/analysis"
	"github.com/vsinha/mrpanalysis/pkg/application/services/orchestration"
	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
)

// AnalysisController serves candidate sources and analysis runs
type AnalysisController struct {
	orchestrator *orchestration.AnalysisOrchestrator
}

// NewAnalysisController creates a new controller
func NewAnalysisController(orchestrator *orchestration.AnalysisOrchestrator) *AnalysisController {
	return &AnalysisController{orchestrator: orchestrator}
}

// GetSources lists the active sales and quotations a caller can select
// GET /api/v1/sources
func (c *AnalysisController) GetSources(ctx *gin.Context) {
	candidates, err := c.orchestrator.Candidates(ctx.Request.Context())
	if err != nil {
		respondError(ctx, http.StatusInternalServerError, "failed to list sources", err)
		return
	}
	ctx.JSON(http.StatusOK, candidates)
}

// Analyze runs the analysis over the loaded scenario for a selection
// POST /api/v1/analysis {"sale_ids": [...], "quotation_ids": [...], "mode": "BOTH"}
func (c *AnalysisController) Analyze(ctx *gin.Context) {
	var selection entities.Selection
	if err := ctx.ShouldBindJSON(&selection); err != nil {
		respondError(ctx, http.StatusBadRequest, "invalid selection", err)
		return
	}

	run, err := c.orchestrator.Analyze(ctx.Request.Context(), selection)
	if err != nil {
		respondAnalysisError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, run)
}

// RunInput analyzes collections supplied in the request body. Inactive
// sources are dropped before the run.
// POST /api/v1/analysis/run
func (c *AnalysisController) RunInput(ctx *gin.Context) {
	var input dto.AnalysisInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondError(ctx, http.StatusBadRequest, "invalid analysis input", err)
		return
	}

	input.Sales = analysis.ActiveSales(input.Sales)
	input.Quotations = analysis.ActiveQuotations(input.Quotations)

	run, err := c.orchestrator.AnalyzeInput(ctx.Request.Context(), input)
	if err != nil {
		respondAnalysisError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, run)
}

// ValidateBOMs reports structural problems in the loaded BOM definitions
// GET /api/v1/boms/validation
func (c *AnalysisController) ValidateBOMs(ctx *gin.Context) {
	result, err := c.orchestrator.ValidateBOMs(ctx.Request.Context())
	if err != nil {
		respondError(ctx, http.StatusInternalServerError, "failed to validate BOMs", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"valid":    result.IsValid(),
		"errors":   result.Errors,
		"warnings": result.Warnings,
	})
}

func respondAnalysisError(ctx *gin.Context, err error) {
	if errors.Is(err, entities.ErrEmptySelection) {
		respondError(ctx, http.StatusBadRequest, "no sales orders or quotations selected", err)
		return
	}
	respondError(ctx, http.StatusInternalServerError, "analysis failed", err)
}
