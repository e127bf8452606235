package orchestration

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/vsinha/mrpanalysis/pkg/application/dto"
	"github.com/vsinha/mrpanalysis/pkg/application/services/analysis"
	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
	"github.com/vsinha/mrpanalysis/pkg/domain/repositories"
	"github.com/vsinha/mrpanalysis/pkg/domain/services"
	"github.com/vsinha/mrpanalysis/pkg/infrastructure/events"
)

// MetricsRecorder observes analysis runs
type MetricsRecorder interface {
	RecordAnalysis(summary entities.Summary, recommendations int, warnings []entities.Warning, duration time.Duration)
	RecordRejected()
}

// AnalysisOrchestrator loads collections from the repositories, runs the
// analysis engine and reports the outcome to metrics and the event store
type AnalysisOrchestrator struct {
	productRepo   repositories.ProductRepository
	bomRepo       repositories.BOMRepository
	salesRepo     repositories.SalesRepository
	quotationRepo repositories.QuotationRepository
	publisher     events.Publisher
	metrics       MetricsRecorder
	now           func() time.Time
}

// NewAnalysisOrchestrator creates a new analysis orchestrator
func NewAnalysisOrchestrator(
	productRepo repositories.ProductRepository,
	bomRepo repositories.BOMRepository,
	salesRepo repositories.SalesRepository,
	quotationRepo repositories.QuotationRepository,
) *AnalysisOrchestrator {
	return &AnalysisOrchestrator{
		productRepo:   productRepo,
		bomRepo:       bomRepo,
		salesRepo:     salesRepo,
		quotationRepo: quotationRepo,
		now:           time.Now,
	}
}

// WithPublisher attaches an event publisher
func (o *AnalysisOrchestrator) WithPublisher(publisher events.Publisher) *AnalysisOrchestrator {
	o.publisher = publisher
	return o
}

// WithMetrics attaches a metrics recorder
func (o *AnalysisOrchestrator) WithMetrics(metrics MetricsRecorder) *AnalysisOrchestrator {
	o.metrics = metrics
	return o
}

// Candidates lists the demand sources an analyst may select from
type Candidates struct {
	Sales      []entities.Sale      `json:"sales"`
	Quotations []entities.Quotation `json:"quotations"`
}

// Candidates returns active sales and quotations
func (o *AnalysisOrchestrator) Candidates(ctx context.Context) (*Candidates, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sales, err := o.salesRepo.GetSales()
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}
	quotations, err := o.quotationRepo.GetQuotations()
	if err != nil {
		return nil, fmt.Errorf("failed to load quotations: %w", err)
	}

	return &Candidates{
		Sales:      analysis.ActiveSales(derefAll(sales)),
		Quotations: analysis.ActiveQuotations(derefAll(quotations)),
	}, nil
}

// Analyze runs an analysis over the stored collections for the given selection.
// Only active sources can be selected.
func (o *AnalysisOrchestrator) Analyze(ctx context.Context, selection entities.Selection) (*dto.AnalysisRun, error) {
	candidates, err := o.Candidates(ctx)
	if err != nil {
		return nil, err
	}

	products, err := o.productRepo.GetAllProducts()
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	boms, err := o.bomRepo.GetAllBOMs()
	if err != nil {
		return nil, fmt.Errorf("failed to load BOMs: %w", err)
	}

	return o.AnalyzeInput(ctx, dto.AnalysisInput{
		Sales:      candidates.Sales,
		Quotations: candidates.Quotations,
		Products:   derefAll(products),
		BOMs:       derefAll(boms),
		Selection:  selection,
	})
}

// AnalyzeInput runs an analysis over caller-supplied collections
func (o *AnalysisOrchestrator) AnalyzeInput(ctx context.Context, input dto.AnalysisInput) (*dto.AnalysisRun, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	start := o.now()

	result, err := analysis.RunMRPAnalysis(input)
	if err != nil {
		if errors.Is(err, entities.ErrEmptySelection) {
			if o.metrics != nil {
				o.metrics.RecordRejected()
			}
			o.publish(events.NewAnalysisRejectedEvent(runID, err.Error()))
		}
		return nil, fmt.Errorf("analysis %s: %w", runID, err)
	}

	completedAt := o.now()
	run := &dto.AnalysisRun{
		ID:          runID,
		CompletedAt: completedAt,
		Duration:    completedAt.Sub(start),
		Result:      result,
	}

	if o.metrics != nil {
		o.metrics.RecordAnalysis(result.Summary, len(result.Recommendations), result.Warnings, run.Duration)
	}
	o.publishRun(run, input.Selection)

	return run, nil
}

// ValidateBOMs checks stored BOM definitions against the stored catalog
func (o *AnalysisOrchestrator) ValidateBOMs(ctx context.Context) (*services.ValidationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	products, err := o.productRepo.GetAllProducts()
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	boms, err := o.bomRepo.GetAllBOMs()
	if err != nil {
		return nil, fmt.Errorf("failed to load BOMs: %w", err)
	}

	validator := services.NewBOMValidator(services.NewProductResolver(derefAll(products)))
	return validator.ValidateBOMs(derefAll(boms)), nil
}

func (o *AnalysisOrchestrator) publishRun(run *dto.AnalysisRun, selection entities.Selection) {
	if o.publisher == nil {
		return
	}

	result := run.Result
	for _, row := range result.Rows {
		if row.IsShortage() {
			o.publish(events.NewShortageIdentifiedEvent(run.ID, row))
		}
	}
	for _, recommendation := range result.Recommendations {
		o.publish(events.NewRecommendationIssuedEvent(run.ID, recommendation))
	}
	for _, warning := range result.Warnings {
		o.publish(events.NewDataIntegrityWarningEvent(run.ID, warning))
	}

	o.publish(events.NewAnalysisCompletedEvent(events.AnalysisCompleted{
		RunID:        run.ID,
		SaleIDs:      selection.SaleIDs,
		QuotationIDs: selection.QuotationIDs,
		Mode:         selection.Mode,
		Summary:      result.Summary,
		WarningCount: len(result.Warnings),
		DurationMS:   run.Duration.Milliseconds(),
	}))
}

func (o *AnalysisOrchestrator) publish(event events.Event) {
	if o.publisher == nil {
		return
	}
	if err := o.publisher.Publish(event); err != nil {
		log.Printf("orchestration: failed to publish %s: %v", event.Type(), err)
	}
}

func derefAll[T any](items []*T) []T {
	values := make([]T, 0, len(items))
	for _, item := range items {
		if item != nil {
			values = append(values, *item)
		}
	}
	return values
}
