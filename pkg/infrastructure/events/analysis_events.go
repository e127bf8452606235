package events

import (
	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
)

const (
	AnalysisCompletedEvent    = "analysis.completed"
	AnalysisRejectedEvent     = "analysis.rejected"
	ShortageIdentifiedEvent   = "shortage.identified"
	RecommendationIssuedEvent = "recommendation.issued"
	WorkOrderCreatedEvent     = "workorder.created"
	RemediationNavigatedEvent = "remediation.navigated"
	DataIntegrityWarningEvent = "analysis.warning"
)

// AnalysisCompleted summarizes a finished run; rows are not repeated
type AnalysisCompleted struct {
	RunID        string              `json:"run_id"`
	SaleIDs      []string            `json:"sale_ids"`
	QuotationIDs []string            `json:"quotation_ids"`
	Mode         entities.SourceMode `json:"mode"`
	Summary      entities.Summary    `json:"summary"`
	WarningCount int                 `json:"warning_count"`
	DurationMS   int64               `json:"duration_ms"`
}

type AnalysisRejected struct {
	RunID  string `json:"run_id"`
	Reason string `json:"reason"`
}

type ShortageIdentified struct {
	RunID string               `json:"run_id"`
	Row   entities.AnalysisRow `json:"row"`
}

type RecommendationIssued struct {
	RunID          string                  `json:"run_id"`
	Recommendation entities.Recommendation `json:"recommendation"`
}

type WorkOrderCreated struct {
	WorkOrder entities.WorkOrder `json:"work_order"`
}

type RemediationNavigated struct {
	Action entities.ActionType `json:"action"`
	Target string              `json:"target"`
}

type DataIntegrityWarning struct {
	RunID   string           `json:"run_id"`
	Warning entities.Warning `json:"warning"`
}

func NewAnalysisCompletedEvent(completed AnalysisCompleted) Event {
	return NewEvent(AnalysisCompletedEvent, analysisStream(completed.RunID), completed)
}

func NewAnalysisRejectedEvent(runID, reason string) Event {
	return NewEvent(AnalysisRejectedEvent, analysisStream(runID), AnalysisRejected{RunID: runID, Reason: reason})
}

func NewShortageIdentifiedEvent(runID string, row entities.AnalysisRow) Event {
	return NewEvent(ShortageIdentifiedEvent, analysisStream(runID), ShortageIdentified{RunID: runID, Row: row})
}

func NewRecommendationIssuedEvent(runID string, recommendation entities.Recommendation) Event {
	return NewEvent(RecommendationIssuedEvent, analysisStream(runID), RecommendationIssued{
		RunID:          runID,
		Recommendation: recommendation,
	})
}

func NewDataIntegrityWarningEvent(runID string, warning entities.Warning) Event {
	return NewEvent(DataIntegrityWarningEvent, analysisStream(runID), DataIntegrityWarning{RunID: runID, Warning: warning})
}

func NewWorkOrderCreatedEvent(order entities.WorkOrder) Event {
	return NewEvent(WorkOrderCreatedEvent, "workorder-"+order.ID, WorkOrderCreated{WorkOrder: order})
}

func NewRemediationNavigatedEvent(action entities.ActionType, target string) Event {
	return NewEvent(RemediationNavigatedEvent, "remediation", RemediationNavigated{Action: action, Target: target})
}

func analysisStream(runID string) string {
	return "analysis-" + runID
}
