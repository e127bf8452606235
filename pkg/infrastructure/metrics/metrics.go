package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
)

// Registry holds the analysis and remediation collectors on a private
// prometheus registry
type Registry struct {
	reg *prometheus.Registry

	AnalysisRuns       prometheus.Counter
	AnalysisRejected   prometheus.Counter
	AnalysisLatencySec prometheus.Histogram
	LastRowCount       prometheus.Gauge
	LastShortageCount  prometheus.Gauge
	Recommendations    prometheus.Counter
	Warnings           *prometheus.CounterVec
	WorkOrdersCreated  prometheus.Counter
	RemediationActions *prometheus.CounterVec
}

// NewRegistry creates a registry with every collector registered
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	runs := prometheus.NewCounter(prometheus.CounterOpts{Name: "mrp_analysis_runs_total", Help: "Completed analysis runs."})
	rejected := prometheus.NewCounter(prometheus.CounterOpts{Name: "mrp_analysis_rejected_total", Help: "Analysis requests refused for an empty selection."})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "mrp_analysis_latency_seconds",
		Help:    "Analysis run latency.",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	})
	rows := prometheus.NewGauge(prometheus.GaugeOpts{Name: "mrp_analysis_last_rows", Help: "Top-level rows in the last analysis."})
	shortages := prometheus.NewGauge(prometheus.GaugeOpts{Name: "mrp_analysis_last_shortages", Help: "Shortage rows in the last analysis."})
	recommendations := prometheus.NewCounter(prometheus.CounterOpts{Name: "mrp_recommendations_issued_total", Help: "Recommendations issued across runs."})
	warnings := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "mrp_analysis_warnings_total", Help: "Data-integrity warnings by code."}, []string{"code"})
	workOrders := prometheus.NewCounter(prometheus.CounterOpts{Name: "mrp_work_orders_created_total", Help: "Work orders opened from recommendations."})
	actions := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "mrp_remediation_actions_total", Help: "Remediation actions executed by type."}, []string{"action"})

	r.MustRegister(runs, rejected, latency, rows, shortages, recommendations, warnings, workOrders, actions)
	return &Registry{
		reg:                r,
		AnalysisRuns:       runs,
		AnalysisRejected:   rejected,
		AnalysisLatencySec: latency,
		LastRowCount:       rows,
		LastShortageCount:  shortages,
		Recommendations:    recommendations,
		Warnings:           warnings,
		WorkOrdersCreated:  workOrders,
		RemediationActions: actions,
	}
}

// RecordAnalysis observes one completed analysis run
func (r *Registry) RecordAnalysis(summary entities.Summary, recommendations int, warnings []entities.Warning, duration time.Duration) {
	r.AnalysisRuns.Inc()
	r.AnalysisLatencySec.Observe(duration.Seconds())
	r.LastRowCount.Set(float64(summary.Total))
	r.LastShortageCount.Set(float64(summary.ShortageCount))
	r.Recommendations.Add(float64(recommendations))
	for _, w := range warnings {
		r.Warnings.WithLabelValues(w.Code.String()).Inc()
	}
}

// RecordRejected observes a run refused before analysis, such as an empty selection
func (r *Registry) RecordRejected() {
	r.AnalysisRejected.Inc()
}

// RecordRemediation observes an executed remediation action
func (r *Registry) RecordRemediation(action entities.ActionType, createdWorkOrder bool) {
	r.RemediationActions.WithLabelValues(action.String()).Inc()
	if createdWorkOrder {
		r.WorkOrdersCreated.Inc()
	}
}

// Gatherer exposes the underlying registry for tests and custom exporters
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }

// Handler serves the registry in the prometheus exposition format
func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
