// Package metrics exposes Prometheus collectors for the risk worksheet pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/secmon-lab/riskstage/pkg/domain/types"
)

var (
	// analysesTotal counts stored risk analyses by classification
	analysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riskstage_analyses_total",
		Help: "Total risk analyses by classification",
	}, []string{"classification"})

	// riskMagnitude tracks the distribution of analyzed magnitudes
	riskMagnitude = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "riskstage_risk_magnitude",
		Help:    "Magnitude of analyzed risks",
		Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.3, 0.5, 0.75, 1},
	})

	// prioritizedTotal counts prioritized risks by band
	prioritizedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riskstage_prioritized_risks_total",
		Help: "Total prioritized risks by priority band",
	}, []string{"priority"})

	// monitoringTotal counts post-mitigation evaluations by outcome
	monitoringTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riskstage_monitoring_total",
		Help: "Total post-mitigation evaluations by outcome",
	}, []string{"outcome"})

	// useCaseErrors counts failed operations by operation name
	useCaseErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riskstage_usecase_errors_total",
		Help: "Total failed use case operations",
	}, []string{"operation"})
)

// ObserveAnalysis records one stored analysis
func ObserveAnalysis(classification types.Classification, magnitude float64) {
	analysesTotal.WithLabelValues(classification.String()).Inc()
	riskMagnitude.Observe(magnitude)
}

// ObservePriority records one prioritized risk
func ObservePriority(priority types.Priority) {
	prioritizedTotal.WithLabelValues(string(priority)).Inc()
}

// ObserveMonitoring records one post-mitigation evaluation
func ObserveMonitoring(improved bool) {
	outcome := "not_improved"
	if improved {
		outcome = "improved"
	}
	monitoringTotal.WithLabelValues(outcome).Inc()
}

// ObserveError records a failed operation
func ObserveError(operation string) {
	useCaseErrors.WithLabelValues(operation).Inc()
}
