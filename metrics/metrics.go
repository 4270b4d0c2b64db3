// Package metrics provides Prometheus observability metrics for the
// staffing calculator. It covers Critical metrics for staffing-decision
// visibility and Important metrics for solver health.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// =============================================================================
// CRITICAL METRICS - Staffing Decision Visibility
// =============================================================================

// CalculationsTotal counts staffing calculations by model.
var CalculationsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "staffing",
	Name:      "calculations_total",
	Help:      "Total staffing calculations run, by model",
}, []string{"model"})

// UnachievableTotal counts calculations whose service-level target could not
// be met within the solver's search limits. A rising rate signals targets
// out of line with offered load.
var UnachievableTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "staffing",
	Name:      "unachievable_total",
	Help:      "Calculations where no agent count within search limits met the target",
}, []string{"model"})

// RequiredAgents tracks the distribution of solved staffing levels.
var RequiredAgents = factory.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "staffing",
	Name:      "required_agents",
	Help:      "Solved minimum agent counts, by model",
	Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
}, []string{"model"})

// =============================================================================
// IMPORTANT METRICS - Solver Health
// =============================================================================

// CalculationDurationSeconds tracks time per calculation.
var CalculationDurationSeconds = factory.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "staffing",
	Name:      "calculation_duration_seconds",
	Help:      "Time taken to run one staffing calculation",
	Buckets:   []float64{0.00001, 0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
}, []string{"model"})

// EquilibriumIterations tracks fixed-point iterations of the retrial model.
var EquilibriumIterations = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "staffing",
	Name:      "equilibrium_iterations",
	Help:      "Fixed-point iterations used by the retrial equilibrium solver",
	Buckets:   []float64{1, 2, 3, 5, 10, 20, 35, 50},
})

// EquilibriumNonConverged counts equilibria reported as best-effort after
// exhausting the iteration budget.
var EquilibriumNonConverged = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "staffing",
	Name:      "equilibrium_non_converged_total",
	Help:      "Retrial equilibria that did not converge within the iteration budget",
})

// RequestsTotal counts HTTP API requests by path and status.
var RequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "server",
	Name:      "requests_total",
	Help:      "HTTP requests served, by path and status code",
}, []string{"path", "status"})

// ScenariosSavedTotal counts scenario store writes.
var ScenariosSavedTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "scenarios",
	Name:      "saved_total",
	Help:      "Named scenarios saved to the store",
})
