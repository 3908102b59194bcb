package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/serenelab/wellspring/pkg/workflow"
)

// Metrics holds the collectors for the assistant core.
type Metrics struct {
	CompletionRequests *prometheus.CounterVec
	ParseFallbacks     *prometheus.CounterVec
	NodeDuration       *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CompletionRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wellspring_completion_requests_total",
				Help: "Model completion calls by agent and outcome.",
			},
			[]string{"agent", "outcome"},
		),
		ParseFallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wellspring_parse_fallbacks_total",
				Help: "Responses that resolved to the schema fallback value.",
			},
			[]string{"agent"},
		),
		NodeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wellspring_node_duration_seconds",
				Help:    "Workflow node execution time.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"graph", "node"},
		),
	}
	reg.MustRegister(m.CompletionRequests, m.ParseFallbacks, m.NodeDuration)
	return m
}

// ObserveCompletion records one model call.
func (m *Metrics) ObserveCompletion(agent string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.CompletionRequests.WithLabelValues(agent, outcome).Inc()
}

// ObserveFallback records one parse fallback.
func (m *Metrics) ObserveFallback(agent string) {
	m.ParseFallbacks.WithLabelValues(agent).Inc()
}

// Hooks returns workflow hooks that time node execution.
func (m *Metrics) Hooks() workflow.Hooks {
	return workflow.Hooks{
		OnNodeEnd: func(graph, node string, elapsed time.Duration, err error) {
			m.NodeDuration.WithLabelValues(graph, node).Observe(elapsed.Seconds())
		},
	}
}
