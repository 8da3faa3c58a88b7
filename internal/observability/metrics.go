package observability

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "prompt_router"

// Generation outcome labels
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Metrics holds the Prometheus collectors used by the generation pipeline.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	generations   *prometheus.CounterVec
	providerCalls *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	refinements   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with registry
func NewMetrics(registry *prometheus.Registry) (*Metrics, error) {
	if registry == nil {
		return nil, fmt.Errorf("prometheus registry is nil")
	}

	m := &Metrics{
		registry: registry,
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Total number of generate requests by provider and status",
		}, []string{"provider", "status"}),
		providerCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_calls_total",
			Help:      "Total outbound provider calls by provider and status",
		}, []string{"provider", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_latency_seconds",
			Help:      "Provider call latency in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"provider"}),
		refinements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refinements_total",
			Help:      "Total prompt refinements by intent and whether a template matched",
		}, []string{"intent", "matched"}),
	}

	for _, collector := range []prometheus.Collector{m.generations, m.providerCalls, m.latency, m.refinements} {
		if err := registry.Register(collector); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	return m, nil
}

// Registry returns the registry the collectors were registered with
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveProviderCall records one outbound call
func (m *Metrics) ObserveProviderCall(provider, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.providerCalls.WithLabelValues(provider, status).Inc()
	m.latency.WithLabelValues(provider).Observe(duration.Seconds())
}

// ObserveGeneration records the outcome of one generate request. provider
// is empty when routing failed before a provider was chosen.
func (m *Metrics) ObserveGeneration(provider, status string) {
	if m == nil {
		return
	}
	if provider == "" {
		provider = "none"
	}
	m.generations.WithLabelValues(provider, status).Inc()
}

// ObserveRefinement records a refinement and whether the intent had a template
func (m *Metrics) ObserveRefinement(intent string, matched bool) {
	if m == nil {
		return
	}
	if !matched {
		// unknown intents are caller-controlled; keep label cardinality bounded
		intent = "unknown"
	}
	m.refinements.WithLabelValues(intent, fmt.Sprintf("%t", matched)).Inc()
}
