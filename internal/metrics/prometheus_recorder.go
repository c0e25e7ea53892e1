package metrics

import (
	"errors"
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	buildDuration prom.Histogram
	stageDuration *prom.HistogramVec
	buildOutcome  *prom.CounterVec
	docsRendered  prom.Counter
}

// NewPrometheusRecorder constructs and registers Prometheus metrics.
// Registration is idempotent per registry: a collector that is already
// registered is reused instead of panicking.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	return &PrometheusRecorder{
		buildDuration: register(reg, prom.NewHistogram(prom.HistogramOpts{
			Namespace: "sitebuilder",
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		})),
		stageDuration: register(reg, prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "sitebuilder",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})),
		buildOutcome: register(reg, prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitebuilder",
			Name:      "builds_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"})),
		docsRendered: register(reg, prom.NewCounter(prom.CounterOpts{
			Namespace: "sitebuilder",
			Name:      "documents_rendered_total",
			Help:      "Total documents rendered across all builds",
		})),
	}
}

// register adds a collector to the registry, reusing the existing collector
// when one with the same descriptor is already registered.
func register[C prom.Collector](reg *prom.Registry, c C) C {
	if err := reg.Register(c); err != nil {
		var are prom.AlreadyRegisteredError
		if errors.As(err, &are) {
			return are.ExistingCollector.(C)
		}
		panic(err)
	}
	return c
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) AddDocumentsRendered(n int) {
	if p == nil || p.docsRendered == nil {
		return
	}
	p.docsRendered.Add(float64(n))
}

// HTTPHandler returns an http.Handler serving Prometheus metrics for the
// provided registry.
func HTTPHandler(reg *prom.Registry) http.Handler {
	if reg == nil {
		reg = prom.DefaultRegisterer.(*prom.Registry)
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
