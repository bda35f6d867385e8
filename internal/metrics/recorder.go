package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder receives one observation per evaluated operation.
//
//go:generate mockgen -destination=../eval/mocks/mock_recorder.go -package=mocks github.com/agbru/grou/internal/metrics Recorder
type Recorder interface {
	// ObserveOperation records an evaluated operation, the size of its larger
	// operand in limbs, how long it took and whether it failed.
	ObserveOperation(op string, limbs int, elapsed time.Duration, err error)
	// ObserveCrossCheck records the outcome of a multiplication cross-check.
	ObserveCrossCheck(agreed bool)
}

// Nop is a Recorder that discards everything.
type Nop struct{}

func (Nop) ObserveOperation(string, int, time.Duration, error) {}
func (Nop) ObserveCrossCheck(bool)                             {}

// Prometheus is a Recorder backed by a private Prometheus registry, so
// several instances (one per test, say) never collide.
type Prometheus struct {
	registry *prometheus.Registry

	operations   *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	operandLimbs *prometheus.HistogramVec
	crossChecks  *prometheus.CounterVec
}

// NewPrometheus creates a recorder and registers the grou collectors along
// with the Go runtime and process collectors and a heap gauge fed by mem.
func NewPrometheus(mem *MemoryCollector) *Prometheus {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	p := &Prometheus{
		registry: reg,
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "grou",
			Name:      "operations_total",
			Help:      "Evaluated operations by operator and outcome.",
		}, []string{"op", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "grou",
			Name:      "operation_duration_seconds",
			Help:      "Wall time of evaluated operations.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"op"}),
		operandLimbs: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "grou",
			Name:      "operand_limbs",
			Help:      "Limb count of the larger operand.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"op"}),
		crossChecks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "grou",
			Name:      "cross_checks_total",
			Help:      "Multiplication cross-checks by result.",
		}, []string{"result"}),
	}
	if mem != nil {
		factory.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "grou",
			Name:      "heap_alloc_bytes",
			Help:      "Heap bytes in use at scrape time.",
		}, func() float64 { return float64(mem.Snapshot().HeapAlloc) })
	}
	return p
}

// ObserveOperation implements Recorder.
func (p *Prometheus) ObserveOperation(op string, limbs int, elapsed time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	p.operations.WithLabelValues(op, outcome).Inc()
	p.duration.WithLabelValues(op).Observe(elapsed.Seconds())
	p.operandLimbs.WithLabelValues(op).Observe(float64(limbs))
}

// ObserveCrossCheck implements Recorder.
func (p *Prometheus) ObserveCrossCheck(agreed bool) {
	result := "agree"
	if !agreed {
		result = "mismatch"
	}
	p.crossChecks.WithLabelValues(result).Inc()
}

// Handler returns the exposition handler for this recorder's registry.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// Registry exposes the underlying registry, mostly for tests.
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }
