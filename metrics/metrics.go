package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the import pipeline counters on a private prometheus registry
type Registry struct {
	reg *prometheus.Registry

	OrdersParsed     prometheus.Counter
	OrdersStaged     prometheus.Counter
	ReviewOutcomes   *prometheus.CounterVec // outcome: approved, ignored
	CustomerResolved *prometheus.CounterVec // by: phone, name, created
	PaymentsApplied  prometheus.Counter
	ImportDuration   prometheus.Histogram
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	parsed := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "crescer",
		Subsystem: "import",
		Name:      "orders_parsed_total",
		Help:      "Orders recognized by the text parser.",
	})
	staged := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "crescer",
		Subsystem: "import",
		Name:      "orders_staged_total",
		Help:      "Rows written to imported_orders.",
	})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crescer",
		Subsystem: "review",
		Name:      "outcomes_total",
		Help:      "Staging rows closed by a reviewer, by outcome.",
	}, []string{"outcome"})
	resolved := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crescer",
		Subsystem: "review",
		Name:      "customers_resolved_total",
		Help:      "Customers attached to approved orders, by how they were found.",
	}, []string{"by"})
	payments := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "crescer",
		Subsystem: "orders",
		Name:      "payments_applied_total",
		Help:      "Payments registered against orders.",
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "crescer",
		Subsystem: "import",
		Name:      "duration_seconds",
		Help:      "Time spent parsing and staging one import.",
		Buckets:   prometheus.DefBuckets,
	})

	r.MustRegister(parsed, staged, outcomes, resolved, payments, duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Registry{
		reg:              r,
		OrdersParsed:     parsed,
		OrdersStaged:     staged,
		ReviewOutcomes:   outcomes,
		CustomerResolved: resolved,
		PaymentsApplied:  payments,
		ImportDuration:   duration,
	}
}

// RecordOutcome counts a closed staging row
func (r *Registry) RecordOutcome(outcome string) {
	r.ReviewOutcomes.WithLabelValues(outcome).Inc()
}

// RecordResolution counts how an approval found its customer
func (r *Registry) RecordResolution(by string) {
	if by == "" {
		by = "created"
	}
	r.CustomerResolved.WithLabelValues(by).Inc()
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
