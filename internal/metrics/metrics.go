package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for Submissions.
const (
	OutcomeLegitimate = "legitimate"
	OutcomeSuspect    = "suspect"
	OutcomeRejected   = "rejected"
)

type Metrics struct {
	Submissions *prometheus.CounterVec
	Rejections  *prometheus.CounterVec
}

// New registers the collectors on reg. Pass prometheus.NewRegistry() in
// tests to keep them isolated.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fraud_submissions_total",
			Help: "Total number of submitted transactions, labelled by outcome.",
		}, []string{"outcome"}),

		Rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fraud_rejections_total",
			Help: "Total number of submissions refused by validation, labelled by failing rule.",
		}, []string{"reason"}),
	}
}

func (m *Metrics) ObserveSuspect() {
	m.Submissions.WithLabelValues(OutcomeSuspect).Inc()
}

func (m *Metrics) ObserveLegitimate() {
	m.Submissions.WithLabelValues(OutcomeLegitimate).Inc()
}

func (m *Metrics) ObserveRejected(reason string) {
	m.Submissions.WithLabelValues(OutcomeRejected).Inc()
	m.Rejections.WithLabelValues(reason).Inc()
}

// Handler serves the collectors gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return mux
}
