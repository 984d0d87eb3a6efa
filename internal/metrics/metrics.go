// Package metrics exposes admission-control counters over a dedicated
// Prometheus registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	JoinsTotal           prometheus.Counter
	LeavesTotal          prometheus.Counter
	AdmissionDeniedTotal prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	return &Metrics{
		registry: reg,
		JoinsTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "rsvp_joins_total",
			Help: "Total number of successful event joins.",
		}),
		LeavesTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "rsvp_leaves_total",
			Help: "Total number of event leaves.",
		}),
		AdmissionDeniedTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "rsvp_admission_denied_total",
			Help: "Total number of joins rejected by admission control.",
		}),
	}
}

// Handler serves the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
