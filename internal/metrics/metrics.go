// Package metrics holds the Prometheus collectors exported by the server
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "career"

// Metrics is a private registry plus the collectors registered on it.
// Each server builds its own so tests never share counters.
type Metrics struct {
	Registry *prometheus.Registry

	// HTTPRequestsTotal counts HTTP requests by method, route and status code
	HTTPRequestsTotal *prometheus.CounterVec
	// HTTPRequestDuration records HTTP request latency in seconds
	HTTPRequestDuration *prometheus.HistogramVec
	// RelayPeers tracks currently connected relay peers
	RelayPeers prometheus.Gauge
	// RelayMessagesTotal counts chat messages accepted for broadcast
	RelayMessagesTotal prometheus.Counter
	// RelayDroppedPeersTotal counts peers disconnected because their send queue was full
	RelayDroppedPeersTotal prometheus.Counter
}

// New creates a registry with Go and process collectors and the server metrics
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	factory := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RelayPeers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "relay_peers",
			Help:      "Current number of connected relay peers",
		}),
		RelayMessagesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relay_messages_total",
			Help:      "Total number of chat messages relayed",
		}),
		RelayDroppedPeersTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relay_dropped_peers_total",
			Help:      "Total number of relay peers dropped for falling behind",
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
