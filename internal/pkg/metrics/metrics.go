// Package metrics holds the Prometheus collectors of the production service.
//
// Collectors are registered on the Registerer passed to New so tests can use
// an isolated registry:
//
//	reg := prometheus.NewRegistry()
//	m := metrics.New(reg)
//	m.ObserveWrite("batch", "Released")
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "production"

type Metrics struct {
	aggregateWrites     *prometheus.CounterVec
	eventsPublished     *prometheus.CounterVec
	publishFailures     prometheus.Counter
	expiredCalibrations prometheus.Gauge
	httpRequests        *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		aggregateWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "aggregate_writes_total",
			Help:      "Committed aggregate writes by aggregate kind and resulting status.",
		}, []string{"aggregate", "status"}),
		eventsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "outbox",
			Name:      "events_published_total",
			Help:      "Outbox events handed to the publisher, by event type.",
		}, []string{"event_type"}),
		publishFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "outbox",
			Name:      "publish_failures_total",
			Help:      "Outbox events the publisher rejected.",
		}),
		expiredCalibrations: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_runs_with_expired_calibration",
			Help:      "Active mobile runs whose calibration check is expired, as of the last scan.",
		}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Handled HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
	}
}

func (m *Metrics) ObserveWrite(aggregate, status string) {
	m.aggregateWrites.WithLabelValues(aggregate, status).Inc()
}

func (m *Metrics) ObservePublished(eventType string) {
	m.eventsPublished.WithLabelValues(eventType).Inc()
}

func (m *Metrics) ObservePublishFailure() {
	m.publishFailures.Inc()
}

func (m *Metrics) SetExpiredCalibrations(n int) {
	m.expiredCalibrations.Set(float64(n))
}

func (m *Metrics) ObserveRequest(method, route string, code int) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
}
