// Package telemetry exposes Prometheus metrics and OpenTelemetry tracing for
// the slot daemon.
package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the daemon's Prometheus collectors.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// Router metrics
	Messages        *prometheus.CounterVec
	MessageDuration *prometheus.HistogramVec
	Duplicates      prometheus.Counter

	// Scroll restore metrics
	RestoreOutcomes *prometheus.CounterVec

	// Bridge metrics
	BridgeConnected prometheus.Gauge
	BridgeCalls     *prometheus.CounterVec

	// Slot metrics
	SlotsTracked prometheus.Gauge
}

// NewMetrics registers every collector on a private registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		Messages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "harpoon_router_messages_total",
				Help: "Total number of routed messages",
			},
			[]string{"type", "result"},
		),
		MessageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "harpoon_router_message_duration_seconds",
				Help:    "Router dispatch duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"type"},
		),
		Duplicates: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "harpoon_router_duplicates_total",
				Help: "Requests dropped because their id was already seen",
			},
		),
		RestoreOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "harpoon_scroll_restores_total",
				Help: "Scroll restore loops by outcome",
			},
			[]string{"outcome"},
		),
		BridgeConnected: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "harpoon_bridge_connected",
				Help: "1 while an extension connection is attached",
			},
		),
		BridgeCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "harpoon_bridge_calls_total",
				Help: "Outbound bridge calls by type and result",
			},
			[]string{"type", "result"},
		),
		SlotsTracked: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "harpoon_slots_tracked",
				Help: "Number of entries in the slot list",
			},
		),
	}
}

// RecordMessage counts one routed message.
func (m *Metrics) RecordMessage(msgType, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Messages.WithLabelValues(msgType, result).Inc()
	m.MessageDuration.WithLabelValues(msgType).Observe(elapsed.Seconds())
}

// RecordDuplicate counts a dropped duplicate request.
func (m *Metrics) RecordDuplicate() {
	if m == nil {
		return
	}
	m.Duplicates.Inc()
}

// RecordRestore counts a finished scroll restore loop.
func (m *Metrics) RecordRestore(outcome string) {
	if m == nil {
		return
	}
	m.RestoreOutcomes.WithLabelValues(outcome).Inc()
}

// SetBridgeConnected flips the connection gauge.
func (m *Metrics) SetBridgeConnected(connected bool) {
	if m == nil {
		return
	}
	if connected {
		m.BridgeConnected.Set(1)
		return
	}
	m.BridgeConnected.Set(0)
}

// RecordBridgeCall counts one outbound call to the extension.
func (m *Metrics) RecordBridgeCall(callType string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.BridgeCalls.WithLabelValues(callType, result).Inc()
}

// SetSlots records the current slot list length.
func (m *Metrics) SetSlots(n int) {
	if m == nil {
		return
	}
	m.SlotsTracked.Set(float64(n))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
