// Package metrics exposes engine counters and gauges in Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "debate"

// Metrics implements core.Recorder on a Prometheus registry.
type Metrics struct {
	registry *prometheus.Registry

	connectedClients prometheus.Gauge
	activeRooms      prometheus.Gauge
	roomsCreated     *prometheus.CounterVec
	messages         prometheus.Counter
	topicRotations   prometheus.Counter
	eventsDropped    *prometheus.CounterVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		connectedClients: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connected_clients",
			Help:      "Number of connected clients.",
		}),
		activeRooms: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_rooms",
			Help:      "Number of rooms with at least one member.",
		}),
		roomsCreated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rooms_created_total",
			Help:      "Rooms created, by kind.",
		}, []string{"kind"}),
		messages: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_total",
			Help:      "Chat messages posted by participants.",
		}),
		topicRotations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "topic_rotations_total",
			Help:      "Topic changes triggered by mutual agreement.",
		}),
		eventsDropped: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_dropped_total",
			Help:      "Events dropped because a client buffer was full, by event.",
		}, []string{"event"}),
	}
}

// Handler serves the registry at /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ClientConnected()    { m.connectedClients.Inc() }
func (m *Metrics) ClientDisconnected() { m.connectedClients.Dec() }
func (m *Metrics) SetActiveRooms(n int) {
	m.activeRooms.Set(float64(n))
}
func (m *Metrics) RoomCreated(kind string)  { m.roomsCreated.WithLabelValues(kind).Inc() }
func (m *Metrics) MessagePosted()           { m.messages.Inc() }
func (m *Metrics) TopicRotated()            { m.topicRotations.Inc() }
func (m *Metrics) EventDropped(kind string) { m.eventsDropped.WithLabelValues(kind).Inc() }
