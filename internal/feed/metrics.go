package feed

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ActiveSubscribers tracks connected WebSocket clients.
	ActiveSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "betchain_feed_active_subscribers",
		Help: "Number of connected event feed subscribers",
	})

	// EventsBroadcastTotal counts events pushed to the feed by type.
	EventsBroadcastTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "betchain_feed_events_broadcast_total",
			Help: "Total number of events broadcast to the feed",
		},
		[]string{"type"},
	)

	// EventsDroppedTotal counts events dropped on slow subscribers.
	EventsDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "betchain_feed_events_dropped_total",
		Help: "Total number of events dropped due to full subscriber buffers",
	})
)
