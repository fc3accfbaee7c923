package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ClicksRecorded counts click events successfully persisted.
	ClicksRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linksea_clicks_recorded_total",
		Help: "Total number of click events persisted",
	})

	// ClicksDropped counts click events lost to store failures. Recording is
	// best-effort, so these are logged once and never retried.
	ClicksDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linksea_clicks_dropped_total",
		Help: "Total number of click events dropped after a failed write",
	})

	// ReordersApplied counts successful full-list position rewrites.
	ReordersApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linksea_link_reorders_applied_total",
		Help: "Total number of link reorders committed",
	})

	// ReordersRejected counts reorders refused for an id-set mismatch.
	ReordersRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linksea_link_reorders_rejected_total",
		Help: "Total number of link reorders rejected by validation",
	})

	// RedisErrors counts Redis command failures by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linksea_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// CacheRequests counts cache-aside lookups by outcome (hit, miss, bypass).
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linksea_cache_requests_total",
		Help: "Total number of cache-aside lookups by outcome",
	}, []string{"outcome"})

	// ClickFeedConnections is the gauge of live dashboard feed connections.
	ClickFeedConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "linksea_click_feed_connections",
		Help: "Number of active click feed WebSocket connections",
	})

	// ClickFeedDrops counts feed messages dropped on slow or closed
	// connections. Dropping is safe, events only prompt a dashboard re-read.
	ClickFeedDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linksea_click_feed_drops_total",
		Help: "Total number of click feed messages dropped by reason",
	}, []string{"reason"})
)
