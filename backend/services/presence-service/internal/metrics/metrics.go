package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the presence service Prometheus collectors.
type Metrics struct {
	AggregationRequests *prometheus.CounterVec
	CacheHits           prometheus.Counter
	CacheMisses         prometheus.Counter
	MalformedRecords    prometheus.Counter
	ActivityClients     prometheus.Gauge
}

// New registers and returns the collectors on the default registry.
func New() *Metrics {
	return &Metrics{
		AggregationRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "presence_aggregation_requests_total",
			Help: "Aggregation requests served, by granularity.",
		}, []string{"granularity"}),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "presence_summary_cache_hits_total",
			Help: "Summary cache hits.",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "presence_summary_cache_misses_total",
			Help: "Summary cache misses.",
		}),
		MalformedRecords: promauto.NewCounter(prometheus.CounterOpts{
			Name: "presence_malformed_records_total",
			Help: "Raw records dropped during normalization.",
		}),
		ActivityClients: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "presence_activity_clients",
			Help: "Connected live activity WebSocket clients.",
		}),
	}
}
