// Package metrics exposes the Prometheus collectors of the campus map service
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "campusmap_requests_total",
		Help: "Total HTTP API requests by route and status",
	}, []string{"route", "status"})
	RequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "campusmap_request_duration_ms",
		Help:    "HTTP API request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	}, []string{"route"})
	UnresolvedPerimeterIDs = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "campusmap_unresolved_perimeter_ids",
		Help: "Perimeter node ids in the loaded buildings that are missing from the node index",
	})
	UndefinedCentroids = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "campusmap_undefined_centroids",
		Help: "Loaded buildings with no resolvable perimeter node",
	})
	StopRowsSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "campusmap_stop_rows_skipped_total",
		Help: "Malformed stop lines skipped during load",
	})
	FeedFetchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "campusmap_feed_fetch_total",
		Help: "Realtime feed downloads by feed and result",
	}, []string{"feed", "result"})
	FeedCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "campusmap_feed_cache_total",
		Help: "Realtime feed cache lookups by feed and outcome",
	}, []string{"feed", "outcome"})
	DatasetSize = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "campusmap_dataset_size",
		Help: "Number of loaded records by kind",
	}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(UnresolvedPerimeterIDs)
	prometheus.MustRegister(UndefinedCentroids)
	prometheus.MustRegister(StopRowsSkippedTotal)
	prometheus.MustRegister(FeedFetchTotal)
	prometheus.MustRegister(FeedCacheTotal)
	prometheus.MustRegister(DatasetSize)
}

// Handler serves the registered metrics for scraping
func Handler() http.Handler { return promhttp.Handler() }
