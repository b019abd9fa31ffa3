package observability

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "resto", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "resto", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ExternalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "resto", Name: "external_requests_total", Help: "Outbound requests."},
		[]string{"service", "status"},
	)
	ExternalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "resto", Name: "external_request_duration_seconds",
			Help:    "Outbound request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "resto", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del|error
	)
	DatasetRows = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Namespace: "resto", Name: "dataset_rows", Help: "Rows of the active dataset."},
		[]string{"state"}, // kept|dropped
	)
	DatasetSentiment = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Namespace: "resto", Name: "dataset_sentiment_reviews", Help: "Reviews per sentiment label in the active dataset."},
		[]string{"sentiment"},
	)
	DatasetLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "resto", Name: "dataset_loads_total", Help: "Dataset load attempts."},
		[]string{"source", "result"},
	)
	FilterLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "resto", Name: "filter_duration_seconds",
			Help:    "Filter + aggregation pass duration seconds.",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
		},
	)
	ExportedRows = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "resto", Name: "exported_rows_total", Help: "Rows written to CSV exports."},
	)
)

// Serve exposes h as /metrics on a side port. Empty addr disables it.
func Serve(addr string, h http.Handler) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", h)

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, ExternalRequests, ExternalLatency, CacheEvents,
		DatasetRows, DatasetSentiment, DatasetLoads, FilterLatency, ExportedRows)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveExternal(service string, status int, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, strconv.Itoa(status)).Inc()
	ExternalLatency.WithLabelValues(service).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) {
	CacheEvents.WithLabelValues(cache, event).Inc()
}

// ObserveLoad records a load attempt and, on success, the new dataset shape.
func ObserveLoad(source string, kept, dropped int, bySentiment map[string]int, err error) {
	DatasetLoads.WithLabelValues(source, LabelErr(err)).Inc()
	if err != nil {
		return
	}
	DatasetRows.WithLabelValues("kept").Set(float64(kept))
	DatasetRows.WithLabelValues("dropped").Set(float64(dropped))
	for label, n := range bySentiment {
		DatasetSentiment.WithLabelValues(label).Set(float64(n))
	}
}

func ObserveFilter(dur time.Duration) { FilterLatency.Observe(dur.Seconds()) }

func ObserveExport(rows int) { ExportedRows.Add(float64(rows)) }

func LabelErr(err error) string {
	if err == nil {
		return "none"
	}
	return fmt.Sprintf("%T", err)
}
