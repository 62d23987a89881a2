package observability

import (
	"fmt"
	"github.com/rs/zerolog/log"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hostel", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hostel", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	Mutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hostel", Name: "mutations_total", Help: "Commands applied to stored records."},
		[]string{"entity", "op", "result"}, // result: ok|rejected|error
	)
	SeededRecords = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hostel", Name: "seeded_records_total", Help: "Records written by the seeder."},
		[]string{"entity"},
	)
	SeedLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hostel", Name: "seed_batch_duration_seconds",
			Help:    "Duration of one seeder batch write.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"entity"},
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "hostel", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: "hostel", Name: "active_sessions", Help: "Sessions issued and not yet logged out."},
	)
)

// Serve exposes reg on addr from a background goroutine; batch binaries
// use it since they have no HTTP router of their own. An empty addr disables it.
func Serve(addr string, reg *prometheus.Registry) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", MetricsHandler(reg))

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
	reg.MustRegister(HTTPRequests, HTTPLatency, Mutations, SeededRecords, SeedLatency, CacheEvents, ActiveSessions)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveMutation(entity, op, result string) {
	Mutations.WithLabelValues(entity, op, result).Inc()
}

func ObserveSeed(entity string, n int, dur time.Duration) {
	SeededRecords.WithLabelValues(entity).Add(float64(n))
	SeedLatency.WithLabelValues(entity).Observe(dur.Seconds())
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}

// LabelErr names the dynamic type of err for low-cardinality log fields.
func LabelErr(err error) string {
	if err == nil {
		return "none"
	}
	return fmt.Sprintf("%T", err)
}
