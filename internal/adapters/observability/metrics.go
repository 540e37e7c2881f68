package observability

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "campus", Name: "http_requests_total", Help: "BFF HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "campus", Name: "http_request_duration_seconds",
			Help:    "BFF HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ExternalRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "campus", Name: "external_requests_total", Help: "Outbound candidate attempts."},
		[]string{"service", "endpoint", "status"},
	)
	ExternalLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "campus", Name: "external_request_duration_seconds",
			Help:    "Outbound candidate attempt duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "endpoint"},
	)
	ChainExhaustions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "campus", Name: "chain_exhaustions_total", Help: "Calls where every candidate route failed."},
		[]string{"service", "method"},
	)
	FallbackEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "campus", Name: "fallback_events_total", Help: "Synthesized reads and simulated writes."},
		[]string{"resource", "kind"}, // kind: synthesized|simulated
	)
)

func Serve(addr string) {
	if addr == "" {
		addr = os.Getenv("METRICS_ADDR")
	}
	if addr == "" {
		return // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

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
	reg.MustRegister(HTTPRequests, HTTPLatency, ExternalRequests, ExternalLatency, ChainExhaustions, FallbackEvents)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

// ObserveExternal records one candidate attempt. status is the HTTP code,
// or a transport error label from LabelErr.
func ObserveExternal(service, endpoint, status string, dur time.Duration) {
	ExternalRequests.WithLabelValues(service, endpoint, status).Inc()
	ExternalLatency.WithLabelValues(service, endpoint).Observe(dur.Seconds())
}

func ObserveExhaustion(service, method string) {
	ChainExhaustions.WithLabelValues(service, method).Inc()
}

func ObserveFallback(resource, kind string) { // kind: synthesized|simulated
	FallbackEvents.WithLabelValues(resource, kind).Inc()
}

func LabelErr(err error) string {
	if err == nil {
		return "none"
	}
	return fmt.Sprintf("%T", err)
}
