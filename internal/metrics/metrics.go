// Package metrics provides Prometheus instrumentation for the live engine.
package metrics

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SimulatorTicks counts simulator invocations, partitioned by whether
	// the throttle let the tick through ("applied") or not ("throttled").
	SimulatorTicks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pitchside_simulator_ticks_total",
		Help: "Simulator invocations by outcome",
	}, []string{"outcome"})

	// SimulatedOutcomes counts per-match outcomes drawn by the simulator.
	SimulatedOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pitchside_simulated_outcomes_total",
		Help: "Simulated deliveries by outcome",
	}, []string{"outcome"})

	// MatchesCompleted counts live → completed transitions.
	MatchesCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pitchside_matches_completed_total",
		Help: "Matches finalized by the simulator",
	})

	// LiveMatches tracks the number of matches currently live.
	LiveMatches = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pitchside_live_matches",
		Help: "Number of matches currently live",
	})

	// Revalidations counts downstream cache-invalidation signals by result.
	Revalidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pitchside_revalidations_total",
		Help: "Cache revalidation signals by result",
	}, []string{"result"})

	// EventsDetected counts detected match events by type.
	EventsDetected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pitchside_events_detected_total",
		Help: "Match events synthesized from snapshot deltas",
	}, []string{"type"})

	// PollsDropped counts event polls skipped because one was in flight.
	PollsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pitchside_event_polls_dropped_total",
		Help: "Event polls dropped while a previous poll was in flight",
	})

	// ScrapeRequests counts scraper fetches by source and result.
	ScrapeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pitchside_scrape_requests_total",
		Help: "Live-score scrape attempts",
	}, []string{"source", "result"})

	// WebSocketClients tracks connected WebSocket clients.
	WebSocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pitchside_websocket_clients",
		Help: "Number of connected WebSocket clients",
	})

	// HTTPRequestsTotal counts HTTP requests by method, route, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pitchside_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration tracks request duration by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pitchside_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 5.0, 30.0},
	}, []string{"method", "path"})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware returns an HTTP middleware that records request metrics.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: 200}
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start).Seconds()

		// Route pattern keeps label cardinality bounded.
		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		HTTPRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack lets websocket upgrades pass through the middleware.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("metrics: response writer does not support hijacking")
	}
	return h.Hijack()
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
