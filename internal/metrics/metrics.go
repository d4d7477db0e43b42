package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// Solves counts solver runs by mode (cold/warm) and outcome.
	Solves = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "routing_solves_total", Help: "Solver runs by mode and outcome."},
		[]string{"mode", "outcome"},
	)
	// SolveDuration records solver wall-clock time in seconds.
	SolveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "routing_solve_duration_seconds", Help: "Solver run duration in seconds.", Buckets: []float64{0.1, 0.5, 1, 5, 15, 60, 120, 300, 600}},
		[]string{"mode", "outcome"},
	)
	// MatrixBuildDuration records cost matrix build time in seconds.
	MatrixBuildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "routing_matrix_build_seconds", Help: "Cost matrix build duration in seconds.", Buckets: prometheus.DefBuckets},
	)
	// DistanceFallbacks counts per-pair degradations to the geodesic estimator.
	DistanceFallbacks = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "routing_distance_fallbacks_total", Help: "Travel-time lookups degraded to the geodesic estimate."},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on the service registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(Solves)
		Registry.MustRegister(SolveDuration)
		Registry.MustRegister(MatrixBuildDuration)
		Registry.MustRegister(DistanceFallbacks)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

// ObserveSolve records one solver run.
func ObserveSolve(mode, outcome string, d time.Duration) {
	Solves.WithLabelValues(mode, outcome).Inc()
	SolveDuration.WithLabelValues(mode, outcome).Observe(d.Seconds())
}

// TimeMatrixBuild returns a stop function recording the build duration.
func TimeMatrixBuild() func() {
	start := time.Now()
	return func() { MatrixBuildDuration.Observe(time.Since(start).Seconds()) }
}

// ObserveHTTP records one served request.
func ObserveHTTP(method, path string, status int, d time.Duration) {
	s := strconv.Itoa(status)
	HTTPRequests.WithLabelValues(method, path, s).Inc()
	HTTPDuration.WithLabelValues(method, path, s).Observe(d.Seconds())
}
