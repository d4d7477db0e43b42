package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"visit-routing-service/internal/api/handlers"
	"visit-routing-service/internal/metrics"
	"visit-routing-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	solver ports.Solver,
	estimator ports.DistanceProvider,
	google ports.DistanceProvider,
	cache ports.TravelTimeCache,
) http.Handler {
	mux := http.NewServeMux()

	solveHandler := &handlers.SolveHandler{
		Solver:    solver,
		Estimator: estimator,
		Google:    google,
		Cache:     cache,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/solve", solveHandler.Solve)
	mux.HandleFunc("/replan", solveHandler.Replan)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return loggingMiddleware(mux)
}
