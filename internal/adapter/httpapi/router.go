package httpapi

import (
	"context"
	"encoding/json"
	"maps"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/simaogato/ledgerflow-backend/internal/adapter/observability"
	"go.uber.org/zap"
)

// HealthCheck probes one dependency; a nil error means healthy
type HealthCheck func(ctx context.Context) error

// ServiceHealth is the state of one dependency
type ServiceHealth struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	LatencyMs int64  `json:"latencyMs"`
	Error     string `json:"error,omitempty"`
}

// HealthStatus is the /healthz body
type HealthStatus struct {
	Status      string          `json:"status"`
	Services    []ServiceHealth `json:"services"`
	LastChecked string          `json:"lastChecked"`
}

// NewRouter creates the ops HTTP router.
// The tracker API itself is served over gRPC; this router only exposes health and metrics.
func NewRouter(checks map[string]HealthCheck, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	r.Get("/healthz", healthzHandler(checks, logger))
	r.Get("/readyz", readyzHandler())
	if metrics != nil {
		r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/stats", statsHandler(metrics))
	})

	return r
}

func healthzHandler(checks map[string]HealthCheck, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		services := []ServiceHealth{{Name: "ledgerflow", Status: "healthy"}}
		overall := "healthy"
		for _, name := range slices.Sorted(maps.Keys(checks)) {
			start := time.Now()
			err := checks[name](ctx)
			svc := ServiceHealth{
				Name:      name,
				Status:    "healthy",
				LatencyMs: time.Since(start).Milliseconds(),
			}
			if err != nil {
				svc.Status = "unhealthy"
				svc.Error = err.Error()
				overall = "unhealthy"
				logger.Warn("health check failed", zap.String("service", name), zap.Error(err))
			}
			services = append(services, svc)
		}

		code := http.StatusOK
		if overall != "healthy" {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, HealthStatus{
			Status:      overall,
			Services:    services,
			LastChecked: time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func statsHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.Snapshot())
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
