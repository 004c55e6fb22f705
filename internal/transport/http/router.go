// Package http assembles the portal's HTTP surface: middleware stack,
// feature handlers, health, and metrics.
package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"oscahub/pkg/platform/middleware/metadata"
	"oscahub/pkg/platform/middleware/requestid"
	"oscahub/pkg/platform/middleware/requestlog"
	"oscahub/pkg/platform/middleware/requesttime"
)

// Registrar is anything that mounts routes onto the router. Every feature
// handler satisfies it.
type Registrar interface {
	Register(r chi.Router)
}

// HealthChecker reports whether an optional backing service is usable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// NewRouter wires the middleware stack and mounts every feature handler.
// Transport concerns stay here; handlers delegate to domain services.
func NewRouter(logger *zap.Logger, health HealthChecker, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()

	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(requestlog.Middleware(logger))

	for _, h := range handlers {
		h.Register(r)
	}

	r.Get("/healthz", handleHealth(health))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

func handleHealth(health HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK
		if health != nil {
			if err := health.Health(r.Context()); err != nil {
				status = "degraded"
				code = http.StatusServiceUnavailable
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		w.Write([]byte(`{"status":"` + status + `"}`))
	}
}
