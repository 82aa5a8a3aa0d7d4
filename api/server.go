/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. CORS:          Cross-origin requests for the reporting frontend
  2. RequestLogger: Structured request logging (httplog over slog)
  3. CleanPath:     URL normalization
  4. Recoverer:     Panic recovery (500 instead of crash)
  5. Heartbeat:     Liveness probe on /healthz

ROUTE GROUPS:
  /api/workers                         Snapshot worker listing
  /api/forecast/*                      Company, employee and freelance tables
  /api/simulation/*                    Yearly per-employee simulations

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public and
  read-only.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))
	r.Use(middleware.CleanPath)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/healthz"))

	r.Route("/api", func(r chi.Router) {
		r.Get("/workers", h.ListWorkers)

		r.Route("/forecast", func(r chi.Router) {
			r.Get("/company", h.GetCompanyYearForecast)
			r.Get("/employees/{year}/{month}", h.GetEmployeeMonthForecast)
			r.Get("/employees/{year}/{month}/summary", h.GetEmployeeMonthSummary)
			r.Get("/freelance/{year}/{month}", h.GetFreelanceMonthSummary)
		})

		r.Route("/simulation", func(r chi.Router) {
			r.Get("/employees/{id}", h.GetEmployeeYearlySimulation)
		})
	})

	return r
}
