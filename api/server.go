/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the frontend

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Private calendar
		r.Route("/schedule", func(r chi.Router) {
			r.Get("/", h.GetSchedule)
			r.Put("/{date}", h.PutScheduleDay)
			r.Delete("/{date}/{code}", h.DeleteScheduleShift)
		})

		// Special-date flags
		r.Route("/special-dates", func(r chi.Router) {
			r.Get("/", h.GetSpecialDates)
			r.Put("/{date}", h.PutSpecialDate)
		})

		// Pay configuration
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.GetSettings)
			r.Put("/", h.PutSettings)
		})
		r.Route("/salary", func(r chi.Router) {
			r.Get("/{year}/{month}", h.GetMonthlySalary)
			r.Put("/{year}/{month}", h.PutMonthlySalary)
		})

		// Payroll accrual query
		r.Get("/amounts", h.GetAmounts)

		// Shared roster ledger
		r.Route("/roster", func(r chi.Router) {
			r.Get("/", h.ListRoster)
			r.Post("/", h.CreateRosterEntry)
			r.Delete("/{id}", h.DeleteRosterEntry)
		})
		r.Post("/reconcile", h.Reconcile)
		r.Get("/staff/names", h.StaffNames)
	})

	return r
}
