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
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the intranet frontend

ROUTE GROUPS:
  /api/agents/*       Agent records, cycles, parameters, periods, per-agent
                      calendars, fractionation and entitlement results
  /api/cycles/*       Cycle deletion by ID
  /api/parameters/*   Parameter deletion by ID
  /api/periods/*      Period access by ID
  /api/calendar/*     Year calendars (holidays + school breaks)
  /api/scenarios/*    Demo scenarios

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
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Agent routes
		r.Route("/agents", func(r chi.Router) {
			r.Get("/", h.ListAgents)
			r.Post("/", h.SaveAgent)
			r.Get("/{id}", h.GetAgent)
			r.Delete("/{id}", h.DeleteAgent)
			r.Get("/{id}/cycles", h.ListCycles)
			r.Get("/{id}/cycles/{year}", h.GetCycle)
			r.Get("/{id}/parameters/{year}", h.GetParameters)
			r.Get("/{id}/periods/{year}", h.ListPeriods)
			r.Get("/{id}/calendar/{year}", h.GetAgentCalendar)
			r.Get("/{id}/fractionation/{year}", h.GetFractionation)
			r.Get("/{id}/entitlements/{year}", h.GetEntitlements)
		})

		// Cycle routes
		r.Route("/cycles", func(r chi.Router) {
			r.Post("/", h.SaveCycle)
			r.Delete("/{id}", h.DeleteCycle)
		})

		// Parameter routes
		r.Route("/parameters", func(r chi.Router) {
			r.Post("/", h.SaveParameters)
			r.Delete("/{id}", h.DeleteParameters)
		})

		// Period routes
		r.Route("/periods", func(r chi.Router) {
			r.Post("/", h.SavePeriod)
			r.Get("/{id}", h.GetPeriod)
			r.Delete("/{id}", h.DeletePeriod)
		})

		// Calendar routes
		r.Get("/calendar/{year}", h.GetCalendar)

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
		})
	})

	return r
}
