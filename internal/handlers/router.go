package handlers

import (
	"net/http"

	"vessels/internal/logging"
	"vessels/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires every API route. m and metricsHandler may be nil.
func NewRouter(h *Handler, m *metrics.Metrics, metricsHandler http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(h.Log))
	if m != nil {
		r.Use(m.Middleware)
	}
	r.Use(middleware.Recoverer)

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", h.PingHandler)

		r.Get("/companies", h.ListCompaniesHandler)
		r.Post("/companies", h.CreateCompanyHandler)
		r.Delete("/companies/{companyId}", h.DeleteCompanyHandler)

		r.Get("/persons", h.ListPersonsHandler)
		r.Post("/persons", h.CreatePersonHandler)
		r.Delete("/persons/{personId}", h.DeletePersonHandler)

		r.Get("/ships", h.ListShipsHandler)
		r.Post("/ships", h.CreateShipHandler)
		r.Get("/ships/{shipId}", h.GetShipHandler)
		r.Put("/ships/{shipId}", h.UpdateShipHandler)
		r.Patch("/ships/{shipId}", h.PatchShipHandler)
		r.Delete("/ships/{shipId}", h.DeleteShipHandler)
		r.Get("/ships/{shipId}/visits", h.ShipVisitsHandler)

		r.Get("/harbours", h.ListHarboursHandler)
		r.Post("/harbours", h.CreateHarbourHandler)
		r.Get("/harbours/{harbourId}/details", h.HarbourDetailsHandler)
		r.Delete("/harbours/{harbourId}", h.DeleteHarbourHandler)

		r.Get("/visits", h.ListVisitsHandler)
		r.Post("/visits", h.CreateVisitHandler)
		r.Delete("/visits/{visitId}", h.DeleteVisitHandler)
	})

	return r
}
