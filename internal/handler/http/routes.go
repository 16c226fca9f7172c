package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/placerhq/placer-server/models"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withCORS)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/places/{pid}", h.getPlaceByID)
		r.Get("/api/places/user/{uid}", h.getPlacesByUser)

		r.Get("/api/users", h.getUsers)
		r.Post("/api/users/signup", h.signup)
		r.Post("/api/users/login", h.login)

		r.Get("/uploads/images/{file}", h.serveImage)
	})

	// routes behind the bearer token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/places", h.createPlace)
		r.Patch("/api/places/{pid}", h.updatePlace)
		r.Delete("/api/places/{pid}", h.deletePlace)
	})

	router.NotFound(routeNotFound)
	router.MethodNotAllowed(routeNotFound)

	return router
}

// routeNotFound answers every unmatched route, and every matched route hit
// with the wrong method, with the same 404 body.
func routeNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, models.NewHTTPError("Could not find this route", http.StatusNotFound))
}
