package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", h.Health)

	r.Route("/payments", func(r chi.Router) {
		r.Post("/", h.CreatePayment)
		r.Post("/batch", h.CreateBatchPayments)
		r.Get("/", h.GetAllPayments)
		r.Get("/{paymentID}", h.GetPayment)
		r.Put("/{paymentID}", h.UpdatePayment)
		r.Delete("/{paymentID}", h.DeletePayment)
	})

	// Anything outside the table above is a uniform 404 envelope.
	r.NotFound(routeNotFound)
	r.MethodNotAllowed(routeNotFound)

	return r
}

func routeNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Route not found")
}
