package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/modestcargo/cargo-api/spec"
)

// Routes mounts every endpoint on the given router. Middleware is the
// caller's concern; this function only knows the URL surface.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.healthz)
	r.Get("/openapi.yaml", s.openAPISpec)

	r.Route("/quote", func(r chi.Router) {
		r.Post("/", s.createQuote)
		r.Get("/", s.listQuotes)
		r.Get("/track/{trackingNumber}", s.trackQuote)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getQuote)
			r.Put("/", s.mutateQuote)
			r.Patch("/", s.editQuote)
			r.Delete("/", s.deleteQuote)
			r.Get("/waybill", s.getWaybill)
			r.Get("/waybill/download", s.downloadWaybill)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", s.listUsers)
		r.Post("/", s.createUser)
	})

	r.Route("/shipment-status", func(r chi.Router) {
		r.Get("/", s.listStatuses)
		r.Post("/", s.createStatus)
		r.Patch("/{id}", s.updateStatus)
		r.Delete("/{id}", s.deleteStatus)
	})

	r.Get("/pricing", s.getPricing)
	r.Post("/pricing", s.savePricing)

	r.Get("/message-slides", s.listPublicSlides)

	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/message-slides", s.listAllSlides)
		r.Post("/message-slides", s.createSlide)
		r.Patch("/message-slides/{id}", s.updateSlide)
		r.Delete("/message-slides/{id}", s.deleteSlide)
		r.Get("/shipment-chart", s.shipmentChart)
	})

	r.Get("/notifications", s.notifications)
	r.Post("/admin/test-email", s.testEmail)
}

// openAPISpec serves the embedded API description.
func (s *Server) openAPISpec(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(spec.OpenAPI); err != nil {
		s.logger.Error("writing openapi spec failed", "error", err)
	}
}
