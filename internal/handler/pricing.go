package handler

import (
	"net/http"

	"github.com/modestcargo/cargo-api/internal/domain"
)

// getPricing handles GET /pricing. When nothing has been saved yet the
// service returns the default empty tables, so this never 404s.
func (s *Server) getPricing(w http.ResponseWriter, r *http.Request) {
	pricing, err := s.pricing.Get(r.Context())
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.writeSuccess(w, http.StatusOK, envelope{"data": pricing})
}

// savePricing handles POST /pricing.
func (s *Server) savePricing(w http.ResponseWriter, r *http.Request) {
	var req domain.Pricing
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	saved, err := s.pricing.Save(r.Context(), req)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.writeSuccess(w, http.StatusOK, envelope{
		"message": "Pricing updated",
		"data":    saved,
	})
}
