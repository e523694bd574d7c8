package handler

import (
	"net/http"

	"github.com/modestcargo/cargo-api/internal/domain"
)

// statusRequest is the POST /shipment-status body.
type statusRequest struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Emoji       string `json:"emoji"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
}

// statusPatchRequest is the PATCH /shipment-status/{id} body.
type statusPatchRequest struct {
	Name        *string `json:"name"`
	Color       *string `json:"color"`
	Emoji       *string `json:"emoji"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// createStatus handles POST /shipment-status.
func (s *Server) createStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	status := domain.ShipmentStatus{
		Name:        req.Name,
		Color:       req.Color,
		Emoji:       req.Emoji,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		status.IsActive = *req.IsActive
	}

	created, err := s.statuses.Create(r.Context(), status)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.writeSuccess(w, http.StatusCreated, envelope{"status": created})
}

// listStatuses handles GET /shipment-status.
func (s *Server) listStatuses(w http.ResponseWriter, r *http.Request) {
	statuses, err := s.statuses.List(r.Context())
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	if statuses == nil {
		statuses = []domain.ShipmentStatus{}
	}
	s.writeSuccess(w, http.StatusOK, envelope{"statuses": statuses})
}

// updateStatus handles PATCH /shipment-status/{id}.
func (s *Server) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid status id")
		return
	}

	var req statusPatchRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := s.statuses.Update(r.Context(), id, domain.ShipmentStatusUpdate{
		Name:        req.Name,
		Color:       req.Color,
		Emoji:       req.Emoji,
		Description: req.Description,
		IsActive:    req.IsActive,
	})
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.writeSuccess(w, http.StatusOK, envelope{"status": updated})
}

// deleteStatus handles DELETE /shipment-status/{id}.
func (s *Server) deleteStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid status id")
		return
	}

	if err := s.statuses.Delete(r.Context(), id); err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.writeSuccess(w, http.StatusOK, envelope{"message": "Status deleted"})
}
