package handler

import (
	"net/http"

	"github.com/modestcargo/cargo-api/internal/domain"
)

// slideRequest is the POST /dashboard/message-slides body.
type slideRequest struct {
	Message   string `json:"message"`
	IsActive  *bool  `json:"isActive"`
	SortOrder int    `json:"order"`
}

// slidePatchRequest is the PATCH /dashboard/message-slides/{id} body.
type slidePatchRequest struct {
	Message   *string `json:"message"`
	IsActive  *bool   `json:"isActive"`
	SortOrder *int    `json:"order"`
}

// listPublicSlides handles GET /message-slides: active slides only, in
// display order, for the marketing homepage.
func (s *Server) listPublicSlides(w http.ResponseWriter, r *http.Request) {
	slides, err := s.slides.List(r.Context(), true)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	if slides == nil {
		slides = []domain.MessageSlide{}
	}
	s.writeSuccess(w, http.StatusOK, envelope{"data": slides})
}

// listAllSlides handles GET /dashboard/message-slides: the full set,
// inactive slides included, for the dashboard editor.
func (s *Server) listAllSlides(w http.ResponseWriter, r *http.Request) {
	slides, err := s.slides.List(r.Context(), false)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	if slides == nil {
		slides = []domain.MessageSlide{}
	}
	s.writeSuccess(w, http.StatusOK, envelope{"data": slides})
}

// createSlide handles POST /dashboard/message-slides.
func (s *Server) createSlide(w http.ResponseWriter, r *http.Request) {
	var req slideRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	slide := domain.MessageSlide{
		Message:   req.Message,
		IsActive:  true,
		SortOrder: req.SortOrder,
	}
	if req.IsActive != nil {
		slide.IsActive = *req.IsActive
	}

	created, err := s.slides.Create(r.Context(), slide)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.writeSuccess(w, http.StatusCreated, envelope{"data": created})
}

// updateSlide handles PATCH /dashboard/message-slides/{id}.
func (s *Server) updateSlide(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid slide id")
		return
	}

	var req slidePatchRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := s.slides.Update(r.Context(), id, domain.MessageSlideUpdate{
		Message:   req.Message,
		IsActive:  req.IsActive,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.writeSuccess(w, http.StatusOK, envelope{"data": updated})
}

// deleteSlide handles DELETE /dashboard/message-slides/{id}.
func (s *Server) deleteSlide(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid slide id")
		return
	}

	if err := s.slides.Delete(r.Context(), id); err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.writeSuccess(w, http.StatusOK, envelope{"message": "Slide deleted"})
}
