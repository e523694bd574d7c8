package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/modestcargo/cargo-api/internal/domain"
)

// envelope is the response body shape shared by every endpoint: a "success"
// flag plus endpoint-specific keys.
type envelope map[string]any

// writeSuccess writes the envelope with success=true.
func (s *Server) writeSuccess(w http.ResponseWriter, status int, env envelope) {
	if env == nil {
		env = envelope{}
	}
	env["success"] = true
	s.writeJSON(w, status, env)
}

// writeError writes {"success": false, "message": message}.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, envelope{"success": false, "message": message})
}

// writeJSON serializes v with the proper content type. Encoding failures are
// logged; by then the status line is already on the wire.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response failed", "error", err)
	}
}

// serviceError maps a service-layer error onto the HTTP response.
// Sentinel order matters: ErrInvalidRequest wraps nothing and must be checked
// before the generic validation case.
func (s *Server) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		s.writeError(w, http.StatusBadRequest, "Invalid request")
	case errors.Is(err, domain.ErrValidation):
		s.writeError(w, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, domain.ErrUnauthorized):
		s.writeError(w, http.StatusForbidden, "Only admins and staff members can reply to quotes")
	case errors.Is(err, domain.ErrNotFound):
		s.writeError(w, http.StatusNotFound, "Not found")
	default:
		s.logger.Error("request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		s.writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// validationMessage extracts the human-readable part from a wrapped
// validation error, e.g.
// "service.QuoteService.Create: missing required fields email: validation error"
// becomes "missing required fields email".
func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "+domain.ErrValidation.Error()); i >= 0 {
		msg = msg[:i]
	}
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		msg = msg[i+2:]
	}
	return msg
}

// decodeBody decodes the request body into v. Unknown fields are left alone;
// the mutation dispatcher relies on shape detection.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}

// idParam parses the {id} route parameter as a UUID.
func idParam(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// paginationParams reads page and limit from the query string.
func paginationParams(r *http.Request) domain.PaginationParams {
	var page, limit *int
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		page = &v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		limit = &v
	}
	return domain.NewPaginationParams(page, limit)
}
