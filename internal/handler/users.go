package handler

import (
	"net/http"
	"strings"

	"github.com/modestcargo/cargo-api/internal/domain"
)

// userRequest is the POST /users body.
type userRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// listUsers handles GET /users?roles=admin,staff-member. An empty filter
// defaults to both staff roles.
func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	var roles []string
	if raw := r.URL.Query().Get("roles"); raw != "" {
		for _, role := range strings.Split(raw, ",") {
			if role = strings.TrimSpace(role); role != "" {
				roles = append(roles, role)
			}
		}
	}

	users, err := s.users.ListByRoles(r.Context(), roles)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.writeSuccess(w, http.StatusOK, envelope{"users": users})
}

// createUser handles POST /users: provisioning a staff directory record.
func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := s.users.Create(r.Context(), domain.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
	})
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.writeSuccess(w, http.StatusCreated, envelope{"user": created})
}
