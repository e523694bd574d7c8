package handler

import "net/http"

// healthz handles GET /healthz. It reports process liveness only; database
// connectivity is checked at startup, not per request.
func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
