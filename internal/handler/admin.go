package handler

import "net/http"

// testEmailRequest is the POST /admin/test-email body.
type testEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
}

// testEmail handles POST /admin/test-email: a credential probe for the email
// provider. Unlike lifecycle notifications, a delivery failure here is the
// whole point of the call and surfaces as an error response.
func (s *Server) testEmail(w http.ResponseWriter, r *http.Request) {
	var req testEmailRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.To == "" {
		s.writeError(w, http.StatusBadRequest, "Recipient is required")
		return
	}

	if err := s.mailer.Test(r.Context(), req.To, req.Subject); err != nil {
		s.logger.Error("test email failed", "to", req.To, "error", err)
		s.writeError(w, http.StatusBadGateway, "Email delivery failed")
		return
	}
	s.writeSuccess(w, http.StatusOK, envelope{"message": "Test email sent"})
}
