package handler

import "net/http"

// shipmentChart handles GET /dashboard/shipment-chart.
func (s *Server) shipmentChart(w http.ResponseWriter, r *http.Request) {
	chart, err := s.dashboard.ShipmentChart(r.Context())
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.writeSuccess(w, http.StatusOK, envelope{"data": chart})
}

// notifications handles GET /notifications: the dashboard bell feed of
// quotes still awaiting review.
func (s *Server) notifications(w http.ResponseWriter, r *http.Request) {
	pending, err := s.dashboard.PendingFeed(r.Context())
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.writeSuccess(w, http.StatusOK, envelope{
		"totalNotifications": len(pending),
		"pendingQuotes":      pending,
	})
}
