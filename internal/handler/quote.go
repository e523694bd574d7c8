package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/modestcargo/cargo-api/internal/domain"
	"github.com/modestcargo/cargo-api/internal/service"
)

// quoteRequest is the POST /quote body.
type quoteRequest struct {
	FullName              string  `json:"fullName"`
	Email                 string  `json:"email"`
	Phone                 string  `json:"phone"`
	Company               string  `json:"company"`
	PickupLocation        string  `json:"pickupLocation"`
	DeliveryLocation      string  `json:"deliveryLocation"`
	ServiceType           string  `json:"serviceType"`
	CargoType             string  `json:"cargoType"`
	Weight                float64 `json:"weight"`
	Quantity              int     `json:"quantity"`
	Description           string  `json:"description"`
	PreferredDeliveryDate string  `json:"preferredDeliveryDate"`
}

// quotePatchRequest is the PATCH /quote/{id} body. Absent fields stay nil and
// leave the stored value unchanged.
type quotePatchRequest struct {
	FullName              *string  `json:"fullName"`
	Email                 *string  `json:"email"`
	Phone                 *string  `json:"phone"`
	Company               *string  `json:"company"`
	PickupLocation        *string  `json:"pickupLocation"`
	DeliveryLocation      *string  `json:"deliveryLocation"`
	ServiceType           *string  `json:"serviceType"`
	CargoType             *string  `json:"cargoType"`
	Weight                *float64 `json:"weight"`
	Quantity              *int     `json:"quantity"`
	Description           *string  `json:"description"`
	PreferredDeliveryDate *string  `json:"preferredDeliveryDate"`
}

// parseDeliveryDate accepts the date-only form the quote form submits as well
// as a full timestamp.
func parseDeliveryDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
}

// createQuote handles POST /quote.
func (s *Server) createQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	date, err := parseDeliveryDate(req.PreferredDeliveryDate)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	quote := domain.Quote{
		FullName:              req.FullName,
		Email:                 req.Email,
		Phone:                 req.Phone,
		Company:               req.Company,
		PickupLocation:        req.PickupLocation,
		DeliveryLocation:      req.DeliveryLocation,
		ServiceType:           req.ServiceType,
		CargoType:             req.CargoType,
		Weight:                req.Weight,
		Quantity:              req.Quantity,
		Description:           req.Description,
		PreferredDeliveryDate: date,
	}

	created, err := s.quotes.Create(r.Context(), quote)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.writeSuccess(w, http.StatusCreated, envelope{"quote": created})
}

// listQuotes handles GET /quote.
func (s *Server) listQuotes(w http.ResponseWriter, r *http.Request) {
	p := paginationParams(r)

	quotes, total, err := s.quotes.List(r.Context(), p)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	if quotes == nil {
		quotes = []domain.Quote{}
	}
	s.writeSuccess(w, http.StatusOK, envelope{
		"quotes": quotes,
		"total":  total,
		"page":   p.Page,
		"limit":  p.Limit,
	})
}

// getQuote handles GET /quote/{id}.
func (s *Server) getQuote(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid quote id")
		return
	}

	quote, err := s.quotes.GetByID(r.Context(), id)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.writeSuccess(w, http.StatusOK, envelope{"quote": quote})
}

// mutateQuote handles PUT /quote/{id}: a status change, staff reply, or
// assignment depending on which fields the body carries.
func (s *Server) mutateQuote(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid quote id")
		return
	}

	var m service.QuoteMutation
	if err := decodeBody(r, &m); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	quote, err := s.quotes.Mutate(r.Context(), id, m)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.writeSuccess(w, http.StatusOK, envelope{"quote": quote})
}

// editQuote handles PATCH /quote/{id}.
func (s *Server) editQuote(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid quote id")
		return
	}

	var req quotePatchRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	upd := domain.QuoteUpdate{
		FullName:         req.FullName,
		Email:            req.Email,
		Phone:            req.Phone,
		Company:          req.Company,
		PickupLocation:   req.PickupLocation,
		DeliveryLocation: req.DeliveryLocation,
		ServiceType:      req.ServiceType,
		CargoType:        req.CargoType,
		Weight:           req.Weight,
		Quantity:         req.Quantity,
		Description:      req.Description,
	}
	if req.PreferredDeliveryDate != nil {
		date, err := parseDeliveryDate(*req.PreferredDeliveryDate)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		upd.PreferredDeliveryDate = date
	}

	quote, err := s.quotes.Edit(r.Context(), id, upd)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.writeSuccess(w, http.StatusOK, envelope{"quote": quote})
}

// deleteQuote handles DELETE /quote/{id}.
func (s *Server) deleteQuote(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid quote id")
		return
	}

	if err := s.quotes.Delete(r.Context(), id); err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.writeSuccess(w, http.StatusOK, envelope{"message": "Quote deleted"})
}

// trackQuote handles GET /quote/track/{trackingNumber}, the public endpoint.
// The not-found message names the tracking number context so the tracking
// page can show it verbatim.
func (s *Server) trackQuote(w http.ResponseWriter, r *http.Request) {
	info, err := s.quotes.Track(r.Context(), chi.URLParam(r, "trackingNumber"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "Shipment not found with this tracking number")
			return
		}
		s.serviceError(w, r, err)
		return
	}
	s.writeSuccess(w, http.StatusOK, envelope{"shipment": info})
}

// getWaybill handles GET /quote/{id}/waybill.
func (s *Server) getWaybill(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid quote id")
		return
	}

	wb, err := s.quotes.Waybill(r.Context(), id)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	s.writeSuccess(w, http.StatusOK, envelope{"data": wb})
}

// downloadWaybill handles GET /quote/{id}/waybill/download.
func (s *Server) downloadWaybill(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid quote id")
		return
	}

	wb, err := s.quotes.Waybill(r.Context(), id)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	pdf, err := s.pdf.Render(wb)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", wb.WaybillNumber+".pdf"))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		s.logger.Error("writing waybill pdf failed", "error", err)
	}
}
