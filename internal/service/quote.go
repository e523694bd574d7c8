// Package service contains the business logic for the Modest Cargo API.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here; services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/modestcargo/cargo-api/internal/domain"
	"github.com/modestcargo/cargo-api/internal/notify"
	"github.com/modestcargo/cargo-api/internal/repo"
)

// maxTrackingAttempts bounds the tracking number draw. The random part has
// 100000 values per day, so exhausting this limit means either catastrophic
// volume or a broken random source.
const maxTrackingAttempts = 10

// createdEventNotes is the notes line on the status event recorded at creation.
const createdEventNotes = "Shipment created"

// QuoteMutation is the polymorphic update body accepted by the quote
// mutation endpoint. Exactly one of the three shapes applies, checked in
// order: status change, staff reply, assignment.
type QuoteMutation struct {
	Status         *string    `json:"status"`
	Message        *string    `json:"message"`
	SenderID       *uuid.UUID `json:"senderId"`
	AssignedUserID *uuid.UUID `json:"assignedUserId"`
}

// QuoteService implements business logic for the quote lifecycle.
type QuoteService struct {
	quotes   repo.QuoteRepo
	users    repo.UserRepo
	notifier notify.Notifier
	logger   *slog.Logger

	// now and randomDraw are swapped out by tests for deterministic
	// tracking numbers.
	now        func() time.Time
	randomDraw func() int
}

// NewQuoteService constructs a QuoteService.
func NewQuoteService(quotes repo.QuoteRepo, users repo.UserRepo, notifier notify.Notifier, logger *slog.Logger) *QuoteService {
	return &QuoteService{
		quotes:     quotes,
		users:      users,
		notifier:   notifier,
		logger:     logger,
		now:        time.Now,
		randomDraw: func() int { return rand.Intn(100000) },
	}
}

// notify runs a notification call and logs the failure instead of propagating
// it. Email delivery never fails the mutation that triggered it.
func (s *QuoteService) notify(ctx context.Context, event string, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		s.logger.Error("notification failed", "event", event, "error", err)
	}
}

// trackingCandidate draws one MC-YYYYMMDD-XXXXX candidate for the current date.
func (s *QuoteService) trackingCandidate() string {
	t := s.now().UTC()
	return domain.FormatTrackingNumber(t.Year(), int(t.Month()), t.Day(), s.randomDraw())
}

// Create validates and persists a new quote request.
// The tracking number is drawn randomly and probed for uniqueness; the unique
// index is the authoritative guard, so a lost race surfaces as
// domain.ErrConflict from the repo and triggers a redraw.
func (s *QuoteService) Create(ctx context.Context, quote domain.Quote) (domain.Quote, error) {
	if err := validateQuote(quote); err != nil {
		return domain.Quote{}, err
	}
	quote.Status = domain.StatusPending

	var (
		created domain.Quote
		err     error
	)
	for attempt := 0; attempt < maxTrackingAttempts; attempt++ {
		quote.TrackingNumber = s.trackingCandidate()

		exists, probeErr := s.quotes.TrackingNumberExists(ctx, quote.TrackingNumber)
		if probeErr != nil {
			return domain.Quote{}, fmt.Errorf("service.QuoteService.Create: %w", probeErr)
		}
		if exists {
			continue
		}

		created, err = s.quotes.Create(ctx, quote)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrConflict) {
			return domain.Quote{}, fmt.Errorf("service.QuoteService.Create: %w", err)
		}
	}
	if err != nil || created.ID == uuid.Nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.Create: could not allocate a unique tracking number after %d attempts", maxTrackingAttempts)
	}

	event := domain.StatusEvent{
		QuoteID: created.ID,
		Status:  created.Status,
		Notes:   createdEventNotes,
	}
	if err := s.quotes.AddStatusEvent(ctx, event); err != nil {
		s.logger.Error("recording creation status event failed", "quoteId", created.ID, "error", err)
	}

	s.notify(ctx, "quote created", func(ctx context.Context) error {
		return s.notifier.QuoteCreated(ctx, created)
	})
	return created, nil
}

// GetByID returns a single quote with its reply thread.
func (s *QuoteService) GetByID(ctx context.Context, id uuid.UUID) (domain.Quote, error) {
	quote, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.GetByID: %w", err)
	}
	return quote, nil
}

// List returns one page of quotes, newest first, with the total count.
func (s *QuoteService) List(ctx context.Context, p domain.PaginationParams) ([]domain.Quote, int64, error) {
	quotes, total, err := s.quotes.List(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.QuoteService.List: %w", err)
	}
	return quotes, total, nil
}

// Mutate applies one of the three recognized mutation shapes, checked in
// order: status change, staff reply, assignment. A body matching none of them
// is domain.ErrInvalidRequest.
func (s *QuoteService) Mutate(ctx context.Context, id uuid.UUID, m QuoteMutation) (domain.Quote, error) {
	switch {
	case m.Status != nil:
		return s.changeStatus(ctx, id, *m.Status)
	case m.Message != nil && m.SenderID != nil:
		return s.reply(ctx, id, *m.SenderID, *m.Message)
	case m.AssignedUserID != nil:
		return s.assign(ctx, id, *m.AssignedUserID)
	default:
		return domain.Quote{}, domain.ErrInvalidRequest
	}
}

// changeStatus overwrites the quote's status, records a history entry, and
// notifies the customer.
func (s *QuoteService) changeStatus(ctx context.Context, id uuid.UUID, status string) (domain.Quote, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.Mutate: status must not be empty: %w", domain.ErrValidation)
	}

	before, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.Mutate: %w", err)
	}

	updated, err := s.quotes.UpdateStatus(ctx, id, status)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.Mutate: %w", err)
	}
	updated.Replies = before.Replies

	if err := s.quotes.AddStatusEvent(ctx, domain.StatusEvent{QuoteID: id, Status: status}); err != nil {
		s.logger.Error("recording status event failed", "quoteId", id, "error", err)
	}

	if before.Status != status {
		s.notify(ctx, "status changed", func(ctx context.Context) error {
			return s.notifier.StatusChanged(ctx, updated, before.Status, status)
		})
	}
	return updated, nil
}

// reply appends a staff reply to the thread and forces the quote into status
// "quoted". Only admins and staff members may reply.
func (s *QuoteService) reply(ctx context.Context, id, senderID uuid.UUID, message string) (domain.Quote, error) {
	if strings.TrimSpace(message) == "" {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.Mutate: message must not be empty: %w", domain.ErrValidation)
	}

	sender, err := s.users.GetByID(ctx, senderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Quote{}, fmt.Errorf("service.QuoteService.Mutate: unknown sender: %w", domain.ErrUnauthorized)
		}
		return domain.Quote{}, fmt.Errorf("service.QuoteService.Mutate: %w", err)
	}
	if !sender.CanReply() {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.Mutate: role %q may not reply: %w", sender.Role, domain.ErrUnauthorized)
	}

	before, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.Mutate: %w", err)
	}

	reply := domain.Reply{
		QuoteID:    id,
		Sender:     sender.ID,
		SenderName: sender.Name(),
		Message:    message,
	}
	saved, err := s.quotes.AppendReply(ctx, reply)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.Mutate: %w", err)
	}

	updated, err := s.quotes.UpdateStatus(ctx, id, domain.StatusQuoted)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.Mutate: %w", err)
	}
	updated.Replies = append(before.Replies, saved)

	if before.Status != domain.StatusQuoted {
		if err := s.quotes.AddStatusEvent(ctx, domain.StatusEvent{QuoteID: id, Status: domain.StatusQuoted}); err != nil {
			s.logger.Error("recording status event failed", "quoteId", id, "error", err)
		}
	}

	s.notify(ctx, "reply added", func(ctx context.Context) error {
		return s.notifier.ReplyAdded(ctx, updated, saved)
	})
	return updated, nil
}

// assign hands the quote to a staff member and notifies them.
func (s *QuoteService) assign(ctx context.Context, id, userID uuid.UUID) (domain.Quote, error) {
	assignee, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Quote{}, fmt.Errorf("service.QuoteService.Mutate: unknown assignee: %w", domain.ErrValidation)
		}
		return domain.Quote{}, fmt.Errorf("service.QuoteService.Mutate: %w", err)
	}

	updated, err := s.quotes.Assign(ctx, id, userID)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.Mutate: %w", err)
	}
	updated.Assignee = &assignee

	s.notify(ctx, "quote assigned", func(ctx context.Context) error {
		return s.notifier.Assigned(ctx, updated, assignee)
	})
	return updated, nil
}

// Edit overwrites the fields set in upd and notifies both parties about what
// changed. The tracking number is immutable; QuoteUpdate cannot carry it.
func (s *QuoteService) Edit(ctx context.Context, id uuid.UUID, upd domain.QuoteUpdate) (domain.Quote, error) {
	before, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.Edit: %w", err)
	}

	updated, err := s.quotes.Update(ctx, id, upd)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("service.QuoteService.Edit: %w", err)
	}
	updated.Replies = before.Replies

	changed := changedFields(before, upd)
	if len(changed) > 0 {
		s.notify(ctx, "quote edited", func(ctx context.Context) error {
			return s.notifier.QuoteEdited(ctx, updated, changed)
		})
	}
	return updated, nil
}

// Delete removes a quote and sends the cancellation emails. The repo returns
// the deleted record so the customer can still be reached.
func (s *QuoteService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.quotes.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("service.QuoteService.Delete: %w", err)
	}

	s.notify(ctx, "quote deleted", func(ctx context.Context) error {
		return s.notifier.QuoteDeleted(ctx, deleted)
	})
	return nil
}

// Track resolves a tracking number to the public tracking view. A number that
// does not match the MC-YYYYMMDD-XXXXX format can never match a shipment, so
// it is reported as not found without touching the database.
func (s *QuoteService) Track(ctx context.Context, trackingNumber string) (domain.TrackingInfo, error) {
	trackingNumber = strings.ToUpper(strings.TrimSpace(trackingNumber))
	if !domain.TrackingNumberPattern.MatchString(trackingNumber) {
		return domain.TrackingInfo{}, fmt.Errorf("service.QuoteService.Track: malformed tracking number: %w", domain.ErrNotFound)
	}

	quote, err := s.quotes.GetByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return domain.TrackingInfo{}, fmt.Errorf("service.QuoteService.Track: %w", err)
	}

	history, err := s.statusHistory(ctx, quote)
	if err != nil {
		return domain.TrackingInfo{}, fmt.Errorf("service.QuoteService.Track: %w", err)
	}

	return domain.TrackingInfo{
		TrackingNumber:    quote.TrackingNumber,
		Status:            quote.Status,
		FullName:          quote.FullName,
		PickupLocation:    quote.PickupLocation,
		DeliveryLocation:  quote.DeliveryLocation,
		ServiceType:       quote.ServiceType,
		EstimatedDelivery: quote.PreferredDeliveryDate,
		History:           history,
		CreatedAt:         quote.CreatedAt,
		UpdatedAt:         quote.UpdatedAt,
	}, nil
}

// Waybill builds the read-only waybill view for a quote. Nothing is persisted;
// the document is derived from the quote record every time.
func (s *QuoteService) Waybill(ctx context.Context, id uuid.UUID) (domain.Waybill, error) {
	quote, err := s.quotes.GetByID(ctx, id)
	if err != nil {
		return domain.Waybill{}, fmt.Errorf("service.QuoteService.Waybill: %w", err)
	}

	history, err := s.statusHistory(ctx, quote)
	if err != nil {
		return domain.Waybill{}, fmt.Errorf("service.QuoteService.Waybill: %w", err)
	}

	events := make([]domain.WaybillEvent, 0, len(history))
	for _, ev := range history {
		events = append(events, domain.WaybillEvent{
			Status:    ev.Status,
			Location:  eventLocation(quote, ev.Status),
			Timestamp: ev.Timestamp,
		})
	}

	cargo := quote.Description
	if cargo == "" {
		cargo = quote.CargoType
	}

	return domain.Waybill{
		WaybillNumber:    domain.WaybillNumber(quote.ID),
		TrackingNumber:   quote.TrackingNumber,
		Status:           quote.Status,
		SenderName:       quote.FullName,
		SenderAddress:    quote.PickupLocation,
		SenderPhone:      quote.Phone,
		ReceiverName:     quote.FullName,
		ReceiverAddress:  quote.DeliveryLocation,
		ReceiverPhone:    quote.Phone,
		CargoDescription: cargo,
		Weight:           quote.Weight,
		Dimensions:       "N/A",
		ServiceType:      quote.ServiceType,
		TrackingHistory:  events,
		CreatedAt:        quote.CreatedAt,
		UpdatedAt:        quote.UpdatedAt,
	}, nil
}

// statusHistory loads the recorded history, falling back to a single
// synthetic creation entry for quotes that predate event recording.
func (s *QuoteService) statusHistory(ctx context.Context, quote domain.Quote) ([]domain.StatusEvent, error) {
	events, err := s.quotes.ListStatusEvents(ctx, quote.ID)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		events = []domain.StatusEvent{{
			QuoteID:   quote.ID,
			Status:    quote.Status,
			Notes:     createdEventNotes,
			Timestamp: quote.CreatedAt,
		}}
	}
	return events, nil
}

// eventLocation picks the location shown on a waybill history line. Delivered
// events show the destination; everything earlier shows the origin.
func eventLocation(quote domain.Quote, status string) string {
	if strings.EqualFold(status, "delivered") {
		return quote.DeliveryLocation
	}
	return quote.PickupLocation
}

// validateQuote checks the required fields on a new quote request.
func validateQuote(q domain.Quote) error {
	required := []struct {
		field string
		value string
	}{
		{"fullName", q.FullName},
		{"email", q.Email},
		{"pickupLocation", q.PickupLocation},
		{"deliveryLocation", q.DeliveryLocation},
		{"serviceType", q.ServiceType},
	}

	missing := []string{}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.field)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields %s: %w", strings.Join(missing, ", "), domain.ErrValidation)
	}
	return nil
}

// changedFields diffs an update against the stored record, returning the JSON
// field names that actually changed mapped to their new display values.
func changedFields(before domain.Quote, upd domain.QuoteUpdate) map[string]string {
	changed := map[string]string{}

	setStr := func(name string, p *string, old string) {
		if p != nil && *p != old {
			changed[name] = *p
		}
	}
	setStr("fullName", upd.FullName, before.FullName)
	setStr("email", upd.Email, before.Email)
	setStr("phone", upd.Phone, before.Phone)
	setStr("company", upd.Company, before.Company)
	setStr("pickupLocation", upd.PickupLocation, before.PickupLocation)
	setStr("deliveryLocation", upd.DeliveryLocation, before.DeliveryLocation)
	setStr("serviceType", upd.ServiceType, before.ServiceType)
	setStr("cargoType", upd.CargoType, before.CargoType)
	setStr("description", upd.Description, before.Description)

	if upd.Weight != nil && *upd.Weight != before.Weight {
		changed["weight"] = fmt.Sprintf("%g", *upd.Weight)
	}
	if upd.Quantity != nil && *upd.Quantity != before.Quantity {
		changed["quantity"] = fmt.Sprintf("%d", *upd.Quantity)
	}
	if upd.PreferredDeliveryDate != nil {
		old := before.PreferredDeliveryDate
		if old == nil || !old.Equal(*upd.PreferredDeliveryDate) {
			changed["preferredDeliveryDate"] = upd.PreferredDeliveryDate.Format("2006-01-02")
		}
	}
	return changed
}
