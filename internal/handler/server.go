// Package handler implements the HTTP handlers for the Modest Cargo API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (quote.go, status.go, etc.) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/modestcargo/cargo-api/internal/domain"
	"github.com/modestcargo/cargo-api/internal/service"
)

// QuoteServicer defines the business operations the quote handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type QuoteServicer interface {
	Create(ctx context.Context, quote domain.Quote) (domain.Quote, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Quote, error)
	List(ctx context.Context, p domain.PaginationParams) ([]domain.Quote, int64, error)
	Mutate(ctx context.Context, id uuid.UUID, m service.QuoteMutation) (domain.Quote, error)
	Edit(ctx context.Context, id uuid.UUID, upd domain.QuoteUpdate) (domain.Quote, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Track(ctx context.Context, trackingNumber string) (domain.TrackingInfo, error)
	Waybill(ctx context.Context, id uuid.UUID) (domain.Waybill, error)
}

// StatusServicer defines the operations for the shipment status catalog.
type StatusServicer interface {
	Create(ctx context.Context, status domain.ShipmentStatus) (domain.ShipmentStatus, error)
	List(ctx context.Context) ([]domain.ShipmentStatus, error)
	Update(ctx context.Context, id uuid.UUID, upd domain.ShipmentStatusUpdate) (domain.ShipmentStatus, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PricingServicer defines the operations for the pricing document.
type PricingServicer interface {
	Get(ctx context.Context) (domain.Pricing, error)
	Save(ctx context.Context, pricing domain.Pricing) (domain.Pricing, error)
}

// SlideServicer defines the operations for homepage message slides.
type SlideServicer interface {
	Create(ctx context.Context, slide domain.MessageSlide) (domain.MessageSlide, error)
	List(ctx context.Context, activeOnly bool) ([]domain.MessageSlide, error)
	Update(ctx context.Context, id uuid.UUID, upd domain.MessageSlideUpdate) (domain.MessageSlide, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserServicer defines the operations for the staff directory.
type UserServicer interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	ListByRoles(ctx context.Context, roles []string) ([]domain.User, error)
}

// DashboardServicer defines the dashboard aggregation operations.
type DashboardServicer interface {
	ShipmentChart(ctx context.Context) (domain.ChartData, error)
	PendingFeed(ctx context.Context) ([]domain.PendingQuote, error)
}

// WaybillRenderer produces the printable PDF for a waybill projection.
type WaybillRenderer interface {
	Render(wb domain.Waybill) ([]byte, error)
}

// TestMailer sends the probe email behind the admin test endpoint.
type TestMailer interface {
	Test(ctx context.Context, to, subject string) error
}

// Server holds the dependencies shared by every handler method.
type Server struct {
	quotes    QuoteServicer
	statuses  StatusServicer
	pricing   PricingServicer
	slides    SlideServicer
	users     UserServicer
	dashboard DashboardServicer
	pdf       WaybillRenderer
	mailer    TestMailer
	logger    *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(
	quotes QuoteServicer,
	statuses StatusServicer,
	pricing PricingServicer,
	slides SlideServicer,
	users UserServicer,
	dashboard DashboardServicer,
	pdf WaybillRenderer,
	mailer TestMailer,
	logger *slog.Logger,
) *Server {
	return &Server{
		quotes:    quotes,
		statuses:  statuses,
		pricing:   pricing,
		slides:    slides,
		users:     users,
		dashboard: dashboard,
		pdf:       pdf,
		mailer:    mailer,
		logger:    logger,
	}
}
