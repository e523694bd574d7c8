package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/modestcargo/cargo-api/internal/domain"
	"github.com/modestcargo/cargo-api/internal/handler"
	"github.com/modestcargo/cargo-api/internal/service"
)

// mockQuoteService implements handler.QuoteServicer with overridable behavior
// per test case.
type mockQuoteService struct {
	createFn  func(ctx context.Context, quote domain.Quote) (domain.Quote, error)
	getByIDFn func(ctx context.Context, id uuid.UUID) (domain.Quote, error)
	listFn    func(ctx context.Context, p domain.PaginationParams) ([]domain.Quote, int64, error)
	mutateFn  func(ctx context.Context, id uuid.UUID, m service.QuoteMutation) (domain.Quote, error)
	editFn    func(ctx context.Context, id uuid.UUID, upd domain.QuoteUpdate) (domain.Quote, error)
	deleteFn  func(ctx context.Context, id uuid.UUID) error
	trackFn   func(ctx context.Context, trackingNumber string) (domain.TrackingInfo, error)
	waybillFn func(ctx context.Context, id uuid.UUID) (domain.Waybill, error)
}

var _ handler.QuoteServicer = (*mockQuoteService)(nil)

func (m *mockQuoteService) Create(ctx context.Context, quote domain.Quote) (domain.Quote, error) {
	return m.createFn(ctx, quote)
}

func (m *mockQuoteService) GetByID(ctx context.Context, id uuid.UUID) (domain.Quote, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockQuoteService) List(ctx context.Context, p domain.PaginationParams) ([]domain.Quote, int64, error) {
	return m.listFn(ctx, p)
}

func (m *mockQuoteService) Mutate(ctx context.Context, id uuid.UUID, mut service.QuoteMutation) (domain.Quote, error) {
	return m.mutateFn(ctx, id, mut)
}

func (m *mockQuoteService) Edit(ctx context.Context, id uuid.UUID, upd domain.QuoteUpdate) (domain.Quote, error) {
	return m.editFn(ctx, id, upd)
}

func (m *mockQuoteService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func (m *mockQuoteService) Track(ctx context.Context, trackingNumber string) (domain.TrackingInfo, error) {
	return m.trackFn(ctx, trackingNumber)
}

func (m *mockQuoteService) Waybill(ctx context.Context, id uuid.UUID) (domain.Waybill, error) {
	return m.waybillFn(ctx, id)
}

type mockStatusService struct {
	createFn func(ctx context.Context, status domain.ShipmentStatus) (domain.ShipmentStatus, error)
	listFn   func(ctx context.Context) ([]domain.ShipmentStatus, error)
	updateFn func(ctx context.Context, id uuid.UUID, upd domain.ShipmentStatusUpdate) (domain.ShipmentStatus, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

var _ handler.StatusServicer = (*mockStatusService)(nil)

func (m *mockStatusService) Create(ctx context.Context, status domain.ShipmentStatus) (domain.ShipmentStatus, error) {
	return m.createFn(ctx, status)
}

func (m *mockStatusService) List(ctx context.Context) ([]domain.ShipmentStatus, error) {
	return m.listFn(ctx)
}

func (m *mockStatusService) Update(ctx context.Context, id uuid.UUID, upd domain.ShipmentStatusUpdate) (domain.ShipmentStatus, error) {
	return m.updateFn(ctx, id, upd)
}

func (m *mockStatusService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

type mockPricingService struct {
	getFn  func(ctx context.Context) (domain.Pricing, error)
	saveFn func(ctx context.Context, pricing domain.Pricing) (domain.Pricing, error)
}

var _ handler.PricingServicer = (*mockPricingService)(nil)

func (m *mockPricingService) Get(ctx context.Context) (domain.Pricing, error) {
	return m.getFn(ctx)
}

func (m *mockPricingService) Save(ctx context.Context, pricing domain.Pricing) (domain.Pricing, error) {
	return m.saveFn(ctx, pricing)
}

type mockSlideService struct {
	createFn func(ctx context.Context, slide domain.MessageSlide) (domain.MessageSlide, error)
	listFn   func(ctx context.Context, activeOnly bool) ([]domain.MessageSlide, error)
	updateFn func(ctx context.Context, id uuid.UUID, upd domain.MessageSlideUpdate) (domain.MessageSlide, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

var _ handler.SlideServicer = (*mockSlideService)(nil)

func (m *mockSlideService) Create(ctx context.Context, slide domain.MessageSlide) (domain.MessageSlide, error) {
	return m.createFn(ctx, slide)
}

func (m *mockSlideService) List(ctx context.Context, activeOnly bool) ([]domain.MessageSlide, error) {
	return m.listFn(ctx, activeOnly)
}

func (m *mockSlideService) Update(ctx context.Context, id uuid.UUID, upd domain.MessageSlideUpdate) (domain.MessageSlide, error) {
	return m.updateFn(ctx, id, upd)
}

func (m *mockSlideService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

type mockUserService struct {
	createFn      func(ctx context.Context, user domain.User) (domain.User, error)
	listByRolesFn func(ctx context.Context, roles []string) ([]domain.User, error)
}

var _ handler.UserServicer = (*mockUserService)(nil)

func (m *mockUserService) Create(ctx context.Context, user domain.User) (domain.User, error) {
	return m.createFn(ctx, user)
}

func (m *mockUserService) ListByRoles(ctx context.Context, roles []string) ([]domain.User, error) {
	return m.listByRolesFn(ctx, roles)
}

type mockDashboardService struct {
	chartFn   func(ctx context.Context) (domain.ChartData, error)
	pendingFn func(ctx context.Context) ([]domain.PendingQuote, error)
}

var _ handler.DashboardServicer = (*mockDashboardService)(nil)

func (m *mockDashboardService) ShipmentChart(ctx context.Context) (domain.ChartData, error) {
	return m.chartFn(ctx)
}

func (m *mockDashboardService) PendingFeed(ctx context.Context) ([]domain.PendingQuote, error) {
	return m.pendingFn(ctx)
}

type mockRenderer struct {
	renderFn func(wb domain.Waybill) ([]byte, error)
}

var _ handler.WaybillRenderer = (*mockRenderer)(nil)

func (m *mockRenderer) Render(wb domain.Waybill) ([]byte, error) {
	return m.renderFn(wb)
}

type mockMailer struct {
	testFn func(ctx context.Context, to, subject string) error
}

var _ handler.TestMailer = (*mockMailer)(nil)

func (m *mockMailer) Test(ctx context.Context, to, subject string) error {
	return m.testFn(ctx, to, subject)
}

// serverMocks bundles every dependency so tests only fill in what they use.
type serverMocks struct {
	quotes    *mockQuoteService
	statuses  *mockStatusService
	pricing   *mockPricingService
	slides    *mockSlideService
	users     *mockUserService
	dashboard *mockDashboardService
	pdf       *mockRenderer
	mailer    *mockMailer
}

// newTestRouter mounts a Server built from the given mocks on a chi router.
// Nil mocks are replaced with empty ones; calling an unset method panics,
// which fails the test loudly.
func newTestRouter(m serverMocks) http.Handler {
	if m.quotes == nil {
		m.quotes = &mockQuoteService{}
	}
	if m.statuses == nil {
		m.statuses = &mockStatusService{}
	}
	if m.pricing == nil {
		m.pricing = &mockPricingService{}
	}
	if m.slides == nil {
		m.slides = &mockSlideService{}
	}
	if m.users == nil {
		m.users = &mockUserService{}
	}
	if m.dashboard == nil {
		m.dashboard = &mockDashboardService{}
	}
	if m.pdf == nil {
		m.pdf = &mockRenderer{}
	}
	if m.mailer == nil {
		m.mailer = &mockMailer{}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := handler.NewServer(m.quotes, m.statuses, m.pricing, m.slides,
		m.users, m.dashboard, m.pdf, m.mailer, logger)

	r := chi.NewRouter()
	srv.Routes(r)
	return r
}

// doJSON performs a request with an optional JSON body and returns the recorder.
func doJSON(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeEnvelope parses the response body into a generic map.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var env map[string]any
	require.NoError(t, json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&env))
	return env
}
