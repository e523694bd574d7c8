package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modestcargo/cargo-api/internal/domain"
	"github.com/modestcargo/cargo-api/internal/service"
)

func TestCreateQuote_Returns201WithEnvelope(t *testing.T) {
	created := domain.Quote{
		ID:             uuid.New(),
		TrackingNumber: "MC-20260314-00042",
		FullName:       "Ada Obi",
		Status:         domain.StatusPending,
	}
	h := newTestRouter(serverMocks{quotes: &mockQuoteService{
		createFn: func(_ context.Context, q domain.Quote) (domain.Quote, error) {
			assert.Equal(t, "Ada Obi", q.FullName)
			require.NotNil(t, q.PreferredDeliveryDate)
			assert.Equal(t, "2026-04-01", q.PreferredDeliveryDate.Format("2006-01-02"))
			return created, nil
		},
	}})

	rec := doJSON(t, h, http.MethodPost, "/quote", `{
		"fullName": "Ada Obi",
		"email": "ada@example.com",
		"pickupLocation": "Houston, TX",
		"deliveryLocation": "Lagos, Nigeria",
		"serviceType": "Air Freight",
		"preferredDeliveryDate": "2026-04-01"
	}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, true, env["success"])
	quote, ok := env["quote"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "MC-20260314-00042", quote["trackingNumber"])
}

func TestCreateQuote_ValidationErrorIs400(t *testing.T) {
	h := newTestRouter(serverMocks{quotes: &mockQuoteService{
		createFn: func(context.Context, domain.Quote) (domain.Quote, error) {
			return domain.Quote{}, fmt.Errorf("service.QuoteService.Create: missing required fields: email: %w", domain.ErrValidation)
		},
	}})

	rec := doJSON(t, h, http.MethodPost, "/quote", `{"fullName": "Ada Obi"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, false, env["success"])
	assert.Contains(t, env["message"], "email")
}

func TestCreateQuote_MalformedDateIs400(t *testing.T) {
	h := newTestRouter(serverMocks{})

	rec := doJSON(t, h, http.MethodPost, "/quote", `{"preferredDeliveryDate": "next tuesday"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListQuotes_IncludesPagination(t *testing.T) {
	h := newTestRouter(serverMocks{quotes: &mockQuoteService{
		listFn: func(_ context.Context, p domain.PaginationParams) ([]domain.Quote, int64, error) {
			assert.Equal(t, 2, p.Page)
			assert.Equal(t, 5, p.Limit)
			return []domain.Quote{{TrackingNumber: "MC-20260314-00042"}}, 11, nil
		},
	}})

	rec := doJSON(t, h, http.MethodGet, "/quote?page=2&limit=5", "")

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, float64(11), env["total"])
	assert.Equal(t, float64(2), env["page"])
	assert.Equal(t, float64(5), env["limit"])
}

func TestGetQuote_NotFoundIs404(t *testing.T) {
	h := newTestRouter(serverMocks{quotes: &mockQuoteService{
		getByIDFn: func(context.Context, uuid.UUID) (domain.Quote, error) {
			return domain.Quote{}, domain.ErrNotFound
		},
	}})

	rec := doJSON(t, h, http.MethodGet, "/quote/"+uuid.NewString(), "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Not found", env["message"])
}

func TestGetQuote_BadUUIDIs400(t *testing.T) {
	h := newTestRouter(serverMocks{})

	rec := doJSON(t, h, http.MethodGet, "/quote/not-a-uuid", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMutateQuote_PassesBodyThrough(t *testing.T) {
	id := uuid.New()
	h := newTestRouter(serverMocks{quotes: &mockQuoteService{
		mutateFn: func(_ context.Context, gotID uuid.UUID, m service.QuoteMutation) (domain.Quote, error) {
			assert.Equal(t, id, gotID)
			require.NotNil(t, m.Status)
			assert.Equal(t, "in transit", *m.Status)
			assert.Nil(t, m.Message)
			return domain.Quote{ID: id, Status: "in transit"}, nil
		},
	}})

	rec := doJSON(t, h, http.MethodPut, "/quote/"+id.String(), `{"status": "in transit"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	quote := env["quote"].(map[string]any)
	assert.Equal(t, "in transit", quote["status"])
}

func TestMutateQuote_UnrecognizedShapeIs400(t *testing.T) {
	h := newTestRouter(serverMocks{quotes: &mockQuoteService{
		mutateFn: func(context.Context, uuid.UUID, service.QuoteMutation) (domain.Quote, error) {
			return domain.Quote{}, domain.ErrInvalidRequest
		},
	}})

	rec := doJSON(t, h, http.MethodPut, "/quote/"+uuid.NewString(), `{"unexpected": true}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Invalid request", env["message"])
	assert.NotContains(t, env, "error")
}

func TestMutateQuote_MalformedJSONIs400(t *testing.T) {
	h := newTestRouter(serverMocks{})

	rec := doJSON(t, h, http.MethodPut, "/quote/"+uuid.NewString(), `{"status":`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Invalid request", env["message"])
}

func TestMutateQuote_ReplyFromNonStaffIs403(t *testing.T) {
	h := newTestRouter(serverMocks{quotes: &mockQuoteService{
		mutateFn: func(context.Context, uuid.UUID, service.QuoteMutation) (domain.Quote, error) {
			return domain.Quote{}, fmt.Errorf("service.QuoteService.Mutate: %w", domain.ErrUnauthorized)
		},
	}})

	body := fmt.Sprintf(`{"message": "Hi", "senderId": %q}`, uuid.NewString())
	rec := doJSON(t, h, http.MethodPut, "/quote/"+uuid.NewString(), body)

	require.Equal(t, http.StatusForbidden, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Only admins and staff members can reply to quotes", env["message"])
}

func TestEditQuote_NilFieldsStayNil(t *testing.T) {
	id := uuid.New()
	h := newTestRouter(serverMocks{quotes: &mockQuoteService{
		editFn: func(_ context.Context, _ uuid.UUID, upd domain.QuoteUpdate) (domain.Quote, error) {
			require.NotNil(t, upd.DeliveryLocation)
			assert.Equal(t, "Abuja, Nigeria", *upd.DeliveryLocation)
			assert.Nil(t, upd.FullName)
			assert.Nil(t, upd.Weight)
			return domain.Quote{ID: id, DeliveryLocation: "Abuja, Nigeria"}, nil
		},
	}})

	rec := doJSON(t, h, http.MethodPatch, "/quote/"+id.String(), `{"deliveryLocation": "Abuja, Nigeria"}`)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteQuote_ReturnsMessage(t *testing.T) {
	h := newTestRouter(serverMocks{quotes: &mockQuoteService{
		deleteFn: func(context.Context, uuid.UUID) error { return nil },
	}})

	rec := doJSON(t, h, http.MethodDelete, "/quote/"+uuid.NewString(), "")

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Quote deleted", env["message"])
}

func TestTrackQuote_WrapsShipment(t *testing.T) {
	h := newTestRouter(serverMocks{quotes: &mockQuoteService{
		trackFn: func(_ context.Context, number string) (domain.TrackingInfo, error) {
			assert.Equal(t, "MC-20260314-00042", number)
			return domain.TrackingInfo{
				TrackingNumber: number,
				Status:         domain.StatusPending,
				History:        []domain.StatusEvent{{Status: domain.StatusPending, Notes: "Shipment created"}},
			}, nil
		},
	}})

	rec := doJSON(t, h, http.MethodGet, "/quote/track/MC-20260314-00042", "")

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	shipment := env["shipment"].(map[string]any)
	assert.Equal(t, "MC-20260314-00042", shipment["trackingNumber"])
	history, ok := shipment["statusHistory"].([]any)
	require.True(t, ok, "history should serialize under statusHistory")
	assert.Len(t, history, 1)
}

func TestTrackQuote_UnknownNumberIs404(t *testing.T) {
	h := newTestRouter(serverMocks{quotes: &mockQuoteService{
		trackFn: func(context.Context, string) (domain.TrackingInfo, error) {
			return domain.TrackingInfo{}, fmt.Errorf("service.QuoteService.Track: %w", domain.ErrNotFound)
		},
	}})

	rec := doJSON(t, h, http.MethodGet, "/quote/track/garbage", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "Shipment not found with this tracking number", env["message"])
}

func TestGetWaybill_WrapsData(t *testing.T) {
	h := newTestRouter(serverMocks{quotes: &mockQuoteService{
		waybillFn: func(context.Context, uuid.UUID) (domain.Waybill, error) {
			return domain.Waybill{WaybillNumber: "WB-E82C3301"}, nil
		},
	}})

	rec := doJSON(t, h, http.MethodGet, "/quote/"+uuid.NewString()+"/waybill", "")

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	data := env["data"].(map[string]any)
	assert.Equal(t, "WB-E82C3301", data["waybillNumber"])
}

func TestDownloadWaybill_ServesPDF(t *testing.T) {
	h := newTestRouter(serverMocks{
		quotes: &mockQuoteService{
			waybillFn: func(context.Context, uuid.UUID) (domain.Waybill, error) {
				return domain.Waybill{WaybillNumber: "WB-E82C3301"}, nil
			},
		},
		pdf: &mockRenderer{
			renderFn: func(wb domain.Waybill) ([]byte, error) {
				assert.Equal(t, "WB-E82C3301", wb.WaybillNumber)
				return []byte("%PDF-1.3 fake"), nil
			},
		},
	})

	rec := doJSON(t, h, http.MethodGet, "/quote/"+uuid.NewString()+"/waybill/download", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="WB-E82C3301.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, len(rec.Body.Bytes()) > 0)
}
