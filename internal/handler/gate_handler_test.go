package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nypass/ticketing-service/internal/dto"
	"github.com/nypass/ticketing-service/internal/models"
	"github.com/nypass/ticketing-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock GateService ---

type mockGateService struct {
	resolveFn   func(ctx context.Context, searchValue string) (*models.Booking, error)
	applyFn     func(ctx context.Context, req service.EntryRequest) (*service.EntryResult, error)
	logsFn      func(ctx context.Context, limit int) ([]models.EntryLog, error)
	scanCountFn func(ctx context.Context, bookingID uint) (int64, error)
}

func (m *mockGateService) Resolve(ctx context.Context, searchValue string) (*models.Booking, error) {
	return m.resolveFn(ctx, searchValue)
}

func (m *mockGateService) ApplyEntry(ctx context.Context, req service.EntryRequest) (*service.EntryResult, error) {
	return m.applyFn(ctx, req)
}

func (m *mockGateService) RecentLogs(ctx context.Context, limit int) ([]models.EntryLog, error) {
	return m.logsFn(ctx, limit)
}

func (m *mockGateService) ScanCount(ctx context.Context, bookingID uint) (int64, error) {
	if m.scanCountFn != nil {
		return m.scanCountFn(ctx, bookingID)
	}
	return 0, nil
}

func gateContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sampleGateBooking() *models.Booking {
	at := time.Date(2025, 12, 31, 21, 0, 0, 0, time.UTC)
	return &models.Booking{
		ID:            7,
		Ref:           "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d",
		BuyerName:     "Asha Rao",
		BuyerPhone:    "9876543210",
		PaymentStatus: models.PaymentPaid,
		CheckedIn:     true,
		CheckedInAt:   &at,
		Passes: []models.Pass{
			{PassTypeName: models.PassFamily, PassTypePrice: 2500, PeopleCount: 4, PeopleEntered: 2},
		},
	}
}

// --- SearchPass ---

func TestSearchPass_Found(t *testing.T) {
	svc := &mockGateService{
		resolveFn: func(ctx context.Context, searchValue string) (*models.Booking, error) {
			assert.Equal(t, "9876543210", searchValue)
			return sampleGateBooking(), nil
		},
		scanCountFn: func(ctx context.Context, bookingID uint) (int64, error) {
			assert.Equal(t, uint(7), bookingID)
			return 2, nil
		},
	}

	c, rec := gateContext(t, http.MethodPost, "/api/v1/gate/search", `{"search_value":"9876543210"}`)
	h := NewGateHandler(svc, "4321", 2025)
	err := h.SearchPass(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message      string                  `json:"message"`
		Booking      dto.GateBookingResponse `json:"booking"`
		TimesScanned int64                   `json:"times_scanned"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "NY2025-3dcb6d", resp.Booking.BookingID)
	assert.Equal(t, 4, resp.Booking.TotalPeople)
	assert.Equal(t, 2, resp.Booking.TotalPeopleEntered)
	assert.True(t, resp.Booking.CanEnter)
	assert.Equal(t, int64(2), resp.TimesScanned)
}

func TestSearchPass_NotFound(t *testing.T) {
	svc := &mockGateService{
		resolveFn: func(ctx context.Context, searchValue string) (*models.Booking, error) {
			return nil, service.ErrBookingNotFound
		},
	}

	c, _ := gateContext(t, http.MethodPost, "/api/v1/gate/search", `{"search_value":"NY2025-zzzzzz"}`)
	h := NewGateHandler(svc, "4321", 2025)
	err := h.SearchPass(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestSearchPass_EmptyValue(t *testing.T) {
	c, _ := gateContext(t, http.MethodPost, "/api/v1/gate/search", `{}`)
	h := NewGateHandler(&mockGateService{}, "4321", 2025)
	err := h.SearchPass(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

// --- MarkEntry ---

func TestMarkEntry_Success(t *testing.T) {
	svc := &mockGateService{
		applyFn: func(ctx context.Context, req service.EntryRequest) (*service.EntryResult, error) {
			assert.Equal(t, uint(7), req.BookingID)
			assert.Equal(t, 2, req.Count)
			assert.Equal(t, "gate-1", req.ScannedBy)
			assert.False(t, req.AdminOverride)
			return &service.EntryResult{
				Booking:       sampleGateBooking(),
				Applied:       2,
				TotalAllowed:  4,
				TotalEntered:  4,
				Remaining:     0,
				Status:        models.EntryCheckedIn,
				FullyUtilized: true,
			}, nil
		},
	}

	body := `{"booking_id":7,"people_entered":2,"scanned_by":"gate-1"}`
	c, rec := gateContext(t, http.MethodPost, "/api/v1/gate/checkin", body)
	h := NewGateHandler(svc, "4321", 2025)
	err := h.MarkEntry(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.CheckInResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "NY2025-3dcb6d", resp.BookingID)
	assert.Equal(t, 2, resp.ThisEntry)
	assert.Equal(t, 4, resp.TotalEntered)
	assert.Equal(t, 0, resp.Remaining)
	assert.Equal(t, models.EntryCheckedIn, resp.Status)
	assert.True(t, resp.FullyUtilized)
}

func TestMarkEntry_InvalidPIN(t *testing.T) {
	called := false
	svc := &mockGateService{
		applyFn: func(ctx context.Context, req service.EntryRequest) (*service.EntryResult, error) {
			called = true
			return nil, nil
		},
	}

	body := `{"booking_id":7,"people_entered":1,"scanned_by":"gate-1","admin_override":true,"admin_pin":"0000"}`
	c, _ := gateContext(t, http.MethodPost, "/api/v1/gate/checkin", body)
	h := NewGateHandler(svc, "4321", 2025)
	err := h.MarkEntry(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)
	assert.False(t, called, "a bad PIN must never reach the service")
}

func TestMarkEntry_ValidPINOverrides(t *testing.T) {
	svc := &mockGateService{
		applyFn: func(ctx context.Context, req service.EntryRequest) (*service.EntryResult, error) {
			assert.True(t, req.AdminOverride)
			return &service.EntryResult{
				Booking:       sampleGateBooking(),
				Applied:       2,
				TotalAllowed:  4,
				TotalEntered:  6,
				Remaining:     -2,
				Status:        models.EntryCheckedIn,
				FullyUtilized: true,
			}, nil
		},
	}

	body := `{"booking_id":7,"people_entered":2,"scanned_by":"admin-1","admin_override":true,"admin_pin":"4321"}`
	c, rec := gateContext(t, http.MethodPost, "/api/v1/gate/checkin", body)
	h := NewGateHandler(svc, "4321", 2025)
	err := h.MarkEntry(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMarkEntry_Exhausted(t *testing.T) {
	svc := &mockGateService{
		applyFn: func(ctx context.Context, req service.EntryRequest) (*service.EntryResult, error) {
			return nil, &service.QuotaExhaustedError{TotalAllowed: 4, AlreadyEntered: 4}
		},
	}

	body := `{"booking_id":7,"people_entered":1,"scanned_by":"gate-1"}`
	c, _ := gateContext(t, http.MethodPost, "/api/v1/gate/checkin", body)
	h := NewGateHandler(svc, "4321", 2025)
	err := h.MarkEntry(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)

	payload, ok := he.Message.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, payload["already_checked_in"])
	details, ok := payload["details"].(map[string]int)
	require.True(t, ok)
	assert.Equal(t, 4, details["total_allowed"])
	assert.Equal(t, 4, details["already_entered"])
	assert.Equal(t, 0, details["remaining"])
}

func TestMarkEntry_ExceedsRemaining(t *testing.T) {
	svc := &mockGateService{
		applyFn: func(ctx context.Context, req service.EntryRequest) (*service.EntryResult, error) {
			return nil, &service.QuotaExceededError{Requested: 3, Remaining: 2}
		},
	}

	body := `{"booking_id":7,"people_entered":3,"scanned_by":"gate-1"}`
	c, _ := gateContext(t, http.MethodPost, "/api/v1/gate/checkin", body)
	h := NewGateHandler(svc, "4321", 2025)
	err := h.MarkEntry(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)

	payload, ok := he.Message.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 2, payload["remaining"])
}

func TestMarkEntry_NotPaid(t *testing.T) {
	svc := &mockGateService{
		applyFn: func(ctx context.Context, req service.EntryRequest) (*service.EntryResult, error) {
			return nil, service.ErrBookingNotPaid
		},
	}

	body := `{"booking_id":7,"people_entered":1,"scanned_by":"gate-1"}`
	c, _ := gateContext(t, http.MethodPost, "/api/v1/gate/checkin", body)
	h := NewGateHandler(svc, "4321", 2025)
	err := h.MarkEntry(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestMarkEntry_BookingNotFound(t *testing.T) {
	svc := &mockGateService{
		applyFn: func(ctx context.Context, req service.EntryRequest) (*service.EntryResult, error) {
			return nil, service.ErrBookingNotFound
		},
	}

	body := `{"booking_id":999,"people_entered":1,"scanned_by":"gate-1"}`
	c, _ := gateContext(t, http.MethodPost, "/api/v1/gate/checkin", body)
	h := NewGateHandler(svc, "4321", 2025)
	err := h.MarkEntry(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

// --- GetEntryLogs ---

func TestGetEntryLogs(t *testing.T) {
	booking := sampleGateBooking()
	svc := &mockGateService{
		logsFn: func(ctx context.Context, limit int) ([]models.EntryLog, error) {
			assert.Equal(t, 100, limit)
			return []models.EntryLog{
				{ID: 1, BookingID: booking.ID, ScannedBy: "gate-1", PeopleEntered: 2, Status: models.EntryPartiallyCheckedIn, Booking: booking},
			}, nil
		},
	}

	c, rec := gateContext(t, http.MethodGet, "/api/v1/gate/logs", "")
	h := NewGateHandler(svc, "4321", 2025)
	err := h.GetEntryLogs(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []dto.EntryLogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "NY2025-3dcb6d", resp[0].BookingID)
	assert.Equal(t, 2, resp[0].PeopleEntered)
}

func TestGetEntryLogs_InvalidLimit(t *testing.T) {
	c, _ := gateContext(t, http.MethodGet, "/api/v1/gate/logs?limit=abc", "")
	h := NewGateHandler(&mockGateService{}, "4321", 2025)
	err := h.GetEntryLogs(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
