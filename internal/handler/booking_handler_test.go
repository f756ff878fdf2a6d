package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nypass/ticketing-service/internal/dto"
	"github.com/nypass/ticketing-service/internal/models"
	"github.com/nypass/ticketing-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock BookingService ---

type mockBookingService struct {
	createFn        func(ctx context.Context, input service.CreateBookingInput) (*models.Booking, error)
	getFn           func(ctx context.Context, id uint) (*models.Booking, error)
	listFn          func(ctx context.Context, q service.BookingQuery) ([]models.Booking, error)
	updateFn        func(ctx context.Context, id uint, input service.UpdateBookingInput) (*models.Booking, error)
	updatePaymentFn func(ctx context.Context, id uint, status models.PaymentStatus) (*models.Booking, error)
}

func (m *mockBookingService) CreateBooking(ctx context.Context, input service.CreateBookingInput) (*models.Booking, error) {
	return m.createFn(ctx, input)
}

func (m *mockBookingService) GetBooking(ctx context.Context, id uint) (*models.Booking, error) {
	return m.getFn(ctx, id)
}

func (m *mockBookingService) ListBookings(ctx context.Context, q service.BookingQuery) ([]models.Booking, error) {
	return m.listFn(ctx, q)
}

func (m *mockBookingService) UpdateBooking(ctx context.Context, id uint, input service.UpdateBookingInput) (*models.Booking, error) {
	return m.updateFn(ctx, id, input)
}

func (m *mockBookingService) UpdatePaymentStatus(ctx context.Context, id uint, status models.PaymentStatus) (*models.Booking, error) {
	return m.updatePaymentFn(ctx, id, status)
}

func bookingContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sampleBooking() *models.Booking {
	return &models.Booking{
		ID:            12,
		Ref:           "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		BuyerName:     "Vikram Shetty",
		BuyerPhone:    "9000000001",
		PaymentStatus: models.PaymentPaid,
		PaymentMode:   models.PayUPI,
		TotalPasses:   1,
		TotalPeople:   2,
		Passes: []models.Pass{
			{PassTypeID: 2, PassTypeName: models.PassCouple, PassTypePrice: 1500, PeopleCount: 2},
		},
	}
}

// --- CreateBooking ---

func TestCreateBooking_Success(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, input service.CreateBookingInput) (*models.Booking, error) {
			assert.Equal(t, "Vikram Shetty", input.BuyerName)
			assert.Equal(t, "9000000001", input.BuyerPhone)
			assert.True(t, input.MarkAsPaid)
			require.Len(t, input.Passes, 1)
			assert.Equal(t, uint(2), input.Passes[0].PassTypeID)
			return sampleBooking(), nil
		},
	}

	body := `{"buyer_name":"Vikram Shetty","buyer_phone":"9000000001","payment_mode":"UPI","mark_as_paid":true,"passes":[{"pass_type_id":2,"people_count":2}]}`
	c, rec := bookingContext(t, http.MethodPost, "/api/v1/bookings", body)
	h := NewBookingHandler(svc, 2025)
	err := h.CreateBooking(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Message     string                  `json:"message"`
		Booking     dto.BookingResponse     `json:"booking"`
		PassDetails dto.PassDetailsResponse `json:"pass_details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "booking created successfully", resp.Message)
	assert.Equal(t, "NY2025-d430c8", resp.Booking.BookingID)
	assert.Equal(t, 1500.0, resp.Booking.TotalPrice)
	assert.Equal(t, "NY2025-d430c8", resp.PassDetails.PassID)
	assert.Equal(t, 2, resp.PassDetails.AllowedPeople)
}

func TestCreateBooking_MissingBuyerName(t *testing.T) {
	body := `{"buyer_phone":"9000000001","passes":[{"pass_type_id":2}]}`
	c, _ := bookingContext(t, http.MethodPost, "/api/v1/bookings", body)
	h := NewBookingHandler(&mockBookingService{}, 2025)
	err := h.CreateBooking(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateBooking_NoPasses(t *testing.T) {
	body := `{"buyer_name":"Vikram Shetty","buyer_phone":"9000000001","passes":[]}`
	c, _ := bookingContext(t, http.MethodPost, "/api/v1/bookings", body)
	h := NewBookingHandler(&mockBookingService{}, 2025)
	err := h.CreateBooking(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateBooking_DuplicatePhone(t *testing.T) {
	existing := sampleBooking()
	svc := &mockBookingService{
		createFn: func(ctx context.Context, input service.CreateBookingInput) (*models.Booking, error) {
			return nil, &service.DuplicatePhoneError{Existing: existing}
		},
	}

	body := `{"buyer_name":"Someone Else","buyer_phone":"9000000001","passes":[{"pass_type_id":2}]}`
	c, _ := bookingContext(t, http.MethodPost, "/api/v1/bookings", body)
	h := NewBookingHandler(svc, 2025)
	err := h.CreateBooking(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)

	payload, ok := he.Message.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "phone number already has a booking", payload["message"])
	info, ok := payload["existing_booking"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "NY2025-d430c8", info["booking_id"])
	assert.Equal(t, "Vikram Shetty", info["buyer_name"])
}

func TestCreateBooking_OverPassTypeLimit(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, input service.CreateBookingInput) (*models.Booking, error) {
			return nil, &service.PeopleLimitError{PassTypeName: models.PassCouple, MaxPeople: 2}
		},
	}

	body := `{"buyer_name":"Vikram Shetty","buyer_phone":"9000000002","passes":[{"pass_type_id":2,"people_count":5}]}`
	c, _ := bookingContext(t, http.MethodPost, "/api/v1/bookings", body)
	h := NewBookingHandler(svc, 2025)
	err := h.CreateBooking(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestCreateBooking_UnknownPassType(t *testing.T) {
	svc := &mockBookingService{
		createFn: func(ctx context.Context, input service.CreateBookingInput) (*models.Booking, error) {
			return nil, service.ErrPassTypeNotFound
		},
	}

	body := `{"buyer_name":"Vikram Shetty","buyer_phone":"9000000002","passes":[{"pass_type_id":99}]}`
	c, _ := bookingContext(t, http.MethodPost, "/api/v1/bookings", body)
	h := NewBookingHandler(svc, 2025)
	err := h.CreateBooking(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

// --- ListBookings ---

func TestListBookings_FiltersFromQuery(t *testing.T) {
	svc := &mockBookingService{
		listFn: func(ctx context.Context, q service.BookingQuery) ([]models.Booking, error) {
			assert.Equal(t, "Vikram", q.Search)
			require.NotNil(t, q.PaymentStatus)
			assert.Equal(t, models.PaymentPaid, *q.PaymentStatus)
			require.NotNil(t, q.PassType)
			assert.Equal(t, models.PassCouple, *q.PassType)
			assert.Equal(t, "checked_in", q.CheckInStatus)
			return []models.Booking{*sampleBooking()}, nil
		},
	}

	c, rec := bookingContext(t, http.MethodGet, "/api/v1/bookings?search=Vikram&payment_status=Paid&pass_type=Couple&check_in_status=checked_in", "")
	h := NewBookingHandler(svc, 2025)
	err := h.ListBookings(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []dto.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "NY2025-d430c8", resp[0].BookingID)
}

func TestListBookings_Empty(t *testing.T) {
	svc := &mockBookingService{
		listFn: func(ctx context.Context, q service.BookingQuery) ([]models.Booking, error) {
			return nil, nil
		},
	}

	c, rec := bookingContext(t, http.MethodGet, "/api/v1/bookings", "")
	h := NewBookingHandler(svc, 2025)
	err := h.ListBookings(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

// --- GetBooking ---

func TestGetBooking_NotFound(t *testing.T) {
	svc := &mockBookingService{
		getFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			return nil, service.ErrBookingNotFound
		},
	}

	c, _ := bookingContext(t, http.MethodGet, "/api/v1/bookings/999", "")
	c.SetParamNames("id")
	c.SetParamValues("999")
	h := NewBookingHandler(svc, 2025)
	err := h.GetBooking(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestGetBooking_InvalidID(t *testing.T) {
	c, _ := bookingContext(t, http.MethodGet, "/api/v1/bookings/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	h := NewBookingHandler(&mockBookingService{}, 2025)
	err := h.GetBooking(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

// --- UpdatePayment ---

func TestUpdatePayment_Success(t *testing.T) {
	svc := &mockBookingService{
		updatePaymentFn: func(ctx context.Context, id uint, status models.PaymentStatus) (*models.Booking, error) {
			assert.Equal(t, uint(12), id)
			assert.Equal(t, models.PaymentPaid, status)
			b := sampleBooking()
			b.PaymentStatus = status
			return b, nil
		},
	}

	c, rec := bookingContext(t, http.MethodPut, "/api/v1/bookings/12/payment", `{"payment_status":"Paid"}`)
	c.SetParamNames("id")
	c.SetParamValues("12")
	h := NewBookingHandler(svc, 2025)
	err := h.UpdatePayment(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdatePayment_InvalidStatus(t *testing.T) {
	c, _ := bookingContext(t, http.MethodPut, "/api/v1/bookings/12/payment", `{"payment_status":"Settled"}`)
	c.SetParamNames("id")
	c.SetParamValues("12")
	h := NewBookingHandler(&mockBookingService{}, 2025)
	err := h.UpdatePayment(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

// --- ResendPass ---

func TestResendPass(t *testing.T) {
	svc := &mockBookingService{
		getFn: func(ctx context.Context, id uint) (*models.Booking, error) {
			return sampleBooking(), nil
		},
	}

	c, rec := bookingContext(t, http.MethodPost, "/api/v1/bookings/12/resend", "")
	c.SetParamNames("id")
	c.SetParamValues("12")
	h := NewBookingHandler(svc, 2025)
	err := h.ResendPass(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		PassDetails dto.PassDetailsResponse `json:"pass_details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "NY2025-d430c8", resp.PassDetails.PassID)
	assert.Equal(t, []string{"Couple"}, resp.PassDetails.PassTypes)
}
