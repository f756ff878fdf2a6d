package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/nypass/ticketing-service/internal/dto"
	"github.com/nypass/ticketing-service/internal/middleware"
	"github.com/nypass/ticketing-service/internal/models"
	"github.com/nypass/ticketing-service/internal/service"
)

type BookingHandler struct {
	svc       service.BookingService
	eventYear int
}

func NewBookingHandler(svc service.BookingService, eventYear int) *BookingHandler {
	return &BookingHandler{svc: svc, eventYear: eventYear}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	g := e.Group("/api/v1/bookings")

	// Public pass view, linked from the buyer's confirmation message
	g.GET("/:id/public", h.GetBooking)

	g.POST("", h.CreateBooking, auth, middleware.RequireRoles(models.RoleAdmin, models.RoleSales))
	g.GET("", h.ListBookings, auth)
	g.GET("/:id", h.GetBooking, auth)
	g.PUT("/:id", h.UpdateBooking, auth, middleware.RequireRoles(models.RoleAdmin))
	g.PUT("/:id/payment", h.UpdatePayment, auth, middleware.RequireRoles(models.RoleAdmin, models.RoleSales))
	g.POST("/:id/resend", h.ResendPass, auth, middleware.RequireRoles(models.RoleAdmin, models.RoleSales))
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := service.CreateBookingInput{
		BuyerName:   req.BuyerName,
		BuyerPhone:  req.BuyerPhone,
		PaymentMode: models.PaymentMode(req.PaymentMode),
		Notes:       req.Notes,
		MarkAsPaid:  req.MarkAsPaid,
	}
	for _, p := range req.Passes {
		input.Passes = append(input.Passes, service.PassInput{
			PassTypeID:  p.PassTypeID,
			PeopleCount: p.PeopleCount,
			PassHolders: p.PassHolders,
		})
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), input)
	if err != nil {
		var dup *service.DuplicatePhoneError
		var limit *service.PeopleLimitError
		switch {
		case errors.As(err, &dup):
			return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
				"message": "phone number already has a booking",
				"existing_booking": map[string]any{
					"booking_id":     dup.Existing.Code(h.eventYear),
					"buyer_name":     dup.Existing.BuyerName,
					"payment_status": dup.Existing.PaymentStatus,
				},
			})
		case errors.As(err, &limit):
			return echo.NewHTTPError(http.StatusBadRequest, limit.Error())
		case errors.Is(err, service.ErrPassTypeNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNoPasses):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message":      "booking created successfully",
		"booking":      dto.ToBookingResponse(booking, h.eventYear),
		"pass_details": dto.ToPassDetailsResponse(booking, h.eventYear),
	})
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	q := service.BookingQuery{
		Search:        c.QueryParam("search"),
		CheckInStatus: c.QueryParam("check_in_status"),
	}
	if s := c.QueryParam("payment_status"); s != "" {
		ps := models.PaymentStatus(s)
		q.PaymentStatus = &ps
	}
	if s := c.QueryParam("pass_type"); s != "" {
		pt := models.PassTypeName(s)
		q.PassType = &pt
	}

	bookings, err := h.svc.ListBookings(c.Request().Context(), q)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i := range bookings {
		resp[i] = dto.ToBookingResponse(&bookings[i], h.eventYear)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "booking not found")
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking, h.eventYear))
}

func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := service.UpdateBookingInput{
		BuyerName:  req.BuyerName,
		BuyerPhone: req.BuyerPhone,
		Notes:      req.Notes,
	}
	if req.PaymentMode != nil {
		pm := models.PaymentMode(*req.PaymentMode)
		input.PaymentMode = &pm
	}
	if req.PaymentStatus != nil {
		ps := models.PaymentStatus(*req.PaymentStatus)
		input.PaymentStatus = &ps
	}

	booking, err := h.svc.UpdateBooking(c.Request().Context(), id, input)
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "booking not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": "booking updated successfully",
		"booking": dto.ToBookingResponse(booking, h.eventYear),
	})
}

func (h *BookingHandler) UpdatePayment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	booking, err := h.svc.UpdatePaymentStatus(c.Request().Context(), id, models.PaymentStatus(req.PaymentStatus))
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "booking not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": "payment status updated",
		"booking": dto.ToBookingResponse(booking, h.eventYear),
	})
}

func (h *BookingHandler) ResendPass(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	booking, err := h.svc.GetBooking(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "booking not found")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message":      "pass details retrieved",
		"pass_details": dto.ToPassDetailsResponse(booking, h.eventYear),
	})
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
