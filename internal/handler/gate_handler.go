package handler

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/nypass/ticketing-service/internal/dto"
	"github.com/nypass/ticketing-service/internal/middleware"
	"github.com/nypass/ticketing-service/internal/models"
	"github.com/nypass/ticketing-service/internal/service"
)

type GateHandler struct {
	svc       service.GateService
	adminPIN  string
	eventYear int
}

func NewGateHandler(svc service.GateService, adminPIN string, eventYear int) *GateHandler {
	return &GateHandler{svc: svc, adminPIN: adminPIN, eventYear: eventYear}
}

func (h *GateHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/search", h.SearchPass, middleware.RequireRoles(models.RoleGate, models.RoleAdmin))
	g.POST("/checkin", h.MarkEntry, middleware.RequireRoles(models.RoleGate, models.RoleAdmin))
	g.GET("/logs", h.GetEntryLogs, middleware.RequireRoles(models.RoleAdmin))
}

func (h *GateHandler) SearchPass(c echo.Context) error {
	var req dto.GateSearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.SearchValue == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "pass id or mobile number required")
	}

	booking, err := h.svc.Resolve(c.Request().Context(), req.SearchValue)
	if err != nil {
		if errors.Is(err, service.ErrBookingNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "pass not found for this pass id or mobile number")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	scans, err := h.svc.ScanCount(c.Request().Context(), booking.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message":       "pass found",
		"booking":       dto.ToGateBookingResponse(booking, h.eventYear),
		"times_scanned": scans,
	})
}

func (h *GateHandler) MarkEntry(c echo.Context) error {
	var req dto.CheckInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// PIN verification stays outside the quota logic; a bad PIN never
	// reaches the service and never logs an entry.
	if req.AdminOverride && !pinMatches(h.adminPIN, req.AdminPIN) {
		return echo.NewHTTPError(http.StatusForbidden, "invalid admin PIN")
	}

	res, err := h.svc.ApplyEntry(c.Request().Context(), service.EntryRequest{
		BookingID:     req.BookingID,
		Count:         req.PeopleEntered,
		ScannedBy:     req.ScannedBy,
		AdminOverride: req.AdminOverride,
	})
	if err != nil {
		var exhausted *service.QuotaExhaustedError
		var exceeded *service.QuotaExceededError
		switch {
		case errors.Is(err, service.ErrBookingNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "booking not found")
		case errors.Is(err, service.ErrBookingNotPaid):
			return echo.NewHTTPError(http.StatusBadRequest, "pass not paid")
		case errors.As(err, &exhausted):
			return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
				"message":            "pass fully utilized",
				"already_checked_in": true,
				"details": map[string]int{
					"total_allowed":   exhausted.TotalAllowed,
					"already_entered": exhausted.AlreadyEntered,
					"remaining":       0,
				},
			})
		case errors.As(err, &exceeded):
			return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
				"message":   exceeded.Error(),
				"remaining": exceeded.Remaining,
			})
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.CheckInResponse{
		Message:       "entry marked successfully",
		BookingID:     res.Booking.Code(h.eventYear),
		BuyerName:     res.Booking.BuyerName,
		TotalAllowed:  res.TotalAllowed,
		TotalEntered:  res.TotalEntered,
		Remaining:     res.Remaining,
		ThisEntry:     res.Applied,
		Status:        res.Status,
		FullyUtilized: res.FullyUtilized,
	})
}

func (h *GateHandler) GetEntryLogs(c echo.Context) error {
	limit := 100
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = n
	}

	logs, err := h.svc.RecentLogs(c.Request().Context(), limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.EntryLogResponse, len(logs))
	for i := range logs {
		resp[i] = dto.ToEntryLogResponse(&logs[i], h.eventYear)
	}
	return c.JSON(http.StatusOK, resp)
}

func pinMatches(want, got string) bool {
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}
