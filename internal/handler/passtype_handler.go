package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nypass/ticketing-service/internal/dto"
	"github.com/nypass/ticketing-service/internal/middleware"
	"github.com/nypass/ticketing-service/internal/models"
	"github.com/nypass/ticketing-service/internal/service"
)

type PassTypeHandler struct {
	svc service.PassTypeService
}

func NewPassTypeHandler(svc service.PassTypeService) *PassTypeHandler {
	return &PassTypeHandler{svc: svc}
}

func (h *PassTypeHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreatePassType, middleware.RequireRoles(models.RoleAdmin))
	g.GET("", h.ListPassTypes)
	g.GET("/:id", h.GetPassType)
	g.PUT("/:id", h.UpdatePassType, middleware.RequireRoles(models.RoleAdmin))
}

func (h *PassTypeHandler) CreatePassType(c echo.Context) error {
	var req dto.CreatePassTypeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	passType := &models.PassType{
		Name:          models.PassTypeName(req.Name),
		Price:         req.Price,
		MaxPeople:     req.MaxPeople,
		ValidForEvent: req.ValidForEvent,
		Description:   req.Description,
		IsActive:      true,
	}
	if err := h.svc.CreatePassType(c.Request().Context(), passType); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, passType)
}

func (h *PassTypeHandler) ListPassTypes(c echo.Context) error {
	passTypes, err := h.svc.ListPassTypes(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, passTypes)
}

func (h *PassTypeHandler) GetPassType(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	passType, err := h.svc.GetPassType(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPassTypeNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "pass type not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, passType)
}

func (h *PassTypeHandler) UpdatePassType(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.UpdatePassTypeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	passType, err := h.svc.UpdatePassType(c.Request().Context(), id, service.UpdatePassTypeInput{
		Price:         req.Price,
		ValidForEvent: req.ValidForEvent,
		Description:   req.Description,
		IsActive:      req.IsActive,
	})
	if err != nil {
		if errors.Is(err, service.ErrPassTypeNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "pass type not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, passType)
}
