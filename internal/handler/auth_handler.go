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

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) RegisterRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/register-admin", h.RegisterAdmin)
	g.POST("/login", h.Login)
	g.GET("/me", h.Me, auth)
	g.POST("/users", h.CreateUser, auth, middleware.RequireRoles(models.RoleAdmin))
	g.GET("/users", h.ListUsers, auth, middleware.RequireRoles(models.RoleAdmin))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.LoginResponse{
		Token:      res.Token,
		User:       dto.ToUserResponse(res.User),
		RedirectTo: res.RedirectTo,
	})
}

func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextUserID).(uint)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}

	user, err := h.svc.GetUser(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}
	return c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *AuthHandler) CreateUser(c echo.Context) error {
	var req dto.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.svc.CreateUser(c.Request().Context(), service.CreateUserInput{
		Email:    req.Email,
		Mobile:   req.Mobile,
		Password: req.Password,
		Name:     req.Name,
		Role:     models.Role(req.Role),
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "user created successfully",
		"user":    dto.ToUserResponse(user),
	})
}

func (h *AuthHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.UserResponse, len(users))
	for i := range users {
		resp[i] = dto.ToUserResponse(&users[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) RegisterAdmin(c echo.Context) error {
	var req dto.RegisterAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.svc.RegisterAdmin(c.Request().Context(), service.CreateUserInput{
		Email:    req.Email,
		Mobile:   req.Mobile,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		if errors.Is(err, service.ErrAdminExists) {
			return echo.NewHTTPError(http.StatusBadRequest, "admin already exists")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "admin registered successfully",
		"user":    dto.ToUserResponse(user),
	})
}
