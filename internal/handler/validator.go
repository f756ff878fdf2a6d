package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type requestValidator struct {
	v *validator.Validate
}

// NewValidator returns the echo.Validator used for request binding.
func NewValidator() echo.Validator {
	return &requestValidator{v: validator.New()}
}

func (rv *requestValidator) Validate(i any) error {
	if err := rv.v.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
