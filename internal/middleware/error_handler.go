package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nypass/ticketing-service/internal/dto"
)

func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		switch m := he.Message.(type) {
		case string:
			msg = m
		default:
			// structured rejection payloads pass through unchanged
			_ = c.JSON(code, m)
			return
		}
	}

	_ = c.JSON(code, dto.ErrorResponse{Message: msg})
}
