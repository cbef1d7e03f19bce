package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"gardenguru/pkg/apperr"
)

// Fail writes err as {"error": msg} with the status of its kind.
func Fail(c echo.Context, err error) error {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Int("status", status).Msg("[http] request failed")
	}
	return c.JSON(status, echo.Map{"error": err.Error()})
}
