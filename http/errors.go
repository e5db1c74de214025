package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"stock/entities"
	"stock/pkg/log"
)

// httpErrorHandler maps domain errors to status codes the way the CRUD
// API promises them: missing entities are 404, bad quantities and failed
// reductions are 400, duplicates are 409.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		_ = c.JSON(httpErr.Code, map[string]any{"detail": httpErr.Message})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, entities.ErrProductNotFound), errors.Is(err, entities.ErrOrderNotFound):
		status = http.StatusNotFound
	case errors.Is(err, entities.ErrInvalidQuantity), errors.Is(err, entities.ErrInsufficientStock):
		status = http.StatusBadRequest
	case errors.Is(err, entities.ErrProductAlreadyExists):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		log.FromContext(c.Request().Context()).WithError(err).Error("Unhandled HTTP error")
	}

	_ = c.JSON(status, map[string]any{"detail": err.Error()})
}
