package http

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"stock/message/supply"
)

type MetricsHandler struct {
	metrics      *supply.Metrics
	requestQueue string
}

func (h MetricsHandler) GetRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Consuming from supply request queue '%s'", h.requestQueue),
	})
}

// GetMetrics returns a point-in-time snapshot of the request counters.
func (h MetricsHandler) GetMetrics(c echo.Context) error {
	return c.JSON(http.StatusOK, h.metrics.Snapshot())
}
