package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"stock/message/supply"
)

func newEcho(serviceName string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpErrorHandler
	e.Use(otelecho.Middleware(serviceName))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	return e
}

func NewInventoryRouter(
	productRepo ProductRepository,
	supplyRequester SupplyRequester,
) *echo.Echo {
	e := newEcho("inventory")

	handler := Handler{
		productRepo:     productRepo,
		supplyRequester: supplyRequester,
	}

	e.POST("/products", handler.PostProducts)
	e.GET("/products", handler.GetProducts)
	e.GET("/products/:id", handler.GetProductByID)
	e.PUT("/products/:id", handler.PutProduct)
	e.DELETE("/products/:id", handler.DeleteProduct)
	e.GET("/products/:id/quantity", handler.GetProductQuantity)

	e.GET("/products/:name/availability", handler.GetAvailability)
	e.POST("/products/:name/reduce-quantity", handler.PostReduceQuantity)

	return e
}

func NewSupplyRouter(
	metrics *supply.Metrics,
	requestQueue string,
	registry *prometheus.Registry,
) *echo.Echo {
	e := newEcho("supply")

	handler := MetricsHandler{
		metrics:      metrics,
		requestQueue: requestQueue,
	}

	e.GET("/", handler.GetRoot)
	e.GET("/metrics", handler.GetMetrics)
	if registry != nil {
		e.GET("/metrics/prometheus", echo.WrapHandler(
			promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		))
	}

	return e
}

func NewOrderRouter(
	orderRepo OrderRepository,
	inventory InventoryService,
) *echo.Echo {
	e := newEcho("order")

	handler := OrderHandler{
		orderRepo: orderRepo,
		inventory: inventory,
	}

	e.POST("/orders", handler.PostOrders)
	e.GET("/orders/:id", handler.GetOrderByID)

	return e
}
