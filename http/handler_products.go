package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"stock/entities"
	"stock/pkg/log"
)

type productRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h Handler) PostProducts(c echo.Context) error {
	var request productRequest
	if err := c.Bind(&request); err != nil {
		return err
	}
	if request.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if request.Quantity < 0 {
		return entities.ErrInvalidQuantity
	}

	product, err := h.productRepo.Create(c.Request().Context(), entities.Product{
		Name:        request.Name,
		Description: request.Description,
		Quantity:    request.Quantity,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, product)
}

func (h Handler) GetProducts(c echo.Context) error {
	skip := queryInt(c, "skip", 0)
	limit := queryInt(c, "limit", 100)

	products, err := h.productRepo.List(c.Request().Context(), skip, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, products)
}

func (h Handler) GetProductByID(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	product, err := h.productRepo.GetByID(c.Request().Context(), productID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, product)
}

func (h Handler) PutProduct(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	var request productRequest
	if err := c.Bind(&request); err != nil {
		return err
	}
	if request.Quantity < 0 {
		return entities.ErrInvalidQuantity
	}

	product, err := h.productRepo.Update(c.Request().Context(), entities.Product{
		ID:          productID,
		Name:        request.Name,
		Description: request.Description,
		Quantity:    request.Quantity,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, product)
}

func (h Handler) DeleteProduct(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	if err := h.productRepo.Delete(c.Request().Context(), productID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

func (h Handler) GetProductQuantity(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	quantity, err := h.productRepo.QuantityByID(c.Request().Context(), productID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]int{"quantity": quantity})
}

// GetAvailability answers synchronously; when stock is short it fires a
// supply request and reports unavailable right away. Publish failures are
// logged, not surfaced: the caller's answer is the same either way.
func (h Handler) GetAvailability(c echo.Context) error {
	name := c.Param("name")

	quantity, err := strconv.Atoi(c.QueryParam("quantity"))
	if err != nil || quantity <= 0 {
		return entities.ErrInvalidQuantity
	}

	ctx := c.Request().Context()

	product, err := h.productRepo.FindByName(ctx, name)
	if err != nil {
		return err
	}

	if product.Quantity >= quantity {
		return c.JSON(http.StatusOK, entities.Availability{Available: true})
	}

	if err := h.supplyRequester.RequestSupply(ctx, product.Name, product.Quantity, quantity); err != nil {
		log.FromContext(ctx).WithError(err).Error("Could not request supply")
	}

	return c.JSON(http.StatusOK, entities.Availability{Available: false})
}

func (h Handler) PostReduceQuantity(c echo.Context) error {
	name := c.Param("name")

	var request quantityRequest
	if err := c.Bind(&request); err != nil {
		return err
	}

	product, err := h.productRepo.ReduceQuantity(c.Request().Context(), name, request.Quantity)
	if err != nil {
		return fmt.Errorf("could not reduce quantity for %q: %w", name, err)
	}

	return c.JSON(http.StatusOK, product)
}

func queryInt(c echo.Context, name string, def int) int {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
