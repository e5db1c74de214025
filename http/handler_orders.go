package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"stock/entities"
	"stock/pkg/log"
)

type OrderRepository interface {
	Create(ctx context.Context, order entities.Order) (entities.Order, error)
	GetByID(ctx context.Context, orderID uuid.UUID) (entities.Order, error)
}

type InventoryService interface {
	CheckAvailability(ctx context.Context, itemName string, quantity int) (bool, error)
	ReduceQuantity(ctx context.Context, itemName string, quantity int) (entities.Product, error)
}

type OrderHandler struct {
	orderRepo OrderRepository
	inventory InventoryService
}

type orderRequest struct {
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

func (h OrderHandler) PostOrders(c echo.Context) error {
	var request orderRequest
	if err := c.Bind(&request); err != nil {
		return err
	}
	if request.ItemName == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "item_name is required")
	}
	if request.Quantity <= 0 {
		return entities.ErrInvalidQuantity
	}

	ctx := c.Request().Context()

	available, err := h.inventory.CheckAvailability(ctx, request.ItemName, request.Quantity)
	if err != nil {
		return fmt.Errorf("could not check inventory: %w", err)
	}
	if !available {
		// the availability check already fired a supply request on the
		// inventory side; the order itself is rejected
		return echo.NewHTTPError(http.StatusConflict, "item not available")
	}

	order, err := h.orderRepo.Create(ctx, entities.Order{
		ItemName: request.ItemName,
		Quantity: request.Quantity,
	})
	if err != nil {
		return fmt.Errorf("could not create order: %w", err)
	}

	if _, err := h.inventory.ReduceQuantity(ctx, request.ItemName, request.Quantity); err != nil {
		log.FromContext(ctx).WithError(err).Error("Could not reduce inventory after creating order")
		return fmt.Errorf("could not reduce inventory: %w", err)
	}

	return c.JSON(http.StatusCreated, order)
}

func (h OrderHandler) GetOrderByID(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	order, err := h.orderRepo.GetByID(c.Request().Context(), orderID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, order)
}
