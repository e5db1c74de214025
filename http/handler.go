package http

import (
	"context"

	"stock/entities"

	"github.com/google/uuid"
)

type ProductRepository interface {
	Create(ctx context.Context, product entities.Product) (entities.Product, error)
	List(ctx context.Context, skip, limit int) ([]entities.Product, error)
	GetByID(ctx context.Context, productID uuid.UUID) (entities.Product, error)
	Update(ctx context.Context, product entities.Product) (entities.Product, error)
	Delete(ctx context.Context, productID uuid.UUID) error
	FindByName(ctx context.Context, name string) (entities.Product, error)
	ReduceQuantity(ctx context.Context, name string, amount int) (entities.Product, error)
	QuantityByID(ctx context.Context, productID uuid.UUID) (int, error)
}

// SupplyRequester is the producer side of the supply protocol.
type SupplyRequester interface {
	RequestSupply(ctx context.Context, itemID string, currentQuantity, requestedQuantity int) error
}

type Handler struct {
	productRepo     ProductRepository
	supplyRequester SupplyRequester
}
