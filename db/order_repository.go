package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"stock/entities"

	"github.com/google/uuid"
)

type OrderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) OrderRepository {
	if db == nil {
		panic("db is nil")
	}
	return OrderRepository{
		db: db,
	}
}

func (or OrderRepository) Create(ctx context.Context, order entities.Order) (entities.Order, error) {
	var created entities.Order
	err := or.db.Conn.GetContext(ctx, &created, `
		INSERT INTO orders (item_name, quantity)
		VALUES ($1, $2)
		RETURNING order_id, item_name, quantity, created_at`,
		order.ItemName, order.Quantity,
	)
	if err != nil {
		return entities.Order{}, fmt.Errorf("could not create order: %w", err)
	}
	return created, nil
}

func (or OrderRepository) GetByID(ctx context.Context, orderID uuid.UUID) (entities.Order, error) {
	var order entities.Order
	err := or.db.Conn.GetContext(ctx, &order, `
		SELECT order_id, item_name, quantity, created_at
		FROM orders WHERE order_id = $1`,
		orderID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("could not get order: %w", err)
	}
	return order, nil
}
