package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"stock/entities"

	"github.com/google/uuid"
)

type ProductRepository struct {
	db *DB
}

func NewProductRepository(db *DB) ProductRepository {
	if db == nil {
		panic("db is nil")
	}
	return ProductRepository{
		db: db,
	}
}

func (pr ProductRepository) Create(ctx context.Context, product entities.Product) (entities.Product, error) {
	var created entities.Product
	err := pr.db.Conn.GetContext(ctx, &created, `
		INSERT INTO products (name, description, quantity)
		VALUES ($1, $2, $3)
		RETURNING product_id, name, description, quantity`,
		product.Name, product.Description, product.Quantity,
	)
	if isErrorUniqueViolation(err) {
		return entities.Product{}, entities.ErrProductAlreadyExists
	}
	if err != nil {
		return entities.Product{}, fmt.Errorf("could not create product: %w", err)
	}
	return created, nil
}

func (pr ProductRepository) List(ctx context.Context, skip, limit int) ([]entities.Product, error) {
	products := []entities.Product{}
	err := pr.db.Conn.SelectContext(ctx, &products, `
		SELECT product_id, name, description, quantity
		FROM products
		ORDER BY name
		OFFSET $1 LIMIT $2`,
		skip, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("could not list products: %w", err)
	}
	return products, nil
}

func (pr ProductRepository) GetByID(ctx context.Context, productID uuid.UUID) (entities.Product, error) {
	var product entities.Product
	err := pr.db.Conn.GetContext(ctx, &product, `
		SELECT product_id, name, description, quantity
		FROM products WHERE product_id = $1`,
		productID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Product{}, entities.ErrProductNotFound
	}
	if err != nil {
		return entities.Product{}, fmt.Errorf("could not get product: %w", err)
	}
	return product, nil
}

func (pr ProductRepository) Update(ctx context.Context, product entities.Product) (entities.Product, error) {
	var updated entities.Product
	err := pr.db.Conn.GetContext(ctx, &updated, `
		UPDATE products
		SET name = $2, description = $3, quantity = $4
		WHERE product_id = $1
		RETURNING product_id, name, description, quantity`,
		product.ID, product.Name, product.Description, product.Quantity,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Product{}, entities.ErrProductNotFound
	}
	if err != nil {
		return entities.Product{}, fmt.Errorf("could not update product: %w", err)
	}
	return updated, nil
}

func (pr ProductRepository) Delete(ctx context.Context, productID uuid.UUID) error {
	res, err := pr.db.Conn.ExecContext(ctx,
		`DELETE FROM products WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("could not delete product: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not delete product: %w", err)
	}
	if deleted == 0 {
		return entities.ErrProductNotFound
	}
	return nil
}

func (pr ProductRepository) FindByName(ctx context.Context, name string) (entities.Product, error) {
	var product entities.Product
	err := pr.db.Conn.GetContext(ctx, &product, `
		SELECT product_id, name, description, quantity
		FROM products WHERE name = $1`,
		name,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Product{}, entities.ErrProductNotFound
	}
	if err != nil {
		return entities.Product{}, fmt.Errorf("could not find product by name: %w", err)
	}
	return product, nil
}

// ReduceQuantity decrements in a single conditional UPDATE so a failed
// reduction never touches the stored quantity and concurrent updates
// for the same product serialize on the row.
func (pr ProductRepository) ReduceQuantity(ctx context.Context, name string, amount int) (entities.Product, error) {
	if amount <= 0 {
		return entities.Product{}, entities.ErrInvalidQuantity
	}

	var product entities.Product
	err := pr.db.Conn.GetContext(ctx, &product, `
		UPDATE products
		SET quantity = quantity - $2
		WHERE name = $1 AND quantity >= $2
		RETURNING product_id, name, description, quantity`,
		name, amount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		if _, findErr := pr.FindByName(ctx, name); findErr != nil {
			return entities.Product{}, findErr
		}
		return entities.Product{}, entities.ErrInsufficientStock
	}
	if err != nil {
		return entities.Product{}, fmt.Errorf("could not reduce quantity: %w", err)
	}
	return product, nil
}

func (pr ProductRepository) IncreaseQuantity(ctx context.Context, name string, amount int) (entities.Product, error) {
	if amount <= 0 {
		return entities.Product{}, entities.ErrInvalidQuantity
	}

	var product entities.Product
	err := pr.db.Conn.GetContext(ctx, &product, `
		UPDATE products
		SET quantity = quantity + $2
		WHERE name = $1
		RETURNING product_id, name, description, quantity`,
		name, amount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Product{}, entities.ErrProductNotFound
	}
	if err != nil {
		return entities.Product{}, fmt.Errorf("could not increase quantity: %w", err)
	}
	return product, nil
}

func (pr ProductRepository) SetQuantity(ctx context.Context, name string, quantity int) (entities.Product, error) {
	if quantity < 0 {
		return entities.Product{}, entities.ErrInvalidQuantity
	}

	var product entities.Product
	err := pr.db.Conn.GetContext(ctx, &product, `
		UPDATE products
		SET quantity = $2
		WHERE name = $1
		RETURNING product_id, name, description, quantity`,
		name, quantity,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Product{}, entities.ErrProductNotFound
	}
	if err != nil {
		return entities.Product{}, fmt.Errorf("could not set quantity: %w", err)
	}
	return product, nil
}

func (pr ProductRepository) QuantityByID(ctx context.Context, productID uuid.UUID) (int, error) {
	var quantity int
	err := pr.db.Conn.GetContext(ctx, &quantity,
		`SELECT quantity FROM products WHERE product_id = $1`, productID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, entities.ErrProductNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("could not get product quantity: %w", err)
	}
	return quantity, nil
}
