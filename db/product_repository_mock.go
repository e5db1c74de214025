package db

import (
	"context"
	"sync"

	"stock/entities"

	"github.com/google/uuid"
)

// ProductRepositoryMock keeps products in memory. Used by component
// tests instead of Postgres.
type ProductRepositoryMock struct {
	lock     sync.Mutex
	products map[string]entities.Product
}

func NewProductRepositoryMock() *ProductRepositoryMock {
	return &ProductRepositoryMock{
		products: map[string]entities.Product{},
	}
}

func (m *ProductRepositoryMock) Create(ctx context.Context, product entities.Product) (entities.Product, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if _, ok := m.products[product.Name]; ok {
		return entities.Product{}, entities.ErrProductAlreadyExists
	}
	product.ID = uuid.New()
	m.products[product.Name] = product
	return product, nil
}

func (m *ProductRepositoryMock) List(ctx context.Context, skip, limit int) ([]entities.Product, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	all := make([]entities.Product, 0, len(m.products))
	for _, product := range m.products {
		all = append(all, product)
	}
	if skip >= len(all) {
		return []entities.Product{}, nil
	}
	all = all[skip:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (m *ProductRepositoryMock) GetByID(ctx context.Context, productID uuid.UUID) (entities.Product, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	for _, product := range m.products {
		if product.ID == productID {
			return product, nil
		}
	}
	return entities.Product{}, entities.ErrProductNotFound
}

func (m *ProductRepositoryMock) Update(ctx context.Context, product entities.Product) (entities.Product, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	for name, existing := range m.products {
		if existing.ID == product.ID {
			delete(m.products, name)
			m.products[product.Name] = product
			return product, nil
		}
	}
	return entities.Product{}, entities.ErrProductNotFound
}

func (m *ProductRepositoryMock) Delete(ctx context.Context, productID uuid.UUID) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	for name, existing := range m.products {
		if existing.ID == productID {
			delete(m.products, name)
			return nil
		}
	}
	return entities.ErrProductNotFound
}

func (m *ProductRepositoryMock) FindByName(ctx context.Context, name string) (entities.Product, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	product, ok := m.products[name]
	if !ok {
		return entities.Product{}, entities.ErrProductNotFound
	}
	return product, nil
}

func (m *ProductRepositoryMock) ReduceQuantity(ctx context.Context, name string, amount int) (entities.Product, error) {
	if amount <= 0 {
		return entities.Product{}, entities.ErrInvalidQuantity
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	product, ok := m.products[name]
	if !ok {
		return entities.Product{}, entities.ErrProductNotFound
	}
	if product.Quantity < amount {
		return entities.Product{}, entities.ErrInsufficientStock
	}
	product.Quantity -= amount
	m.products[name] = product
	return product, nil
}

func (m *ProductRepositoryMock) IncreaseQuantity(ctx context.Context, name string, amount int) (entities.Product, error) {
	if amount <= 0 {
		return entities.Product{}, entities.ErrInvalidQuantity
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	product, ok := m.products[name]
	if !ok {
		return entities.Product{}, entities.ErrProductNotFound
	}
	product.Quantity += amount
	m.products[name] = product
	return product, nil
}

func (m *ProductRepositoryMock) SetQuantity(ctx context.Context, name string, quantity int) (entities.Product, error) {
	if quantity < 0 {
		return entities.Product{}, entities.ErrInvalidQuantity
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	product, ok := m.products[name]
	if !ok {
		return entities.Product{}, entities.ErrProductNotFound
	}
	product.Quantity = quantity
	m.products[name] = product
	return product, nil
}

func (m *ProductRepositoryMock) QuantityByID(ctx context.Context, productID uuid.UUID) (int, error) {
	product, err := m.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	return product.Quantity, nil
}
