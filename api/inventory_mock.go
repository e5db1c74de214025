package api

import (
	"context"
	"sync"

	"stock/entities"
)

// InventoryMock stands in for the inventory service in order service tests.
type InventoryMock struct {
	lock sync.Mutex

	Quantities map[string]int
	Reductions []int
}

func NewInventoryMock(quantities map[string]int) *InventoryMock {
	return &InventoryMock{
		Quantities: quantities,
	}
}

func (m *InventoryMock) CheckAvailability(ctx context.Context, itemName string, quantity int) (bool, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	current, ok := m.Quantities[itemName]
	if !ok {
		return false, entities.ErrProductNotFound
	}
	return current >= quantity, nil
}

func (m *InventoryMock) ReduceQuantity(ctx context.Context, itemName string, quantity int) (entities.Product, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	current, ok := m.Quantities[itemName]
	if !ok {
		return entities.Product{}, entities.ErrProductNotFound
	}
	if current < quantity {
		return entities.Product{}, entities.ErrInsufficientStock
	}
	m.Quantities[itemName] = current - quantity
	m.Reductions = append(m.Reductions, quantity)
	return entities.Product{Name: itemName, Quantity: current - quantity}, nil
}
