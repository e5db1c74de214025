package db

import (
	"context"
	"errors"
	"testing"

	"stock/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepositoryMock_SequentialIncreasesAreAdditive(t *testing.T) {
	repo := NewProductRepositoryMock()
	ctx := context.Background()

	_, err := repo.Create(ctx, entities.Product{Name: "Widget", Quantity: 2})
	require.NoError(t, err)

	increases := []int{7, 7, 7, 3}
	sum := 0
	for _, k := range increases {
		_, err = repo.IncreaseQuantity(ctx, "Widget", k)
		require.NoError(t, err)
		sum += k
	}

	product, err := repo.FindByName(ctx, "Widget")
	require.NoError(t, err)
	assert.Equal(t, 2+sum, product.Quantity)
}

func TestProductRepositoryMock_ReduceBelowZeroFails(t *testing.T) {
	repo := NewProductRepositoryMock()
	ctx := context.Background()

	_, err := repo.Create(ctx, entities.Product{Name: "Widget", Quantity: 2})
	require.NoError(t, err)

	_, err = repo.ReduceQuantity(ctx, "Widget", 5)
	assert.True(t, errors.Is(err, entities.ErrInsufficientStock))

	product, err := repo.FindByName(ctx, "Widget")
	require.NoError(t, err)
	assert.Equal(t, 2, product.Quantity)
}
