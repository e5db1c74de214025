package db

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"stock/entities"

	"github.com/jmoiron/sqlx"
	"github.com/lithammer/shortuuid/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDB *sqlx.DB
var getDbOnce sync.Once

func getDb(t *testing.T) *sqlx.DB {
	t.Helper()

	if os.Getenv("POSTGRES_URL") == "" {
		t.Skip("POSTGRES_URL not set")
	}

	getDbOnce.Do(func() {
		var err error
		testDB, err = sqlx.Open("postgres", os.Getenv("POSTGRES_URL"))
		if err != nil {
			panic(err)
		}
	})
	return testDB
}

func newTestProduct(quantity int) entities.Product {
	return entities.Product{
		Name:        "widget-" + shortuuid.New(),
		Description: "test widget",
		Quantity:    quantity,
	}
}

func TestProductRepository_ReduceQuantity(t *testing.T) {
	conn := DB{Conn: getDb(t)}
	conn.MigrateSchema()
	repo := NewProductRepository(&conn)
	ctx := context.Background()

	product, err := repo.Create(ctx, newTestProduct(10))
	require.NoError(t, err)

	reduced, err := repo.ReduceQuantity(ctx, product.Name, 4)
	require.NoError(t, err)
	assert.Equal(t, 6, reduced.Quantity)

	_, err = repo.ReduceQuantity(ctx, product.Name, 7)
	assert.True(t, errors.Is(err, entities.ErrInsufficientStock))

	unchanged, err := repo.FindByName(ctx, product.Name)
	require.NoError(t, err)
	assert.Equal(t, 6, unchanged.Quantity)

	_, err = repo.ReduceQuantity(ctx, product.Name, 0)
	assert.True(t, errors.Is(err, entities.ErrInvalidQuantity))

	_, err = repo.ReduceQuantity(ctx, "no-such-product", 1)
	assert.True(t, errors.Is(err, entities.ErrProductNotFound))
}

func TestProductRepository_IncreaseQuantity(t *testing.T) {
	conn := DB{Conn: getDb(t)}
	conn.MigrateSchema()
	repo := NewProductRepository(&conn)
	ctx := context.Background()

	product, err := repo.Create(ctx, newTestProduct(2))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = repo.IncreaseQuantity(ctx, product.Name, 7)
		require.NoError(t, err)
	}

	increased, err := repo.FindByName(ctx, product.Name)
	require.NoError(t, err)
	assert.Equal(t, 2+3*7, increased.Quantity)
}

func TestProductRepository_SetQuantity(t *testing.T) {
	conn := DB{Conn: getDb(t)}
	conn.MigrateSchema()
	repo := NewProductRepository(&conn)
	ctx := context.Background()

	product, err := repo.Create(ctx, newTestProduct(2))
	require.NoError(t, err)

	set, err := repo.SetQuantity(ctx, product.Name, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, set.Quantity)

	_, err = repo.SetQuantity(ctx, product.Name, -1)
	assert.True(t, errors.Is(err, entities.ErrInvalidQuantity))
}

func TestProductRepository_CreateDuplicate(t *testing.T) {
	conn := DB{Conn: getDb(t)}
	conn.MigrateSchema()
	repo := NewProductRepository(&conn)
	ctx := context.Background()

	product, err := repo.Create(ctx, newTestProduct(1))
	require.NoError(t, err)

	_, err = repo.Create(ctx, entities.Product{Name: product.Name})
	assert.True(t, errors.Is(err, entities.ErrProductAlreadyExists))
}
