package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock/db"
	"stock/entities"
)

type supplyRequesterMock struct {
	lock     sync.Mutex
	requests []entities.SupplyRequest
}

func (m *supplyRequesterMock) RequestSupply(ctx context.Context, itemID string, currentQuantity, requestedQuantity int) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.requests = append(m.requests, entities.SupplyRequest{
		ItemID:            itemID,
		CurrentQuantity:   currentQuantity,
		RequestedQuantity: requestedQuantity,
	})
	return nil
}

func newInventoryTestServer(t *testing.T) (*db.ProductRepositoryMock, *supplyRequesterMock, *httptest.Server) {
	t.Helper()

	repo := db.NewProductRepositoryMock()
	requester := &supplyRequesterMock{}

	server := httptest.NewServer(NewInventoryRouter(repo, requester))
	t.Cleanup(server.Close)

	return repo, requester, server
}

func TestGetAvailability(t *testing.T) {
	repo, requester, server := newInventoryTestServer(t)

	_, err := repo.Create(context.Background(), entities.Product{Name: "Widget", Quantity: 2})
	require.NoError(t, err)

	resp, err := http.Get(server.URL + "/products/Widget/availability?quantity=2")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var availability entities.Availability
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&availability))
	assert.True(t, availability.Available)
	assert.Empty(t, requester.requests)
}

func TestGetAvailability_InsufficientStockFiresSupplyRequest(t *testing.T) {
	repo, requester, server := newInventoryTestServer(t)

	_, err := repo.Create(context.Background(), entities.Product{Name: "Widget", Quantity: 2})
	require.NoError(t, err)

	resp, err := http.Get(server.URL + "/products/Widget/availability?quantity=5")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var availability entities.Availability
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&availability))
	assert.False(t, availability.Available)

	require.Len(t, requester.requests, 1)
	assert.Equal(t, "Widget", requester.requests[0].ItemID)
	assert.Equal(t, 2, requester.requests[0].CurrentQuantity)
	assert.Equal(t, 5, requester.requests[0].RequestedQuantity)
}

func TestGetAvailability_UnknownProduct(t *testing.T) {
	_, _, server := newInventoryTestServer(t)

	resp, err := http.Get(server.URL + "/products/Nothing/availability?quantity=1")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPostReduceQuantity(t *testing.T) {
	repo, _, server := newInventoryTestServer(t)

	_, err := repo.Create(context.Background(), entities.Product{Name: "Widget", Quantity: 10})
	require.NoError(t, err)

	resp, err := http.Post(server.URL+"/products/Widget/reduce-quantity",
		"application/json", strings.NewReader(`{"quantity":4}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var product entities.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&product))
	assert.Equal(t, 6, product.Quantity)
}

func TestPostReduceQuantity_Errors(t *testing.T) {
	repo, _, server := newInventoryTestServer(t)

	_, err := repo.Create(context.Background(), entities.Product{Name: "Widget", Quantity: 2})
	require.NoError(t, err)

	cases := []struct {
		name       string
		path       string
		body       string
		wantStatus int
	}{
		{
			name:       "not enough stock",
			path:       "/products/Widget/reduce-quantity",
			body:       `{"quantity":5}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "non-positive quantity",
			path:       "/products/Widget/reduce-quantity",
			body:       `{"quantity":0}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown product",
			path:       "/products/Nothing/reduce-quantity",
			body:       `{"quantity":1}`,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Post(server.URL+tc.path,
				"application/json", strings.NewReader(tc.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.wantStatus, resp.StatusCode)
		})
	}

	// a failed reduction leaves the quantity untouched
	product, err := repo.FindByName(context.Background(), "Widget")
	require.NoError(t, err)
	assert.Equal(t, 2, product.Quantity)
}

func TestProductCRUD(t *testing.T) {
	_, _, server := newInventoryTestServer(t)

	resp, err := http.Post(server.URL+"/products", "application/json",
		strings.NewReader(`{"name":"Widget","description":"a widget","quantity":3}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created entities.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "Widget", created.Name)
	assert.Equal(t, 3, created.Quantity)

	getResp, err := http.Get(server.URL + "/products/" + created.ID.String())
	require.NoError(t, err)
	defer getResp.Body.Close()
	assert.Equal(t, http.StatusOK, getResp.StatusCode)

	quantityResp, err := http.Get(server.URL + "/products/" + created.ID.String() + "/quantity")
	require.NoError(t, err)
	defer quantityResp.Body.Close()
	require.Equal(t, http.StatusOK, quantityResp.StatusCode)

	var quantity map[string]int
	require.NoError(t, json.NewDecoder(quantityResp.Body).Decode(&quantity))
	assert.Equal(t, 3, quantity["quantity"])

	dupResp, err := http.Post(server.URL+"/products", "application/json",
		strings.NewReader(`{"name":"Widget","quantity":1}`))
	require.NoError(t, err)
	defer dupResp.Body.Close()
	assert.Equal(t, http.StatusConflict, dupResp.StatusCode)
}
