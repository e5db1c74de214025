package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"stock/entities"
)

// InventoryServiceClient talks to the inventory service's HTTP API on
// behalf of the order service.
type InventoryServiceClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewInventoryServiceClient(baseURL string) *InventoryServiceClient {
	if baseURL == "" {
		panic("missing inventory service URL")
	}
	return &InventoryServiceClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *InventoryServiceClient) CheckAvailability(ctx context.Context, itemName string, quantity int) (bool, error) {
	endpoint := fmt.Sprintf("%s/products/%s/availability?quantity=%d",
		c.baseURL, url.PathEscape(itemName), quantity)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("could not check availability: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, entities.ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("unexpected status code: %v", resp.StatusCode)
	}

	var availability entities.Availability
	if err := json.NewDecoder(resp.Body).Decode(&availability); err != nil {
		return false, fmt.Errorf("could not decode availability response: %w", err)
	}
	return availability.Available, nil
}

func (c *InventoryServiceClient) ReduceQuantity(ctx context.Context, itemName string, quantity int) (entities.Product, error) {
	endpoint := fmt.Sprintf("%s/products/%s/reduce-quantity",
		c.baseURL, url.PathEscape(itemName))

	body, err := json.Marshal(map[string]int{"quantity": quantity})
	if err != nil {
		return entities.Product{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return entities.Product{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return entities.Product{}, fmt.Errorf("could not reduce quantity: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return entities.Product{}, entities.ErrProductNotFound
	case http.StatusBadRequest:
		return entities.Product{}, entities.ErrInsufficientStock
	default:
		return entities.Product{}, fmt.Errorf("unexpected status code: %v", resp.StatusCode)
	}

	var product entities.Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return entities.Product{}, fmt.Errorf("could not decode product response: %w", err)
	}
	return product, nil
}
