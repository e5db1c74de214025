package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock/config"
	"stock/db"
	"stock/entities"
)

func testConfig() config.Config {
	cfg := config.Load()
	cfg.SupplyRequestQueue = "supply_request_queue"
	cfg.SupplyReplyQueue = "serviceA.reply"
	cfg.ReconcilePolicy = "increase"
	return cfg
}

func startServices(t *testing.T, cfg config.Config, store ProductStore) (Inventory, Supply, *httptest.Server) {
	t.Helper()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() {
		_ = pubSub.Close()
	})

	inventory := NewInventory(cfg, pubSub, pubSub, store)
	supplySvc := NewSupply(cfg, pubSub, pubSub)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go func() {
		_ = inventory.watermillRouter.Run(ctx)
	}()
	go func() {
		_ = supplySvc.watermillRouter.Run(ctx)
	}()

	<-inventory.watermillRouter.Running()
	<-supplySvc.watermillRouter.Running()

	server := httptest.NewServer(inventory.echoRouter)
	t.Cleanup(server.Close)

	return inventory, supplySvc, server
}

func TestSupplyRequestReplyFlow(t *testing.T) {
	store := db.NewProductRepositoryMock()
	_, err := store.Create(context.Background(), entities.Product{Name: "Widget", Quantity: 2})
	require.NoError(t, err)

	_, supplySvc, server := startServices(t, testConfig(), store)

	resp, err := http.Get(server.URL + "/products/Widget/availability?quantity=5")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var availability entities.Availability
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&availability))
	assert.False(t, availability.Available)

	// the supply service grants 2+5=7 and the reconciler adds it on top
	// of the stored 2
	assert.EventuallyWithT(t, func(t *assert.CollectT) {
		product, err := store.FindByName(context.Background(), "Widget")
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, 9, product.Quantity)
	}, 5*time.Second, 50*time.Millisecond)

	snapshot := supplySvc.Metrics().Snapshot()
	assert.Equal(t, int64(1), snapshot.TotalRequests)
	assert.Equal(t, int64(1), snapshot.SuccessfulRequests)
	assert.Equal(t, int64(0), snapshot.FailedRequests)
}

func TestSupplyRequestReplyFlow_AbsolutePolicy(t *testing.T) {
	store := db.NewProductRepositoryMock()
	_, err := store.Create(context.Background(), entities.Product{Name: "Widget", Quantity: 2})
	require.NoError(t, err)

	cfg := testConfig()
	cfg.ReconcilePolicy = "absolute"

	_, _, server := startServices(t, cfg, store)

	resp, err := http.Get(server.URL + "/products/Widget/availability?quantity=5")
	require.NoError(t, err)
	resp.Body.Close()

	assert.EventuallyWithT(t, func(t *assert.CollectT) {
		product, err := store.FindByName(context.Background(), "Widget")
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, 7, product.Quantity)
	}, 5*time.Second, 50*time.Millisecond)
}

func TestSupplyRequestReplyFlow_PendingTracking(t *testing.T) {
	store := db.NewProductRepositoryMock()
	_, err := store.Create(context.Background(), entities.Product{Name: "Widget", Quantity: 2})
	require.NoError(t, err)

	cfg := testConfig()
	cfg.TrackPending = true
	cfg.PendingTTL = time.Minute

	_, _, server := startServices(t, cfg, store)

	resp, err := http.Get(server.URL + "/products/Widget/availability?quantity=5")
	require.NoError(t, err)
	resp.Body.Close()

	assert.EventuallyWithT(t, func(t *assert.CollectT) {
		product, err := store.FindByName(context.Background(), "Widget")
		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, 9, product.Quantity)
	}, 5*time.Second, 50*time.Millisecond)
}

func TestInventoryRunsWithPendingTrackingAndNoTTL(t *testing.T) {
	store := db.NewProductRepositoryMock()

	cfg := testConfig()
	cfg.TrackPending = true
	cfg.PendingTTL = 0
	cfg.HTTPAddr = "127.0.0.1:0"

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() {
		_ = pubSub.Close()
	})

	inventory := NewInventory(cfg, pubSub, pubSub, store)

	ctx, cancel := context.WithCancel(context.Background())
	runDone := make(chan error, 1)
	go func() {
		runDone <- inventory.Run(ctx)
	}()

	<-inventory.watermillRouter.Running()
	cancel()

	select {
	case err := <-runDone:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("inventory service did not shut down")
	}
}

func TestSweepIntervalFor(t *testing.T) {
	assert.Equal(t, time.Duration(0), sweepIntervalFor(0))
	assert.Equal(t, time.Second, sweepIntervalFor(time.Second))
	assert.Equal(t, 150*time.Second, sweepIntervalFor(300*time.Second))
}

func TestAvailabilityIsSynchronousAndNonBlocking(t *testing.T) {
	store := db.NewProductRepositoryMock()
	_, err := store.Create(context.Background(), entities.Product{Name: "Widget", Quantity: 0})
	require.NoError(t, err)

	_, _, server := startServices(t, testConfig(), store)

	start := time.Now()
	resp, err := http.Get(server.URL + "/products/Widget/availability?quantity=100")
	require.NoError(t, err)
	defer resp.Body.Close()

	var availability entities.Availability
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&availability))
	assert.False(t, availability.Available)
	assert.Less(t, time.Since(start), 2*time.Second)
}
