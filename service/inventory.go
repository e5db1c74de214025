package service

import (
	"context"
	"net/http"
	"time"

	watermillMessage "github.com/ThreeDotsLabs/watermill/message"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"stock/config"
	stockHttp "stock/http"
	"stock/message"
	"stock/message/supply"
	"stock/pkg/log"
	observability "stock/trace"
)

func init() {
	log.Init(logrus.InfoLevel)
}

// ProductStore is everything the inventory service needs from its
// storage: the HTTP CRUD surface plus the reconciler's adjustments.
type ProductStore interface {
	stockHttp.ProductRepository
	supply.InventoryStore
}

// Inventory runs the inventory side of the supply protocol: the HTTP API
// with the embedded supply request producer, and the reply reconciler.
type Inventory struct {
	watermillRouter *watermillMessage.Router
	echoRouter      *echo.Echo
	httpAddr        string

	pending       *supply.PendingTracker
	sweepInterval time.Duration
}

func NewInventory(
	cfg config.Config,
	publisher watermillMessage.Publisher,
	subscriber watermillMessage.Subscriber,
	products ProductStore,
) Inventory {
	watermillLogger := log.NewWatermill(logrus.NewEntry(logrus.StandardLogger()))

	publisher = log.CorrelationPublisherDecorator{Publisher: publisher}
	publisher = observability.TracingPublisherDecorator{Publisher: publisher}

	var pending *supply.PendingTracker
	if cfg.TrackPending {
		pending = supply.NewPendingTracker(cfg.PendingTTL)
	}

	producer := supply.NewProducer(publisher, cfg.SupplyRequestQueue, cfg.SupplyReplyQueue, pending)

	policy, err := supply.ParseReconcilePolicy(cfg.ReconcilePolicy)
	if err != nil {
		panic(err)
	}
	reconciler := supply.NewReconciler(products, policy, pending)

	watermillRouter := message.NewInventoryRouter(
		cfg.SupplyReplyQueue,
		subscriber,
		reconciler,
		watermillLogger,
	)

	echoRouter := stockHttp.NewInventoryRouter(products, producer)

	return Inventory{
		watermillRouter: watermillRouter,
		echoRouter:      echoRouter,
		httpAddr:        cfg.HTTPAddr,
		pending:         pending,
		sweepInterval:   sweepIntervalFor(cfg.PendingTTL),
	}
}

// sweepIntervalFor keeps sweeps timely for long TTLs without
// busy-looping on short ones. A zero ttl means entries never expire,
// so sweeping is disabled.
func sweepIntervalFor(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	interval := ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	return interval
}

func (s Inventory) Run(ctx context.Context) error {
	errgrp, ctx := errgroup.WithContext(ctx)

	errgrp.Go(func() error {
		return s.watermillRouter.Run(ctx)
	})

	if s.pending != nil {
		errgrp.Go(func() error {
			s.pending.Run(ctx.Done(), s.sweepInterval)
			return nil
		})
	}

	errgrp.Go(func() error {
		// we don't want to start HTTP server before the message router (so the service won't be healthy before it's ready)
		<-s.watermillRouter.Running()

		err := s.echoRouter.Start(s.httpAddr)
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	errgrp.Go(func() error {
		<-ctx.Done()
		return s.echoRouter.Shutdown(context.Background())
	})

	return errgrp.Wait()
}
