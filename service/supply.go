package service

import (
	"context"
	"net/http"

	watermillMessage "github.com/ThreeDotsLabs/watermill/message"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"stock/config"
	stockHttp "stock/http"
	"stock/message"
	"stock/message/supply"
	"stock/pkg/log"
	observability "stock/trace"
)

// Supply runs the supply service: the consumer on the durable request
// queue and the metrics HTTP endpoint.
type Supply struct {
	watermillRouter *watermillMessage.Router
	echoRouter      *echo.Echo
	httpAddr        string

	metrics *supply.Metrics
}

func NewSupply(
	cfg config.Config,
	publisher watermillMessage.Publisher,
	subscriber watermillMessage.Subscriber,
) Supply {
	watermillLogger := log.NewWatermill(logrus.NewEntry(logrus.StandardLogger()))

	publisher = log.CorrelationPublisherDecorator{Publisher: publisher}
	publisher = observability.TracingPublisherDecorator{Publisher: publisher}

	registry := prometheus.NewRegistry()
	metrics := supply.NewMetrics(registry)
	consumer := supply.NewConsumer(publisher, metrics)

	watermillRouter := message.NewSupplyRouter(
		cfg.SupplyRequestQueue,
		subscriber,
		consumer,
		watermillLogger,
	)

	echoRouter := stockHttp.NewSupplyRouter(metrics, cfg.SupplyRequestQueue, registry)

	return Supply{
		watermillRouter: watermillRouter,
		echoRouter:      echoRouter,
		httpAddr:        cfg.HTTPAddr,
		metrics:         metrics,
	}
}

// Metrics exposes the counters to component tests.
func (s Supply) Metrics() *supply.Metrics {
	return s.metrics
}

func (s Supply) Run(ctx context.Context) error {
	errgrp, ctx := errgroup.WithContext(ctx)

	errgrp.Go(func() error {
		return s.watermillRouter.Run(ctx)
	})

	errgrp.Go(func() error {
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
