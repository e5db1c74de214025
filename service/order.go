package service

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"stock/config"
	stockHttp "stock/http"
)

// Order runs the order service. It talks to the inventory service over
// HTTP only; the broker is not involved.
type Order struct {
	echoRouter *echo.Echo
	httpAddr   string
}

func NewOrder(
	cfg config.Config,
	orders stockHttp.OrderRepository,
	inventory stockHttp.InventoryService,
) Order {
	return Order{
		echoRouter: stockHttp.NewOrderRouter(orders, inventory),
		httpAddr:   cfg.HTTPAddr,
	}
}

func (s Order) Run(ctx context.Context) error {
	errgrp, ctx := errgroup.WithContext(ctx)

	errgrp.Go(func() error {
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
