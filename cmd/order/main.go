package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"stock/api"
	"stock/config"
	"stock/db"
	"stock/service"
	observability "stock/trace"
)

func main() {
	cfg := config.Load()

	tp := observability.ConfigureTraceProvider("order-service")
	defer func() {
		_ = tp.Shutdown(context.Background())
	}()

	conn, err := db.NewDBConn(cfg.PostgresURL)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to Postgres")
	}
	defer conn.Close()
	conn.MigrateSchema()

	orderRepo := db.NewOrderRepository(&conn)
	inventory := api.NewInventoryServiceClient(cfg.InventoryServiceURL)

	svc := service.NewOrder(cfg, orderRepo, inventory)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := svc.Run(ctx); err != nil {
		logrus.WithError(err).Fatal("order service stopped")
	}
}
