package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"stock/config"
	"stock/db"
	"stock/message"
	"stock/pkg/log"
	"stock/service"
	observability "stock/trace"
)

func main() {
	cfg := config.Load()

	tp := observability.ConfigureTraceProvider("inventory-service")
	defer func() {
		_ = tp.Shutdown(context.Background())
	}()

	conn, err := db.NewDBConn(cfg.PostgresURL)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to Postgres")
	}
	defer conn.Close()
	conn.MigrateSchema()

	watermillLogger := log.NewWatermill(logrus.NewEntry(logrus.StandardLogger()))

	// supply requests go to the durable request queue; replies come back
	// on this service's non-durable reply queue
	publisher := message.NewPublisher(cfg, true, watermillLogger)
	subscriber := message.NewSubscriber(cfg, false, "inventory-service", watermillLogger)

	productRepo := db.NewProductRepository(&conn)

	svc := service.NewInventory(cfg, publisher, subscriber, productRepo)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := svc.Run(ctx); err != nil {
		logrus.WithError(err).Fatal("inventory service stopped")
	}
}
