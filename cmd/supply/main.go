package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"stock/config"
	"stock/message"
	"stock/pkg/log"
	"stock/service"
	observability "stock/trace"
)

func main() {
	cfg := config.Load()

	tp := observability.ConfigureTraceProvider("supply-service")
	defer func() {
		_ = tp.Shutdown(context.Background())
	}()

	watermillLogger := log.NewWatermill(logrus.NewEntry(logrus.StandardLogger()))

	// replies go to whatever non-durable reply queue the request names;
	// requests are consumed from the durable request queue
	publisher := message.NewPublisher(cfg, false, watermillLogger)
	subscriber := message.NewSubscriber(cfg, true, "supply-service", watermillLogger)

	svc := service.NewSupply(cfg, publisher, subscriber)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := svc.Run(ctx); err != nil {
		logrus.WithError(err).Fatal("supply service stopped")
	}
}
