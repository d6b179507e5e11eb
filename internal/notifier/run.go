package notifier

import (
	"context"
	"errors"
	"os"

	brokermessage "food-delivery/internal/notifier/adapter/broker_message"
	"food-delivery/internal/notifier/adapter/consumer"
	"food-delivery/internal/notifier/app/core"
	"food-delivery/internal/notifier/app/services"
	"food-delivery/internal/xpkg/config"
	"food-delivery/internal/xpkg/logger"
	"food-delivery/internal/xpkg/server"
)

var ErrNoBroker = errors.New("order-notifier requires RABBITMQ_URL")

// Execute consumes order events and prints a notification for each until ctx is done.
func Execute(ctx context.Context, cfg *config.Config, mylog logger.Logger) error {
	mylog = mylog.With("service", cfg.Service)
	if cfg.RMQ.Addr() == "" {
		return ErrNoBroker
	}
	mylog.Action("config_loaded").Info("Starting order notifier", "queue", cfg.RMQ.Queue, "exchange", cfg.RMQ.Exchange)

	open := func() (core.IConsumer, error) {
		return brokermessage.New(cfg.RMQ, mylog)
	}
	n := consumer.NewNotifier(ctx, open, services.NewNotifyService(os.Stdout, mylog), mylog)
	return server.Serve(ctx, n, mylog)
}
