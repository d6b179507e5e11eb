package order

import (
	"context"

	"food-delivery/internal/order/api/http"
	"food-delivery/internal/xpkg/config"
	"food-delivery/internal/xpkg/logger"
	"food-delivery/internal/xpkg/server"
)

// Execute starts the order service and blocks until ctx is done or the server fails.
func Execute(ctx context.Context, cfg *config.Config, mylog logger.Logger) error {
	mylog = mylog.With("service", cfg.Service)
	mylog.Action("config_loaded").Info("Starting order service",
		"port", cfg.Server.Port, "store", cfg.Store.Driver, "strict_status", cfg.Orders.StrictStatus)

	return server.Serve(ctx, http.NewServer(ctx, cfg, mylog), mylog)
}
