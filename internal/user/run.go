package user

import (
	"context"

	"food-delivery/internal/user/api/http"
	"food-delivery/internal/xpkg/config"
	"food-delivery/internal/xpkg/logger"
	"food-delivery/internal/xpkg/server"
)

func Execute(ctx context.Context, cfg *config.Config, mylog logger.Logger) error {
	mylog = mylog.With("service", cfg.Service)
	mylog.Action("config_loaded").Info("Starting user service", "port", cfg.Server.Port, "store", cfg.Store.Driver)

	return server.Serve(ctx, http.NewServer(ctx, cfg, mylog), mylog)
}
