package http

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	database "food-delivery/internal/shipper/adapter/db"
	"food-delivery/internal/shipper/api/http/handle"
	"food-delivery/internal/shipper/app/core"
	"food-delivery/internal/shipper/app/services"
	"food-delivery/internal/xpkg/config"
	"food-delivery/internal/xpkg/docstore"
	"food-delivery/internal/xpkg/httpx"
	"food-delivery/internal/xpkg/logger"
	"food-delivery/internal/xpkg/server"
	"food-delivery/internal/xpkg/tracing"
)

const serviceName = "shipper-service"

type Server struct {
	ctx   context.Context
	cfg   *config.Config
	mylog logger.Logger

	mu  sync.Mutex
	srv *server.Server
}

func NewServer(ctx context.Context, cfg *config.Config, mylog logger.Logger) *Server {
	return &Server{ctx: ctx, cfg: cfg, mylog: mylog}
}

func (s *Server) Run() error {
	shutdownTracing, err := tracing.Init(s.ctx, serviceName, s.cfg.Tracing)
	if err != nil {
		s.mylog.Action("tracing_init_failed").Error("Failed to init tracing", err)
		return err
	}

	store, err := docstore.Open(s.ctx, s.cfg.Store, s.mylog, core.ShippersCollection)
	if err != nil {
		s.mylog.Action("db_connection_failed").Error("Failed to connect to database", err)
		_ = shutdownTracing(context.Background())
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.mylog.Action("db_connected").Info("Successful database connection", "driver", s.cfg.Store.Driver)

	srv := server.New(s.ctx, serviceName, s.cfg.Server.Port, s.cfg.Server.ShutdownTimeout, NewHandler(store, s.mylog), s.mylog)
	srv.OnStop("db", store.Close)
	srv.OnStop("tracing", shutdownTracing)

	s.mu.Lock()
	s.srv = srv
	s.mu.Unlock()

	return srv.Run()
}

func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Stop(ctx)
}

func NewHandler(store docstore.Store, mylog logger.Logger) http.Handler {
	shipperService := services.NewShipperService(database.NewShipperRepo(store), mylog)
	shipperHandler := handle.NewShipperHandler(shipperService, mylog)

	mux := http.NewServeMux()
	mux.Handle("POST /shippers", shipperHandler.Create())
	mux.Handle("GET /shippers", shipperHandler.ListAvailable())
	mux.Handle("GET /shippers/{id}", shipperHandler.Get())
	mux.Handle("PUT /shippers/{id}/status", shipperHandler.UpdateStatus())
	mux.Handle("GET /health", httpx.Health(serviceName))
	return mux
}
