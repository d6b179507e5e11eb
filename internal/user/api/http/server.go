package http

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	database "food-delivery/internal/user/adapter/db"
	"food-delivery/internal/user/api/http/handle"
	"food-delivery/internal/user/app/core"
	"food-delivery/internal/user/app/services"
	"food-delivery/internal/xpkg/config"
	"food-delivery/internal/xpkg/docstore"
	"food-delivery/internal/xpkg/httpx"
	"food-delivery/internal/xpkg/logger"
	"food-delivery/internal/xpkg/server"
	"food-delivery/internal/xpkg/tracing"
)

const serviceName = "user-service"

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

	store, err := docstore.Open(s.ctx, s.cfg.Store, s.mylog, core.UsersCollection, core.AddressesCollection)
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
	userService := services.NewUserService(database.NewUserRepo(store), mylog)
	userHandler := handle.NewUserHandler(userService, mylog)

	mux := http.NewServeMux()
	mux.Handle("POST /users", userHandler.Create())
	mux.Handle("GET /users/{id}", userHandler.Get())
	mux.Handle("POST /users/{id}/addresses", userHandler.AddAddress())
	mux.Handle("GET /users/{id}/addresses", userHandler.ListAddresses())
	mux.Handle("PUT /users/{id}/addresses/{address_id}", userHandler.UpdateAddress())
	mux.Handle("DELETE /users/{id}/addresses/{address_id}", userHandler.DeleteAddress())
	mux.Handle("GET /health", httpx.Health(serviceName))
	return mux
}
