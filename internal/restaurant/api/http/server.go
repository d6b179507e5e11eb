package http

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	database "food-delivery/internal/restaurant/adapter/db"
	"food-delivery/internal/restaurant/api/http/handle"
	"food-delivery/internal/restaurant/app/core"
	"food-delivery/internal/restaurant/app/services"
	"food-delivery/internal/xpkg/config"
	"food-delivery/internal/xpkg/docstore"
	"food-delivery/internal/xpkg/httpx"
	"food-delivery/internal/xpkg/logger"
	"food-delivery/internal/xpkg/server"
	"food-delivery/internal/xpkg/tracing"
)

const serviceName = "restaurant-service"

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

	store, err := docstore.Open(s.ctx, s.cfg.Store, s.mylog, core.RestaurantsCollection, core.MenuItemsCollection)
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
	restaurantService := services.NewRestaurantService(database.NewRestaurantRepo(store), mylog)
	restaurantHandler := handle.NewRestaurantHandler(restaurantService, mylog)

	mux := http.NewServeMux()
	mux.Handle("POST /restaurants", restaurantHandler.Create())
	mux.Handle("GET /restaurants", restaurantHandler.List())
	mux.Handle("GET /restaurants/{id}", restaurantHandler.Get())
	mux.Handle("DELETE /restaurants/{id}", restaurantHandler.Delete())
	mux.Handle("POST /restaurants/{id}/menu-items", restaurantHandler.AddMenuItem())
	mux.Handle("GET /restaurants/{id}/menu-items", restaurantHandler.ListMenuItems())
	mux.Handle("PUT /restaurants/{id}/menu-items/{item_id}", restaurantHandler.UpdateMenuItem())
	mux.Handle("DELETE /restaurants/{id}/menu-items/{item_id}", restaurantHandler.DeleteMenuItem())
	mux.Handle("GET /health", httpx.Health(serviceName))
	return mux
}
