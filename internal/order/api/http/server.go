package http

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	brokermessage "food-delivery/internal/order/adapter/broker_message"
	database "food-delivery/internal/order/adapter/db"
	"food-delivery/internal/order/adapter/peer"
	"food-delivery/internal/order/api/http/handle"
	"food-delivery/internal/order/app/core"
	"food-delivery/internal/order/app/services"
	"food-delivery/internal/xpkg/config"
	"food-delivery/internal/xpkg/docstore"
	"food-delivery/internal/xpkg/httpx"
	"food-delivery/internal/xpkg/logger"
	"food-delivery/internal/xpkg/server"
	"food-delivery/internal/xpkg/tracing"
)

const serviceName = "order-service"

type Server struct {
	ctx   context.Context
	cfg   *config.Config
	mylog logger.Logger

	mu  sync.Mutex
	srv *server.Server
}

func NewServer(ctx context.Context, cfg *config.Config, mylog logger.Logger) *Server {
	return &Server{
		ctx:   ctx,
		cfg:   cfg,
		mylog: mylog,
	}
}

// Run connects the store and broker, configures routes and serves until stopped.
func (s *Server) Run() error {
	mylog := s.mylog

	shutdownTracing, err := tracing.Init(s.ctx, serviceName, s.cfg.Tracing)
	if err != nil {
		mylog.Action("tracing_init_failed").Error("Failed to init tracing", err)
		return err
	}

	store, err := docstore.Open(s.ctx, s.cfg.Store, mylog, core.OrdersCollection)
	if err != nil {
		mylog.Action("db_connection_failed").Error("Failed to connect to database", err)
		_ = shutdownTracing(context.Background())
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	mylog.Action("db_connected").Info("Successful database connection", "driver", s.cfg.Store.Driver)

	mb := s.initializeRabbitMQ()

	srv := server.New(s.ctx, serviceName, s.cfg.Server.Port, s.cfg.Server.ShutdownTimeout, s.Configure(store, mb), mylog)
	srv.OnStop("mb", func(context.Context) error { return mb.Close() })
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

// initializeRabbitMQ falls back to dropping events when no broker is configured or reachable.
func (s *Server) initializeRabbitMQ() core.IPublisher {
	if s.cfg.RMQ.Addr() == "" {
		s.mylog.Action("mb_disabled").Info("No message broker configured, order events are dropped")
		return brokermessage.Noop{}
	}
	mb, err := brokermessage.New(s.ctx, s.cfg.RMQ, s.mylog)
	if err != nil {
		s.mylog.Action("mb_connection_failed").Error("Failed to connect to message broker, order events are dropped", err)
		return brokermessage.Noop{}
	}
	s.mylog.Action("mb_connected").Info("Successful message broker connection")
	return mb
}

// Configure wires repositories, services and handlers onto a new mux.
func (s *Server) Configure(store docstore.Store, mb core.IPublisher) http.Handler {
	return NewHandler(store, peer.NewClient(s.cfg.Peers, s.mylog), mb,
		core.OrderParams{StrictStatus: s.cfg.Orders.StrictStatus}, s.mylog)
}

// NewHandler builds the order-service routes over the given collaborators.
func NewHandler(store docstore.Store, peers *peer.Client, mb core.IPublisher, params core.OrderParams, mylog logger.Logger) http.Handler {
	orderRepo := database.NewOrderRepo(store)
	orderService := services.NewOrderService(orderRepo, peers, peers, mb, params, mylog)
	orderHandler := handle.NewOrderHandler(orderService, mylog)

	mux := http.NewServeMux()
	mux.Handle("POST /orders", orderHandler.Create())
	mux.Handle("GET /orders/{id}", orderHandler.Get())
	mux.Handle("PUT /orders/{id}/status", orderHandler.UpdateStatus())
	mux.Handle("PUT /orders/{id}/shipper", orderHandler.AssignShipper())
	mux.Handle("GET /orders/users/{user_id}/orders", orderHandler.ListByUser())
	mux.Handle("GET /orders/restaurants/{restaurant_id}/orders", orderHandler.ListByRestaurant())
	mux.Handle("GET /health", httpx.Health(serviceName))
	return mux
}
