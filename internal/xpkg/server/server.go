package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"food-delivery/internal/xpkg/httpx"
	"food-delivery/internal/xpkg/logger"
	"food-delivery/internal/xpkg/tracing"
)

var ErrServerClosed = errors.New("server closed")

type closer struct {
	name string
	fn   func(ctx context.Context) error
}

// Server runs one service's HTTP listener and closes its resources on Stop.
type Server struct {
	name            string
	port            int
	shutdownTimeout time.Duration
	handler         http.Handler
	mylog           logger.Logger
	ctx             context.Context

	mu      sync.Mutex
	srv     *http.Server
	addr    net.Addr
	closers []closer
}

func New(ctx context.Context, name string, port int, shutdownTimeout time.Duration, handler http.Handler, mylog logger.Logger) *Server {
	return &Server{
		name:            name,
		port:            port,
		shutdownTimeout: shutdownTimeout,
		handler:         tracing.WrapHandler(httpx.WithRequestLog(handler, mylog), name),
		mylog:           mylog,
		ctx:             ctx,
	}
}

// OnStop registers a resource to close after the HTTP server has shut down.
// Resources are closed in registration order.
func (s *Server) OnStop(name string, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closers = append(s.closers, closer{name: name, fn: fn})
}

// Addr is the bound listener address, nil until Run has started listening.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Run starts listening. It returns when the server stops or its context is done.
func (s *Server) Run() error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("listen on %d: %w", s.port, err)
	}

	s.mu.Lock()
	s.srv = &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.addr = ln.Addr()
	srv := s.srv
	s.mu.Unlock()

	s.mylog.Action("server_started").WithGroup("details").With("port", s.port).Info("Server is running")

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		} else {
			errCh <- nil
		}
	}()

	select {
	case <-s.ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Stop shuts the HTTP server down, then closes the registered resources.
// Repeated calls only act on what was started or registered since the last one.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mylog.Action("graceful_shutdown_started").Info("Shutting down HTTP server...")

	var errs []error
	if s.srv != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.mylog.Action("graceful_shutdown_failed").Error("Failed to shut down HTTP server gracefully", err)
			errs = append(errs, fmt.Errorf("http server shutdown: %w", err))
		}
		s.srv = nil
	}

	for _, c := range s.closers {
		if err := c.fn(ctx); err != nil {
			s.mylog.Action(c.name+"_close_failed").Error("Failed to close "+c.name, err)
			errs = append(errs, fmt.Errorf("%s close: %w", c.name, err))
			continue
		}
		s.mylog.Action(c.name + "_closed").Info("Closed " + c.name)
	}
	s.closers = nil

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	s.mylog.Action("graceful_shutdown_completed").Info("HTTP server shut down gracefully")
	return nil
}

// App is a service that can be run until stopped.
type App interface {
	Run() error
	Stop(ctx context.Context) error
}

// NotifyContext returns ctx cancelled on SIGHUP, SIGINT or SIGTERM.
func NotifyContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
}

// Serve runs app until ctx is done or app fails, then stops it.
// On shutdown it waits for Run to return and stops app again, so resources
// Run opened after the first Stop are still closed. Stop must be safe to repeat.
func Serve(ctx context.Context, app App, mylog logger.Logger) error {
	runErrCh := make(chan error, 1)
	go func() {
		runErrCh <- app.Run()
	}()

	select {
	case <-ctx.Done():
		mylog.Action("shutdown_signal_received").Info("Shutdown signal received")
		stopErr := app.Stop(context.Background())
		runErr := <-runErrCh
		if errors.Is(runErr, ErrServerClosed) || errors.Is(runErr, context.Canceled) {
			runErr = nil
		}
		return errors.Join(stopErr, runErr, app.Stop(context.Background()))
	case err := <-runErrCh:
		if err != nil && !errors.Is(err, ErrServerClosed) {
			mylog.Action("service_failed").Error("Server failed unexpectedly", err)
			if stopErr := app.Stop(context.Background()); stopErr != nil {
				return errors.Join(err, stopErr)
			}
			return err
		}
		mylog.Action("server_stopped").Info("Server exited normally")
		return app.Stop(context.Background())
	}
}
