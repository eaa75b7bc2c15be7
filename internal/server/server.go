package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zeusync/softbody/internal/config"
	"github.com/zeusync/softbody/internal/core/observability/log"
)

const shutdownTimeout = 5 * time.Second

// Server exposes the running arena over HTTP and websocket.
type Server struct {
	cfg    config.ServerConfig
	engine *gin.Engine
	http   *http.Server
	hub    *Hub
	runner *Runner
	logger log.Log

	running atomic.Bool
	closed  atomic.Bool
}

func NewServer(cfg config.ServerConfig, runner *Runner, hub *Hub, logger log.Log) *Server {
	gin.SetMode(cfg.Mode)

	s := &Server{
		cfg:    cfg,
		engine: gin.New(),
		hub:    hub,
		runner: runner,
		logger: logger.With(log.String("component", "server")),
	}
	s.engine.Use(gin.Recovery(), requestLogger(s.logger))
	s.routes()
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.engine }

// Serve listens on the configured address and blocks until ctx is done, then
// shuts the server down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.ServeListener(ctx, ln)
}

func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	if s.closed.Load() {
		return ErrServerClosed
	}
	if !s.running.CompareAndSwap(false, true) {
		return ErrServerAlreadyRunning
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.Serve(ln)
	}()
	s.logger.Info("server listening", log.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		s.running.Store(false)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Close(shutdownCtx)
}

// Close disconnects the websocket clients and stops the HTTP server.
func (s *Server) Close(ctx context.Context) error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	s.logger.Info("stopping server")
	s.hub.Close()
	err := s.http.Shutdown(ctx)
	s.running.Store(false)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
