// Package server exposes a running exhibit over a small HTTP control API.
//
// The API lets a docent's tablet or a venue controller drive the exhibit:
// read its status, step through artworks, pin autoplay off and simulate a
// pointer. Every request is executed through a [Dispatcher], which runs the
// action on the exhibit's host loop so the engine is never touched from the
// HTTP goroutines.
//
//	srv, err := server.New(server.Config{Addr: ":8080"}, loop, logger)
//	srv.Start(ctx)
//	defer srv.Close()
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/exhibit/pkg/exhibit"
)

// gracefulShutdownTimeout bounds how long Close waits for in-flight requests.
const gracefulShutdownTimeout = 5 * time.Second

// Dispatcher runs fn against the exhibit on its owning goroutine.
// *exhibit.Loop satisfies it; the terminal UI provides its own.
type Dispatcher interface {
	Do(ctx context.Context, fn func(*exhibit.App) error) error
}

// Config holds listener settings.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server is the HTTP control API.
type Server struct {
	cfg      Config
	dispatch Dispatcher
	logger   *log.Logger
	server   *http.Server
	listener net.Listener
}

// New creates a server. It does not listen until Start.
func New(cfg Config, dispatch Dispatcher, logger *log.Logger) (*Server, error) {
	if dispatch == nil {
		return nil, fmt.Errorf("dispatcher is required")
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 5 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 5 * time.Second
	}
	return &Server{cfg: cfg, dispatch: dispatch, logger: logger}, nil
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.buildRouter()
}

// Start binds the listener and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}
	s.listener = ln
	s.server = &http.Server{
		Handler:           s.buildRouter(),
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
	}

	s.logger.Info("control API listening", "addr", ln.Addr().String())
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("control API error", "error", err)
		}
	}()
	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Close gracefully shuts the server down.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Debug("control API shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down control API: %w", err)
	}
	return nil
}
