// Package server runs the fake canvas behind a real HTTP listener.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/mockcanvas/internal/config"
	"github.com/noah-isme/mockcanvas/internal/dispatcher"
	"github.com/noah-isme/mockcanvas/internal/handler"
	"github.com/noah-isme/mockcanvas/internal/middleware"
	"github.com/noah-isme/mockcanvas/internal/mockcanvas"
	"github.com/noah-isme/mockcanvas/internal/router"
)

var (
	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("server already started")
	// ErrNotStarted is returned when Stop is called on a server that is not running.
	ErrNotStarted = errors.New("server not started")
)

// Server serves a Canvas over HTTP. It must be started with Start and
// released with Stop.
type Server struct {
	cfg    config.Config
	app    *fiber.App
	logger zerolog.Logger

	mu       sync.Mutex
	listener net.Listener
	done     chan error
	url      string

	// Request handlers append here while Stop holds mu.
	unhandledMu sync.Mutex
	unhandled   []error
}

// New builds the fiber application for canvas without binding a port.
func New(cfg config.Config, canvas *mockcanvas.Canvas, logger zerolog.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		logger: logger.With().Str("component", "server").Logger(),
	}

	s.app = fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		ServerHeader:          cfg.AppName,
		DisableStartupMessage: true,
	})

	mwCfg := middleware.Config{Logger: &logger, Tokens: canvas}
	if cfg.Level() <= zerolog.DebugLevel {
		mwCfg.AccessLog = os.Stderr
	}
	middleware.Register(s.app, mwCfg)
	router.Register(s.app, cfg, router.Dependencies{
		Counts:          canvas,
		DispatchHandler: handler.NewDispatchHandler(dispatcher.New(canvas, logger), s, logger),
	})

	return s
}

// App exposes the fiber application, mostly for in-process tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Start binds the configured address and serves in the background. It
// returns once the serve loop is accepting connections, so Stop may follow
// immediately.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return ErrAlreadyStarted
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.HTTPAddress())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.cfg.HTTPAddress(), err)
	}

	tracked := &readyListener{Listener: ln, ready: make(chan struct{})}
	done := make(chan error, 1)
	go func() {
		done <- s.app.Listener(tracked)
	}()

	select {
	case <-tracked.ready:
	case err := <-done:
		_ = ln.Close()
		return fmt.Errorf("serve: %w", err)
	}

	s.listener = tracked
	s.done = done
	s.url = "http://" + ln.Addr().String()

	s.logger.Info().Str("url", s.url).Msg("server started")
	return nil
}

// URL returns the base URL of the running server, or "" before Start.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.url
}

// RecordUnhandled remembers a request no route could answer so that Stop
// can report it.
func (s *Server) RecordUnhandled(err error) {
	s.unhandledMu.Lock()
	s.unhandled = append(s.unhandled, err)
	s.unhandledMu.Unlock()

	s.logger.Error().Err(err).Msg("unhandled request")
}

// Unhandled returns the requests recorded so far.
func (s *Server) Unhandled() []error {
	s.unhandledMu.Lock()
	defer s.unhandledMu.Unlock()
	return append([]error(nil), s.unhandled...)
}

// Stop shuts the server down and waits for the serve loop to exit. The
// returned error joins shutdown failures with every unhandled request seen
// since Start. A stopped server may be started again.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return ErrNotStarted
	}

	var errs []error
	if err := s.app.ShutdownWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown: %w", err))
	}
	if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		errs = append(errs, fmt.Errorf("close listener: %w", err))
	}

	select {
	case err := <-s.done:
		if err != nil {
			errs = append(errs, fmt.Errorf("serve: %w", err))
		}
	case <-ctx.Done():
		errs = append(errs, fmt.Errorf("wait for serve loop: %w", ctx.Err()))
	}

	s.listener = nil
	s.done = nil
	s.url = ""

	s.unhandledMu.Lock()
	unhandled := len(s.unhandled)
	errs = append(errs, s.unhandled...)
	s.unhandled = nil
	s.unhandledMu.Unlock()

	s.logger.Info().Int("unhandled", unhandled).Msg("server stopped")
	return errors.Join(errs...)
}

// readyListener reports the first Accept call, which fasthttp makes only
// after registering the listener for shutdown.
type readyListener struct {
	net.Listener
	once  sync.Once
	ready chan struct{}
}

func (l *readyListener) Accept() (net.Conn, error) {
	l.once.Do(func() { close(l.ready) })
	return l.Listener.Accept()
}
