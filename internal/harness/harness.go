// Package harness builds a seeded canvas, serves it and tears it down again.
package harness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/mockcanvas/internal/config"
	"github.com/noah-isme/mockcanvas/internal/mockcanvas"
	"github.com/noah-isme/mockcanvas/internal/server"
)

// ShutdownTimeout bounds how long Run waits for the server to stop.
const ShutdownTimeout = 5 * time.Second

// Harness is a running fake canvas together with its HTTP server.
type Harness struct {
	Canvas *mockcanvas.Canvas
	Server *server.Server
}

// Start seeds a canvas from cfg.Fixture and starts serving it. Callers own
// the result and must call Close.
func Start(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*Harness, error) {
	canvas, err := mockcanvas.Init(cfg.Fixture, cfg.CanvasOptions(logger))
	if err != nil {
		return nil, fmt.Errorf("seed canvas: %w", err)
	}

	srv := server.New(cfg, canvas, logger)
	if err := srv.Start(ctx); err != nil {
		return nil, fmt.Errorf("start server: %w", err)
	}

	return &Harness{Canvas: canvas, Server: srv}, nil
}

// URL returns the base URL clients should talk to.
func (h *Harness) URL() string {
	return h.Server.URL()
}

// Close stops the server. It reports every request the canvas could not
// answer while it was running.
func (h *Harness) Close(ctx context.Context) error {
	return h.Server.Stop(ctx)
}

// Run starts a harness, hands it to fn and always closes it afterwards. The
// error joins fn's error with the one returned by Close.
func Run(ctx context.Context, cfg config.Config, logger zerolog.Logger, fn func(*Harness) error) (err error) {
	h, err := Start(ctx, cfg, logger)
	if err != nil {
		return err
	}

	defer func() {
		stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
		defer cancel()
		err = errors.Join(err, h.Close(stopCtx))
	}()

	return fn(h)
}
