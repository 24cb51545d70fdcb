package handler

import (
	"context"
	"errors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/mockcanvas/internal/dispatcher"
	"github.com/noah-isme/mockcanvas/internal/middleware"
	"github.com/noah-isme/mockcanvas/internal/observability"
	"github.com/noah-isme/mockcanvas/internal/utils"
)

// Dispatcher answers raw requests from the fake canvas.
type Dispatcher interface {
	Dispatch(ctx context.Context, method, path string) (dispatcher.Response, error)
}

// UnhandledRecorder collects requests no route could answer.
type UnhandledRecorder interface {
	RecordUnhandled(err error)
}

// DispatchHandler forwards every request that is not an admin endpoint to
// the dispatcher.
type DispatchHandler struct {
	dispatcher Dispatcher
	recorder   UnhandledRecorder
	logger     zerolog.Logger
}

// NewDispatchHandler constructs a handler instance. recorder may be nil.
func NewDispatchHandler(d Dispatcher, recorder UnhandledRecorder, logger zerolog.Logger) *DispatchHandler {
	return &DispatchHandler{
		dispatcher: d,
		recorder:   recorder,
		logger:     logger.With().Str("component", "dispatch_handler").Logger(),
	}
}

// Handle answers the request with the dispatcher's response, or 501 when
// the request is not implemented.
func (h *DispatchHandler) Handle(c *fiber.Ctx) error {
	resp, err := h.dispatcher.Dispatch(withRequestContext(c), c.Method(), c.Path())
	if err != nil {
		var notImplemented *dispatcher.NotImplementedError
		if errors.As(err, &notImplemented) {
			observability.UnhandledRequests().WithLabelValues(c.Method()).Inc()
			if h.recorder != nil {
				h.recorder.RecordUnhandled(err)
			}
			return utils.Fail(c, fiber.StatusNotImplemented, dispatcher.ErrNotImplemented.Error(), fiber.Map{
				"method": notImplemented.Method,
				"path":   notImplemented.Path,
			})
		}
		h.logger.Error().Err(err).Str("path", c.Path()).Msg("dispatch failed")
		return utils.Fail(c, fiber.StatusInternalServerError, err.Error(), nil)
	}

	if resp.Body != "" {
		c.Set(fiber.HeaderContentType, mimetype.Detect([]byte(resp.Body)).String())
	}
	return c.Status(resp.Status).SendString(resp.Body)
}

func withRequestContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}
	return middleware.ContextWithCorrelation(ctx, middleware.GetCorrelationID(c))
}
