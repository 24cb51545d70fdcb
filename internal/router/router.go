package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/mockcanvas/internal/config"
	"github.com/noah-isme/mockcanvas/internal/handler"
	"github.com/noah-isme/mockcanvas/internal/middleware"
	"github.com/noah-isme/mockcanvas/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	Counts          handler.CountSource
	DispatchHandler *handler.DispatchHandler
}

// Register wires the admin endpoints and the dispatcher catch-all into the
// fiber application. The catch-all must be registered last.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	admin := app.Group(middleware.AdminPrefix, func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	admin.Get("/health", handler.HealthCheck(cfg, deps.Counts))
	admin.Get("/metrics", observability.MetricsHandler())

	// Everything else is a request the fake canvas itself must answer.
	if deps.DispatchHandler != nil {
		app.Use(deps.DispatchHandler.Handle)
	}
}
