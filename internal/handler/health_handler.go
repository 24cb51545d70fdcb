package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/mockcanvas/internal/config"
	"github.com/noah-isme/mockcanvas/internal/utils"
)

// CountSource reports how many entities of each kind the canvas holds.
type CountSource interface {
	Counts() map[string]int
}

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
	Domain      string    `json:"domain"`
}

// HealthCheck returns a handler that reports application health and the
// size of the fake canvas.
func HealthCheck(cfg config.Config, counts CountSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
			Domain:      cfg.Domain,
		}

		var meta map[string]int
		if counts != nil {
			meta = counts.Counts()
		}
		return utils.OK(c, payload, "service healthy", meta)
	}
}
