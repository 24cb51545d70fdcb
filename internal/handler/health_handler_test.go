package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mockcanvas/internal/config"
	"github.com/noah-isme/mockcanvas/internal/handler"
)

type staticCounts map[string]int

func (s staticCounts) Counts() map[string]int { return s }

func TestHealthCheckReportsCounts(t *testing.T) {
	cfg := config.Default()
	app := fiber.New()
	app.Get("/health", handler.HealthCheck(cfg, staticCounts{"user": 3, "course": 1}))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success bool                   `json:"success"`
		Message string                 `json:"message"`
		Data    handler.HealthResponse `json:"data"`
		Meta    map[string]int         `json:"meta"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.True(t, payload.Success)
	require.Equal(t, "service healthy", payload.Message)
	require.Equal(t, "ok", payload.Data.Status)
	require.Equal(t, cfg.AppName, payload.Data.Service)
	require.Equal(t, cfg.Domain, payload.Data.Domain)
	require.Equal(t, 3, payload.Meta["user"])
}
