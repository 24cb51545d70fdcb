package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mockcanvas/internal/config"
	"github.com/noah-isme/mockcanvas/internal/dispatcher"
	"github.com/noah-isme/mockcanvas/internal/handler"
	"github.com/noah-isme/mockcanvas/internal/mockcanvas"
	"github.com/noah-isme/mockcanvas/internal/router"
)

func TestRegisterRoutesAdminAndDispatch(t *testing.T) {
	cfg := config.Default()
	canvas := mockcanvas.New(mockcanvas.Options{Logger: zerolog.Nop()})

	app := fiber.New()
	router.Register(app, cfg, router.Dependencies{
		Counts:          canvas,
		DispatchHandler: handler.NewDispatchHandler(dispatcher.New(canvas, zerolog.Nop()), nil, zerolog.Nop()),
	})

	cases := []struct {
		path   string
		status int
	}{
		{path: "/__admin/health", status: fiber.StatusOK},
		{path: "/__admin/metrics", status: fiber.StatusOK},
		{path: "/favicon.ico", status: fiber.StatusOK},
		{path: "/courses/1/files/2/preview", status: fiber.StatusOK},
		{path: "/api/v1/courses", status: fiber.StatusNotImplemented},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.path, nil))
		require.NoError(t, err, tc.path)
		require.Equal(t, tc.status, resp.StatusCode, tc.path)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/__admin/health", nil))
	require.NoError(t, err)
	require.Equal(t, cfg.AppName, resp.Header.Get("X-Application"))
}
