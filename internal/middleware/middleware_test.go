package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mockcanvas/internal/models"
)

func newTestApp(buf *bytes.Buffer) *fiber.App {
	logger := zerolog.New(buf).Level(zerolog.DebugLevel)
	app := fiber.New()
	Register(app, Config{Logger: &logger})
	app.Get(AdminPrefix+"/health", func(c *fiber.Ctx) error {
		return c.SendString(GetCorrelationID(c))
	})
	app.Use(func(c *fiber.Ctx) error {
		if CorrelationIDFromContext(c.UserContext()) == "" {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendStatus(fiber.StatusNotImplemented)
	})
	return app
}

func TestCorrelationIDIsEchoed(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(&buf)

	req := httptest.NewRequest(http.MethodGet, AdminPrefix+"/health", nil)
	req.Header.Set("X-Request-ID", "req-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "req-123", resp.Header.Get("X-Correlation-ID"))
	require.Contains(t, buf.String(), `"correlation_id":"req-123"`)
	require.Contains(t, buf.String(), `"route":"/__admin/health"`)
}

func TestCorrelationIDIsGenerated(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(&buf)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/courses/1/files/2/preview", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotImplemented, resp.StatusCode)
	require.NotEmpty(t, resp.Header.Get("X-Correlation-ID"))
	require.Contains(t, buf.String(), `"route":"course_file"`)
	require.Contains(t, buf.String(), `"level":"error"`)
}

func TestRouteTemplateFallsBackToUnmatched(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(&buf)

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/courses", nil))
	require.NoError(t, err)
	require.Contains(t, buf.String(), `"route":"unmatched"`)
	require.Contains(t, buf.String(), `"path":"/api/v1/courses"`)
}

func TestUnknownAdminPathIsUnmatched(t *testing.T) {
	var buf bytes.Buffer
	app := newTestApp(&buf)

	_, err := app.Test(httptest.NewRequest(http.MethodGet, AdminPrefix+"/nope/42", nil))
	require.NoError(t, err)
	require.Contains(t, buf.String(), `"route":"unmatched"`)
	require.NotContains(t, buf.String(), `"route":"/__admin/nope/42"`)
}

type tokenMap map[string]int64

func (m tokenMap) UserForToken(token string) (models.User, bool) {
	id, ok := m[token]
	return models.User{ID: id}, ok
}

func TestBearerTokenIdentifiesCaller(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	app := fiber.New()
	Register(app, Config{Logger: &logger, Tokens: tokenMap{"secret": 42}})
	app.Get("/whoami", func(c *fiber.Ctx) error {
		id, ok := GetUserID(c)
		if !ok {
			return c.SendString("anonymous")
		}
		return c.SendString(strconv.FormatInt(id, 10))
	})

	cases := map[string]string{
		"Bearer secret": "42",
		"bearer secret": "42",
		"Bearer wrong":  "anonymous",
		"Basic secret":  "anonymous",
		"":              "anonymous",
	}
	for header, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if header != "" {
			req.Header.Set(fiber.HeaderAuthorization, header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err, header)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Equal(t, want, string(body), header)
	}
	require.Contains(t, buf.String(), `"user_id":42`)
}

func TestAccessLogWritesOneLinePerRequest(t *testing.T) {
	var access bytes.Buffer
	app := fiber.New()
	Register(app, Config{AccessLog: &access})
	app.Get("/favicon.ico", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/favicon.ico", nil))
	require.NoError(t, err)
	require.Contains(t, access.String(), "/favicon.ico")
	require.Contains(t, access.String(), "200")
}
