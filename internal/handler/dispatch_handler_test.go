package handler_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mockcanvas/internal/dispatcher"
	"github.com/noah-isme/mockcanvas/internal/handler"
	"github.com/noah-isme/mockcanvas/internal/mockcanvas"
)

type recorder struct {
	mu   sync.Mutex
	errs []error
}

func (r *recorder) RecordUnhandled(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

type fixture struct {
	app      *fiber.App
	recorder *recorder
	courseID int64
	fileID   int64
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	canvas := mockcanvas.New(mockcanvas.Options{Seed: 3, Logger: zerolog.Nop()})
	course := canvas.AddCourse(mockcanvas.CourseParams{})
	file := canvas.AddFileToCourse(mockcanvas.FileParams{CourseID: course.ID, Content: "<html><body>preview</body></html>"})

	rec := &recorder{}
	app := fiber.New()
	app.Use(handler.NewDispatchHandler(dispatcher.New(canvas, zerolog.Nop()), rec, zerolog.Nop()).Handle)
	return fixture{app: app, recorder: rec, courseID: course.ID, fileID: file.ID}
}

func TestDispatchHandlerServesFilePreview(t *testing.T) {
	f := newFixture(t)

	for _, path := range []string{
		fmt.Sprintf("/courses/%d/files/%d/preview", f.courseID, f.fileID),
		fmt.Sprintf("//courses/%d/files/%d/download", f.courseID, f.fileID),
		fmt.Sprintf("/groups/1/files/%d/preview", f.fileID),
	} {
		resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err, path)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, path)
		require.True(t, strings.HasPrefix(resp.Header.Get(fiber.HeaderContentType), "text/html"), path)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Equal(t, "<html><body>preview</body></html>", string(body))
		resp.Body.Close()
	}
	require.Empty(t, f.recorder.errs)
}

func TestDispatchHandlerServesFavicon(t *testing.T) {
	f := newFixture(t)

	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/favicon.ico", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Empty(t, body)
}

func TestDispatchHandlerRecordsUnhandledRequests(t *testing.T) {
	f := newFixture(t)

	resp, err := f.app.Test(httptest.NewRequest(http.MethodPut, "/api/v1/users/self", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotImplemented, resp.StatusCode)

	var payload struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.False(t, payload.Success)
	require.Equal(t, dispatcher.ErrNotImplemented.Error(), payload.Message)
	require.Equal(t, http.MethodPut, payload.Details["method"])
	require.Equal(t, "/api/v1/users/self", payload.Details["path"])

	require.Len(t, f.recorder.errs, 1)
	require.ErrorIs(t, f.recorder.errs[0], dispatcher.ErrNotImplemented)
}
