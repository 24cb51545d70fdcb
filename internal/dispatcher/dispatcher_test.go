package dispatcher_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mockcanvas/internal/dispatcher"
)

type fileMap map[int64]string

func (f fileMap) FileContents(fileID int64) (string, bool) {
	contents, ok := f[fileID]
	return contents, ok
}

func newDispatcher() *dispatcher.Dispatcher {
	return dispatcher.New(fileMap{7: "hello file"}, zerolog.Nop())
}

func TestDispatchServesFiles(t *testing.T) {
	d := newDispatcher()

	cases := []struct {
		name string
		path string
		body string
	}{
		{name: "course preview", path: "/courses/1/files/7/preview", body: "hello file"},
		{name: "course download", path: "/courses/1/files/7/download", body: "hello file"},
		{name: "group preview ignores group", path: "/groups/99/files/7/preview", body: "hello file"},
		{name: "double slash", path: "//courses/1/files/7/preview", body: "hello file"},
		{name: "unknown file", path: "/courses/1/files/8/preview", body: ""},
		{name: "oversized id", path: "/courses/1/files/99999999999999999999/download", body: ""},
		{name: "favicon", path: "/favicon.ico", body: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := d.Dispatch(context.Background(), http.MethodGet, tc.path)
			require.NoError(t, err)
			require.Equal(t, http.StatusOK, resp.Status)
			require.Equal(t, tc.body, resp.Body)
		})
	}
}

func TestDispatchRejectsUnknownPaths(t *testing.T) {
	d := newDispatcher()

	for _, path := range []string{
		"/courses/1/files/7",
		"/courses/1/files/7/preview/extra",
		"/courses/abc/files/7/preview",
		"/api/v1/users/self",
		"///favicon.ico",
	} {
		resp, err := d.Dispatch(context.Background(), http.MethodPost, path)
		require.Error(t, err, path)
		require.ErrorIs(t, err, dispatcher.ErrNotImplemented)
		require.Zero(t, resp.Status)

		var notImplemented *dispatcher.NotImplementedError
		require.True(t, errors.As(err, &notImplemented))
		require.Equal(t, http.MethodPost, notImplemented.Method)
		require.Equal(t, dispatcher.Normalize(path), notImplemented.Path)
	}
}

func TestMatch(t *testing.T) {
	require.Equal(t, dispatcher.RouteCourseFile, dispatcher.Match("//courses/3/files/4/download"))
	require.Equal(t, dispatcher.RouteGroupFile, dispatcher.Match("/groups/3/files/4/preview"))
	require.Equal(t, dispatcher.RouteFavicon, dispatcher.Match("/favicon.ico"))
	require.Empty(t, dispatcher.Match("/nope"))
}
