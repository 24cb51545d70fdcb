// Package dispatcher answers the raw (method, path) requests that reach the
// embedded server outside the regular API, such as web views loading file
// previews.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrNotImplemented is wrapped by every request no route matches.
var ErrNotImplemented = errors.New("request not implemented")

// NotImplementedError identifies the request that could not be answered.
type NotImplementedError struct {
	Method string
	Path   string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Method, e.Path, ErrNotImplemented)
}

// Is makes errors.Is(err, ErrNotImplemented) hold.
func (e *NotImplementedError) Is(target error) bool {
	return target == ErrNotImplemented
}

// FileSource resolves stored file contents by id.
type FileSource interface {
	FileContents(fileID int64) (string, bool)
}

// Response is the status and body returned for a dispatched request.
type Response struct {
	Status int
	Body   string
}

// Route names reported in logs, spans and metrics.
const (
	RouteCourseFile = "course_file"
	RouteGroupFile  = "group_file"
	RouteFavicon    = "favicon"
)

var (
	courseFilePattern = regexp.MustCompile(`^/courses/(\d+)/files/(\d+)/(preview|download)$`)
	groupFilePattern  = regexp.MustCompile(`^/groups/(\d+)/files/(\d+)/(preview|download)$`)
)

// Dispatcher routes requests against a file source. It keeps no state
// between requests.
type Dispatcher struct {
	files  FileSource
	logger zerolog.Logger
	tracer trace.Tracer
}

// New constructs a dispatcher serving files from the given source.
func New(files FileSource, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		files:  files,
		logger: logger.With().Str("component", "dispatcher").Logger(),
		tracer: otel.Tracer("github.com/noah-isme/mockcanvas/internal/dispatcher"),
	}
}

// Normalize collapses a leading "//" into a single slash.
func Normalize(path string) string {
	if strings.HasPrefix(path, "//") {
		return path[1:]
	}
	return path
}

// Match reports the route a path resolves to, or "" when none does.
func Match(path string) string {
	path = Normalize(path)
	switch {
	case courseFilePattern.MatchString(path):
		return RouteCourseFile
	case groupFilePattern.MatchString(path):
		return RouteGroupFile
	case path == "/favicon.ico":
		return RouteFavicon
	default:
		return ""
	}
}

// Dispatch answers a request. The method is not used for matching. Requests
// no route handles return a *NotImplementedError.
func (d *Dispatcher) Dispatch(ctx context.Context, method, path string) (Response, error) {
	normalized := Normalize(path)
	_, span := d.tracer.Start(ctx, "dispatcher.dispatch", trace.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.path", normalized),
	))
	defer span.End()

	if match := courseFilePattern.FindStringSubmatch(normalized); match != nil {
		span.SetAttributes(attribute.String("dispatcher.route", RouteCourseFile))
		return d.serveFile(match[2]), nil
	}
	if match := groupFilePattern.FindStringSubmatch(normalized); match != nil {
		span.SetAttributes(attribute.String("dispatcher.route", RouteGroupFile))
		return d.serveFile(match[2]), nil
	}
	if normalized == "/favicon.ico" {
		span.SetAttributes(attribute.String("dispatcher.route", RouteFavicon))
		return Response{Status: http.StatusOK}, nil
	}

	err := &NotImplementedError{Method: method, Path: normalized}
	span.RecordError(err)
	span.SetStatus(codes.Error, "not implemented")
	d.logger.Error().Str("method", method).Str("path", normalized).Msg("unhandled request")
	return Response{}, err
}

func (d *Dispatcher) serveFile(rawID string) Response {
	fileID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		// digits too long for an id; no such file can exist
		return Response{Status: http.StatusOK}
	}
	contents, ok := d.files.FileContents(fileID)
	if !ok {
		d.logger.Debug().Int64("file_id", fileID).Msg("file has no contents")
	}
	return Response{Status: http.StatusOK, Body: contents}
}
