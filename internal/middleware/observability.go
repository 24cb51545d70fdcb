package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/mockcanvas/internal/dispatcher"
	"github.com/noah-isme/mockcanvas/internal/observability"
)

// AdminPrefix is the path prefix of the endpoints served outside the dispatcher.
const AdminPrefix = "/__admin"

const unmatchedRoute = "unmatched"

// Observability records Prometheus metrics and a structured log line for
// every request.
func Observability(logger zerolog.Logger) fiber.Handler {
	observability.RegisterMetrics()

	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start)

		route := routeTemplate(c)
		method := c.Method()
		status := c.Response().StatusCode()
		statusLabel := strconv.Itoa(status)

		observability.Requests().WithLabelValues(method, route, statusLabel).Inc()
		observability.RequestLatency().WithLabelValues(method, route).Observe(duration.Seconds())

		latencyMs := float64(duration) / float64(time.Millisecond)
		fields := logger.With()
		if userID, ok := GetUserID(c); ok {
			fields = fields.Int64("user_id", userID)
		}
		requestLogger := fields.
			Str("correlation_id", GetCorrelationID(c)).
			Str("route", route).
			Str("method", method).
			Str("path", c.Path()).
			Int("status", status).
			Float64("latency_ms", latencyMs).
			Str("latency_bucket", latencyBucket(duration)).
			Logger()

		switch {
		case status >= fiber.StatusInternalServerError:
			requestLogger.Error().Msg("request failed")
		case status >= fiber.StatusBadRequest:
			requestLogger.Warn().Msg("request completed with client error")
		default:
			requestLogger.Debug().Msg("request completed")
		}

		return err
	}
}

func routeTemplate(c *fiber.Ctx) string {
	if strings.HasPrefix(c.Path(), AdminPrefix) {
		// Only a concrete admin endpoint names the route. The group
		// middleware and the catch-all do not.
		if route := c.Route(); route != nil && strings.HasPrefix(route.Path, AdminPrefix+"/") {
			return route.Path
		}
		return unmatchedRoute
	}
	if route := dispatcher.Match(c.Path()); route != "" {
		return route
	}
	return unmatchedRoute
}

func latencyBucket(duration time.Duration) string {
	switch {
	case duration <= time.Millisecond:
		return "<=1ms"
	case duration <= 5*time.Millisecond:
		return "<=5ms"
	case duration <= 25*time.Millisecond:
		return "<=25ms"
	case duration <= 100*time.Millisecond:
		return "<=100ms"
	default:
		return ">100ms"
	}
}
