package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/placementpathway/portal-api/internal/core/ports"
	"github.com/placementpathway/portal-api/pkg/metrics"
)

// RateLimit caps requests per client IP and route to limit per window.
// Limiter failures let the request through.
func RateLimit(limiter ports.RateLimiter, limit int, window time.Duration, log zerolog.Logger) echo.MiddlewareFunc {
	retryAfter := strconv.Itoa(int(window.Round(time.Second) / time.Second))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if limiter == nil {
				return next(c)
			}

			route := c.Path()
			allowed, err := limiter.Allow(c.Request().Context(), route+":"+c.RealIP(), limit, window)
			if err != nil {
				log.Warn().Err(err).Str("route", route).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if !allowed {
				metrics.RateLimitRejectionsTotal.WithLabelValues(route).Inc()
				c.Response().Header().Set("Retry-After", retryAfter)
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests")
			}
			return next(c)
		}
	}
}
