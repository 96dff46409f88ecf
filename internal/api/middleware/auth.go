package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/placementpathway/portal-api/internal/core/domain"
	"github.com/placementpathway/portal-api/internal/core/ports"
)

// identityKey is the echo.Context key the verified identity is stored under.
const identityKey = "identity"

// Auth verifies the bearer token and injects the identity into both the echo
// context and the request's context.Context. It never touches the store.
func Auth(verifier ports.TokenVerifier, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header")
			}

			id, err := verifier.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				log.Warn().Err(err).
					Str("path", c.Path()).
					Str("remote_ip", c.RealIP()).
					Msg("token rejected")
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(identityKey, id)
			c.SetRequest(c.Request().WithContext(domain.WithIdentity(c.Request().Context(), id)))

			return next(c)
		}
	}
}

// IdentityFrom returns the identity stored by Auth.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	return id, ok
}
