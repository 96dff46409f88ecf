package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/placementpathway/portal-api/internal/core/domain"
)

// caller returns the identity injected by the Auth middleware and performs a
// fast-fail check before any service call: a route mounted without Auth, or a
// token without a subject, is rejected with 401.
func caller(c echo.Context) (domain.Identity, error) {
	id, ok := domain.IdentityFromContext(c.Request().Context())
	if !ok || id.SubjectID == "" {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	return id, nil
}
