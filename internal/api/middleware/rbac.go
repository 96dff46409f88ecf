package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/placementpathway/portal-api/internal/core/domain"
)

// RBAC enforces role-based access control. It must run after Auth.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return domain.ErrUnauthorized
			}
			if err := domain.AuthorizeRole(id, allowedRoles...); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// OwnerOrRole lets the request through when the path parameter param names
// the caller's own id, or when the caller holds one of allowedRoles.
func OwnerOrRole(param string, allowedRoles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return domain.ErrUnauthorized
			}
			if err := domain.AuthorizeOwnerOrRole(id, c.Param(param), allowedRoles...); err != nil {
				return err
			}
			return next(c)
		}
	}
}
