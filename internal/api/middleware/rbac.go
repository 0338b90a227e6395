package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RBAC rejects callers whose token role is not one of allowedRoles. It is a
// fast-fail on the token claim; the services still authorize every mutation
// against the stored role.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(string)
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "only artists can perform this action")
			}
			return next(c)
		}
	}
}
