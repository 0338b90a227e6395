package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Deepender31/artwork-backend/internal/api/middleware"
)

// callerID extracts the user id injected by the Auth middleware. An empty
// value means the route was mounted without Auth; reject with 401 rather
// than let an anonymous call reach a mutation.
func callerID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.ContextUserID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
