package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AnonSessionHeader carries the client-generated anonymous session token used
// for broadcast read-tracking.
const AnonSessionHeader = "X-Anon-Session"

// AnonSessionMiddleware reads the anonymous session token from the request.
// If the client has none yet, a fresh one is issued and echoed back in the
// response header so the client can persist it.
func AnonSessionMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sessionID := c.Request().Header.Get(AnonSessionHeader)
			if sessionID == "" {
				sessionID = uuid.NewString()
			}
			c.Response().Header().Set(AnonSessionHeader, sessionID)
			c.Set("anonSession", sessionID)
			return next(c)
		}
	}
}
