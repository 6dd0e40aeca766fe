package handlers

import "github.com/labstack/echo/v4"

// getUserIDFromContext returns the authenticated user's ID set by the JWT
// middleware, or 0 when the request is not authenticated.
func getUserIDFromContext(c echo.Context) uint {
	if id, ok := c.Get("userID").(uint); ok {
		return id
	}
	return 0
}

// getAnonSessionFromContext returns the anonymous session token set by the
// session middleware.
func getAnonSessionFromContext(c echo.Context) string {
	if session, ok := c.Get("anonSession").(string); ok {
		return session
	}
	return ""
}
