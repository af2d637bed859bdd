package auth

import (
	"github.com/labstack/echo/v4"
)

// publicPaths lists URL paths that bypass authentication: registration, the
// credential endpoints themselves, and infrastructure health checks.
var publicPaths = map[string]bool{
	"/health":            true,
	"/health/db":         true,
	"/api/register":      true,
	"/api/token":         true,
	"/api/token/refresh": true,
}

// Skipper returns true for requests whose path should skip authentication.
func Skipper(c echo.Context) bool {
	return isPublicPath(c.Path())
}

func isPublicPath(path string) bool {
	return publicPaths[path]
}
