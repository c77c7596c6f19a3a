package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/faiadgitm-oss/trpical-try/internal/logging"
	"github.com/faiadgitm-oss/trpical-try/internal/session"
)

const LoginPath = "/admin/login"

type AdminGuard struct {
	Sessions *session.Manager
}

// RequireAdminPage sends browsers without an admin session to the login form.
func (g *AdminGuard) RequireAdminPage(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !g.Sessions.IsAdmin(c.Request()) {
			return c.Redirect(http.StatusFound, LoginPath)
		}
		return next(c)
	}
}

// RequireAdminAPI rejects requests without an admin session with 401.
func (g *AdminGuard) RequireAdminAPI(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !g.Sessions.IsAdmin(c.Request()) {
			logging.FromContext(c.Request().Context()).Warn("admin_denied",
				"status", 401, "path", c.Request().URL.Path)
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		return next(c)
	}
}
