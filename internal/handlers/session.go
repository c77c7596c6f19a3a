package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/faiadgitm-oss/trpical-try/internal/hash"
	"github.com/faiadgitm-oss/trpical-try/internal/logging"
	"github.com/faiadgitm-oss/trpical-try/internal/middleware/csrf"
	"github.com/faiadgitm-oss/trpical-try/internal/session"
	"github.com/faiadgitm-oss/trpical-try/internal/web"
)

type SessionHTTP struct {
	Sessions     *session.Manager
	PasswordHash string
	Now          func() time.Time
}

func (h *SessionHTTP) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *SessionHTTP) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, web.PageLogin, pageData{CSRFToken: csrf.Token(c)})
}

func (h *SessionHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "session.login")

	if !hash.CheckPassword(h.PasswordHash, c.FormValue("password")) {
		l.Warn("login_error", "status", 401, "reason", "invalid password")
		return c.String(http.StatusUnauthorized, "Invalid")
	}

	token, exp, err := h.Sessions.Issue(h.now())
	if err != nil {
		l.Error("login_error", "status", 500, "reason", "issue session", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	c.SetCookie(h.Sessions.Cookie(token, exp))

	l.Info("login_success")
	return c.Redirect(http.StatusFound, "/admin")
}

func (h *SessionHTTP) Logout(c echo.Context) error {
	c.SetCookie(h.Sessions.ClearCookie())
	logging.FromContext(c.Request().Context()).Info("logout_success", "handler", "session.logout")
	return c.Redirect(http.StatusFound, "/admin/login")
}
