package csrf

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEcho() *echo.Echo {
	e := echo.New()
	mw := Middleware(Config{})
	e.GET("/form", func(c echo.Context) error { return c.String(http.StatusOK, Token(c)) }, mw)
	e.POST("/form", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }, mw)
	return e
}

func issue(t *testing.T, e *echo.Echo) (string, *http.Cookie) {
	t.Helper()
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/form", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, cookies[0].Value, rec.Body.String())
	assert.Equal(t, cookies[0].Value, rec.Header().Get("X-CSRF-Token"))
	return rec.Body.String(), cookies[0]
}

func post(e *echo.Echo, cookie *http.Cookie, origin string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMiddleware_AcceptsMatchingFormToken(t *testing.T) {
	e := newEcho()
	token, cookie := issue(t, e)

	rec := post(e, cookie, "http://example.com", url.Values{"csrf_token": {token}})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestMiddleware_Rejects(t *testing.T) {
	e := newEcho()
	token, cookie := issue(t, e)

	cases := []struct {
		name   string
		cookie *http.Cookie
		origin string
		form   url.Values
	}{
		{"missing token", cookie, "http://example.com", url.Values{}},
		{"wrong token", cookie, "http://example.com", url.Values{"csrf_token": {token + "x"}}},
		{"foreign origin", cookie, "http://evil.test", url.Values{"csrf_token": {token}}},
		{"no cookie", nil, "http://example.com", url.Values{"csrf_token": {token}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := post(e, tc.cookie, tc.origin, tc.form)
			assert.Equal(t, http.StatusForbidden, rec.Code)
		})
	}
}
