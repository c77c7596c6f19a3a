package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/faiadgitm-oss/trpical-try/internal/middleware/csrf"
	"github.com/faiadgitm-oss/trpical-try/internal/web"
)

type pageData struct {
	CSRFToken string
}

type PagesHTTP struct{}

// Index serves the customer app shell.
func (h *PagesHTTP) Index(c echo.Context) error {
	return c.Render(http.StatusOK, web.PageIndex, nil)
}

// OrderStatus serves the same shell for /order-status/:id with a numeric id.
func (h *PagesHTTP) OrderStatus(c echo.Context) error {
	if _, err := pathID(c); err != nil {
		return err
	}
	return c.Render(http.StatusOK, web.PageIndex, nil)
}

func (h *PagesHTTP) Admin(c echo.Context) error {
	return c.Render(http.StatusOK, web.PageAdmin, pageData{CSRFToken: csrf.Token(c)})
}
