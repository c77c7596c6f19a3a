package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/faiadgitm-oss/trpical-try/internal/logging"
	"github.com/faiadgitm-oss/trpical-try/internal/service"
	"github.com/faiadgitm-oss/trpical-try/internal/transport"
)

type MenuHTTP struct {
	Svc *service.MenuService
}

func (h *MenuHTTP) Menu(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.menu")

	cats, err := h.Svc.Menu(ctx)
	if err != nil {
		return serviceError(l, "menu_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewMenuResponse(cats))
}

func (h *MenuHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "menu.search")

	items, err := h.Svc.Search(ctx, c.QueryParam("q"))
	if err != nil {
		return serviceError(l, "search_error", err)
	}
	return c.JSON(http.StatusOK, transport.SearchResponse{Results: transport.NewItemViews(items)})
}
