package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/faiadgitm-oss/trpical-try/internal/logging"
	"github.com/faiadgitm-oss/trpical-try/internal/service"
	"github.com/faiadgitm-oss/trpical-try/internal/transport"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.place_order")

	var req transport.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("place_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.PlaceOrder(ctx, req)
	if err != nil {
		return serviceError(l, "place_order_error", err)
	}

	l.Info("place_order_success", "order_id", order.ID, "total", order.Total)
	return c.JSON(http.StatusOK, transport.PlaceOrderResponse{OrderID: order.ID, Status: order.Status})
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	id, err := pathID(c)
	if err != nil {
		return err
	}
	order, err := h.Svc.GetOrder(ctx, id)
	if err != nil {
		return serviceError(l, "get_order_error", err)
	}
	return c.JSON(http.StatusOK, order)
}
