package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/faiadgitm-oss/trpical-try/internal/logging"
	"github.com/faiadgitm-oss/trpical-try/internal/service"
	"github.com/faiadgitm-oss/trpical-try/internal/transport"
	"github.com/faiadgitm-oss/trpical-try/internal/util"
)

const maxFormMemory = 32 << 20

type AdminHTTP struct {
	Orders *service.OrderService
	Items  *service.ItemService
	Menu   *service.MenuService
}

// ListOrders returns orders newest first. Without ?page it returns all of
// them; with ?page and ?size it returns one page and sets X-Total-Count.
func (h *AdminHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.list_orders")

	win, err := util.ParseWindow(c.QueryParam("page"), c.QueryParam("size"))
	if err != nil {
		l.Warn("list_orders_error", "status", 400, "reason", "invalid page", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if win.Paged() {
		total, err := h.Orders.CountOrders(ctx)
		if err != nil {
			return serviceError(l, "list_orders_error", err)
		}
		c.Response().Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	}

	orders, err := h.Orders.ListOrders(ctx, win.Offset, win.Limit)
	if err != nil {
		return serviceError(l, "list_orders_error", err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *AdminHTTP) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update_order_status")

	id, err := pathID(c)
	if err != nil {
		return err
	}

	// An unreadable body counts as a missing status so that an unknown id
	// still answers 404.
	var req transport.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_status_bind", "reason", "invalid body", "error", err)
		req.Status = nil
	}

	order, err := h.Orders.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return serviceError(l, "update_status_error", err)
	}

	l.Info("update_status_success", "order_id", order.ID, "status", order.Status)
	return c.JSON(http.StatusOK, transport.UpdateStatusResponse{OK: true, Status: order.Status})
}

func (h *AdminHTTP) ListItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.list_items")

	items, err := h.Menu.ListItems(ctx)
	if err != nil {
		return serviceError(l, "list_items_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewItemViews(items))
}

func (h *AdminHTTP) CreateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.create_item")

	form, err := readItemForm(c)
	if err != nil {
		l.Warn("create_item_error", "status", 400, "reason", "invalid form", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	item, err := h.Items.CreateItem(ctx, form)
	if err != nil {
		return serviceError(l, "create_item_error", err)
	}

	l.Info("create_item_success", "item_id", item.ID)
	return c.JSON(http.StatusOK, transport.ItemResponse{OK: true, Item: transport.NewItemView(*item)})
}

func (h *AdminHTTP) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.update_item")

	id, err := pathID(c)
	if err != nil {
		return err
	}
	form, err := readItemForm(c)
	if err != nil {
		l.Warn("update_item_error", "status", 400, "reason", "invalid form", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	item, err := h.Items.UpdateItem(ctx, id, form)
	if err != nil {
		return serviceError(l, "update_item_error", err)
	}

	l.Info("update_item_success", "item_id", item.ID)
	return c.JSON(http.StatusOK, transport.ItemResponse{OK: true, Item: transport.NewItemView(*item)})
}

// readItemForm collects the submitted item fields. Absent fields stay nil.
func readItemForm(c echo.Context) (transport.ItemForm, error) {
	req := c.Request()
	if err := req.ParseMultipartForm(maxFormMemory); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			return transport.ItemForm{}, err
		}
		if err := req.ParseForm(); err != nil {
			return transport.ItemForm{}, err
		}
	}

	field := func(name string) *string {
		vals, ok := req.PostForm[name]
		if !ok || len(vals) == 0 {
			return nil
		}
		v := vals[0]
		return &v
	}

	form := transport.ItemForm{
		Name:        field("name"),
		Description: field("description"),
		Price:       field("price"),
		Category:    field("category"),
		OutOfStock:  field("out_of_stock"),
		Variations:  field("variations"),
	}

	if req.MultipartForm != nil {
		if files := req.MultipartForm.File["photo"]; len(files) > 0 {
			form.Photo = files[0]
		}
	}
	return form, nil
}
