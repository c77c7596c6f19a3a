package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/faiadgitm-oss/trpical-try/internal/models"
	"github.com/faiadgitm-oss/trpical-try/internal/realtime"
	"github.com/faiadgitm-oss/trpical-try/internal/repo"
	"github.com/faiadgitm-oss/trpical-try/internal/transport"
)

type OrderService struct {
	repo *repo.GormRepo
	pub  Publisher
}

func NewOrderService(r *repo.GormRepo, pub Publisher) *OrderService {
	if pub == nil {
		pub = nopPublisher{}
	}
	return &OrderService{repo: r, pub: pub}
}

// PlaceOrder stores the submitted lines as a pending order and announces it
// to admin listeners. Prices are taken from the request as submitted.
func (svc *OrderService) PlaceOrder(ctx context.Context, req transport.PlaceOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: No items", ErrValidation)
	}

	lines := make([]models.LineItem, 0, len(req.Items))
	for i, line := range req.Items {
		qty := 1
		if line.Qty != nil {
			qty = *line.Qty
		}
		if qty < 1 {
			return nil, fmt.Errorf("%w: item %d: qty must be > 0", ErrValidation, i)
		}
		if line.Price < 0 {
			return nil, fmt.Errorf("%w: item %d: price must be >= 0", ErrValidation, i)
		}
		lines = append(lines, models.LineItem{
			ID:       line.ID,
			Name:     line.Name,
			Qty:      qty,
			Size:     line.Size,
			Price:    line.Price,
			Toppings: line.Toppings,
		})
	}

	order := &models.Order{
		Items:   lines,
		Total:   models.LineTotal(lines),
		CarInfo: req.CarInfo,
		Status:  models.OrderStatusPending,
	}
	if err := svc.repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	svc.pub.Publish(ctx, realtime.Event{
		Name:      realtime.EventNewOrder,
		Namespace: realtime.NamespaceAdmin,
		Key:       strconv.FormatUint(uint64(order.ID), 10),
		Data:      map[string]any{"order_id": order.ID, "order": order},
	})
	return order, nil
}

func (svc *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := svc.repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
		}
		return nil, err
	}
	return order, nil
}

// ListOrders returns orders newest first. limit <= 0 returns all of them.
func (svc *OrderService) ListOrders(ctx context.Context, offset, limit int) ([]models.Order, error) {
	return svc.repo.ListOrders(ctx, offset, limit)
}

func (svc *OrderService) CountOrders(ctx context.Context) (int64, error) {
	return svc.repo.CountOrders(ctx)
}

// UpdateStatus sets any non-empty status on an existing order and tells
// public listeners about it.
func (svc *OrderService) UpdateStatus(ctx context.Context, id uint, status *string) (*models.Order, error) {
	order, err := svc.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if status == nil || *status == "" {
		return nil, fmt.Errorf("%w: no status provided", ErrValidation)
	}

	if err := svc.repo.UpdateOrderStatus(ctx, order, *status); err != nil {
		return nil, err
	}

	svc.pub.Publish(ctx, realtime.Event{
		Name:      realtime.EventOrderUpdate,
		Namespace: realtime.NamespacePublic,
		Key:       strconv.FormatUint(uint64(order.ID), 10),
		Data:      map[string]any{"order_id": order.ID, "status": order.Status},
	})
	return order, nil
}
