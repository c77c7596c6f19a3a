package repo

import (
	"context"

	"github.com/faiadgitm-oss/trpical-try/internal/models"
)

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders returns orders newest first. A non-positive limit returns all of them.
func (r *GormRepo) ListOrders(ctx context.Context, offset, limit int) ([]models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{}).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}

	orders := make([]models.Order, 0)
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) CountOrders(ctx context.Context) (int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Order{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, order *models.Order, status string) error {
	if err := r.DB.WithContext(ctx).Model(order).Update("status", status).Error; err != nil {
		return err
	}
	order.Status = status
	return nil
}
