package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shinyyama/commerce-seed/internal/model"
	"gorm.io/gorm"
)

type OrderRepository interface {
	// CreateWithItems writes the order and all of its lines in one transaction.
	CreateWithItems(ctx context.Context, order *model.Order, items []model.OrderItem) error
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus, at time.Time) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateWithItems(ctx context.Context, order *model.Order, items []model.OrderItem) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		for i := range items {
			if err := tx.Create(&items[i]).Error; err != nil {
				return fmt.Errorf("insert order item %s: %w", items[i].ProductID, err)
			}
		}
		return nil
	})
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus, at time.Time) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	// MySQL reports unchanged rows as unaffected, so RowsAffected is not checked.
	return r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{
			"order_status": status,
			"updated_at":   at,
		}).Error
}
