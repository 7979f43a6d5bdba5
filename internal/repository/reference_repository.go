package repository

import (
	"context"

	"github.com/shinyyama/commerce-seed/internal/model"
	"gorm.io/gorm"
)

// ReferenceRepository reads the already-seeded parent rows the generators
// draw foreign keys from.
type ReferenceRepository interface {
	ListUserIDs(ctx context.Context) ([]string, error)
	ListProductPrices(ctx context.Context) ([]model.Product, error)
	ListOrderTotals(ctx context.Context) ([]model.Order, error)
	ListOrderIDs(ctx context.Context) ([]string, error)
	ListUnusedGrants(ctx context.Context) ([]model.UserCoupon, error)
}

type referenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) ReferenceRepository {
	return &referenceRepository{db: db}
}

func (r *referenceRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Order("user_id").
		Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *referenceRepository) ListProductPrices(ctx context.Context) ([]model.Product, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Product
	if err := r.db.WithContext(ctx).
		Select("product_id", "price").
		Order("product_id").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *referenceRepository) ListOrderTotals(ctx context.Context) ([]model.Order, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.Order
	if err := r.db.WithContext(ctx).
		Select("order_id", "total_amount").
		Order("created_at, order_id").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *referenceRepository) ListOrderIDs(ctx context.Context) ([]string, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var ids []string
	if err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Order("order_id").
		Pluck("order_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *referenceRepository) ListUnusedGrants(ctx context.Context) ([]model.UserCoupon, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var list []model.UserCoupon
	if err := r.db.WithContext(ctx).
		Select("id", "user_id", "coupon_id", "is_used").
		Where("is_used = ?", false).
		Order("id").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
