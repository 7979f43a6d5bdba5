package repository

import (
	"context"

	"github.com/shinyyama/commerce-seed/internal/model"
	"gorm.io/gorm"
)

type CouponRepository interface {
	CreateUsage(ctx context.Context, u *model.CouponUsage) error
	MarkGrantUsed(ctx context.Context, grantID string) error
}

type couponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepository{db: db}
}

func (r *couponRepository) CreateUsage(ctx context.Context, u *model.CouponUsage) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *couponRepository) MarkGrantUsed(ctx context.Context, grantID string) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).
		Model(&model.UserCoupon{}).
		Where("id = ?", grantID).
		Update("is_used", true).Error
}
