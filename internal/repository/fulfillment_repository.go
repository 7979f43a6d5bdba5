package repository

import (
	"context"

	"github.com/shinyyama/commerce-seed/internal/model"
	"gorm.io/gorm"
)

type FulfillmentRepository interface {
	CreatePayment(ctx context.Context, p *model.Payment) error
	CreateShipping(ctx context.Context, s *model.Shipping) error
}

type fulfillmentRepository struct {
	db *gorm.DB
}

func NewFulfillmentRepository(db *gorm.DB) FulfillmentRepository {
	return &fulfillmentRepository{db: db}
}

func (r *fulfillmentRepository) CreatePayment(ctx context.Context, p *model.Payment) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *fulfillmentRepository) CreateShipping(ctx context.Context, s *model.Shipping) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(s).Error
}
