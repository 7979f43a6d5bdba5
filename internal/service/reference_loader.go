package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shinyyama/commerce-seed/internal/model"
	"github.com/shinyyama/commerce-seed/internal/repository"
)

// ErrEmptyPool is returned when a pass has nothing to draw from.
var ErrEmptyPool = errors.New("empty reference pool")

// ReferenceLoader wraps the reference reads with the fatal-on-failure policy:
// any read error or empty result aborts the pass that asked for it.
type ReferenceLoader struct {
	repo repository.ReferenceRepository
}

func NewReferenceLoader(repo repository.ReferenceRepository) *ReferenceLoader {
	return &ReferenceLoader{repo: repo}
}

func (l *ReferenceLoader) Buyers(ctx context.Context) ([]string, error) {
	ids, err := l.repo.ListUserIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("load users: %w", ErrEmptyPool)
	}
	return ids, nil
}

func (l *ReferenceLoader) Products(ctx context.Context) ([]model.Product, error) {
	products, err := l.repo.ListProductPrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("load products: %w", ErrEmptyPool)
	}
	return products, nil
}

func (l *ReferenceLoader) OrderTotals(ctx context.Context) ([]model.Order, error) {
	orders, err := l.repo.ListOrderTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	if len(orders) == 0 {
		return nil, fmt.Errorf("load orders: %w", ErrEmptyPool)
	}
	return orders, nil
}

func (l *ReferenceLoader) OrderIDs(ctx context.Context) ([]string, error) {
	ids, err := l.repo.ListOrderIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load order ids: %w", err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("load order ids: %w", ErrEmptyPool)
	}
	return ids, nil
}

func (l *ReferenceLoader) UnusedGrants(ctx context.Context) ([]model.UserCoupon, error) {
	grants, err := l.repo.ListUnusedGrants(ctx)
	if err != nil {
		return nil, fmt.Errorf("load unused grants: %w", err)
	}
	if len(grants) == 0 {
		return nil, fmt.Errorf("load unused grants: %w", ErrEmptyPool)
	}
	return grants, nil
}
