package repository

import (
	"context"

	"gorm.io/gorm"
)

// Check is a consistency rule expressed as a query counting the rows that
// break it. Every query is portable between PostgreSQL and MySQL.
type Check struct {
	Name  string
	Query string
}

var ConsistencyChecks = []Check{
	{
		Name: "order total equals sum of lines",
		Query: `SELECT COUNT(*) FROM orders o
WHERE o.total_amount <> (
	SELECT COALESCE(SUM(i.unit_price * i.quantity), 0) FROM order_items i WHERE i.order_id = o.order_id
)`,
	},
	{
		Name:  "order has at least one line",
		Query: `SELECT COUNT(*) FROM orders o WHERE NOT EXISTS (SELECT 1 FROM order_items i WHERE i.order_id = o.order_id)`,
	},
	{
		Name:  "at most one payment per order",
		Query: `SELECT COUNT(*) FROM (SELECT order_id FROM payment GROUP BY order_id HAVING COUNT(*) > 1) dup`,
	},
	{
		Name: "shipping exists iff payment completed",
		Query: `SELECT
	(SELECT COUNT(*) FROM shipping s WHERE NOT EXISTS (
		SELECT 1 FROM payment p WHERE p.order_id = s.order_id AND p.payment_status = 'COMPLETED'))
	+
	(SELECT COUNT(*) FROM payment p WHERE p.payment_status = 'COMPLETED' AND NOT EXISTS (
		SELECT 1 FROM shipping s WHERE s.order_id = p.order_id))`,
	},
	{
		Name: "order cancelled iff payment failed",
		Query: `SELECT COUNT(*) FROM orders o JOIN payment p ON p.order_id = o.order_id
WHERE (o.order_status = 'CANCELLED') <> (p.payment_status = 'FAILED')`,
	},
	{
		Name:  "delivered_at present iff delivered",
		Query: `SELECT COUNT(*) FROM shipping WHERE (status = 'DELIVERED') <> (delivered_at IS NOT NULL)`,
	},
	// (coupon_id, user_id) identifies a grant; user_coupons is unique on it.
	{
		Name:  "grant redeemed at most once",
		Query: `SELECT COUNT(*) FROM (SELECT coupon_id, user_id FROM coupon_usage GROUP BY coupon_id, user_id HAVING COUNT(*) > 1) dup`,
	},
	{
		Name: "redeemed grant is marked used",
		Query: `SELECT COUNT(*) FROM coupon_usage u WHERE NOT EXISTS (
	SELECT 1 FROM user_coupons g WHERE g.coupon_id = u.coupon_id AND g.user_id = u.user_id AND g.is_used = TRUE)`,
	},
}

type AuditRepository interface {
	CountViolations(ctx context.Context, c Check) (int64, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) CountViolations(ctx context.Context, c Check) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	var n int64
	if err := r.db.WithContext(ctx).Raw(c.Query).Scan(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
