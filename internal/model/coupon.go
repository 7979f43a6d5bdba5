package model

import "time"

// UserCoupon is a coupon granted to a user. A user holds at most one grant of
// a coupon, and it can be redeemed once.
type UserCoupon struct {
	ID         string    `gorm:"column:id;primaryKey;size:36"`
	UserID     string    `gorm:"column:user_id;size:36;uniqueIndex:idx_user_coupon,priority:1;not null"`
	CouponID   string    `gorm:"column:coupon_id;size:36;index;uniqueIndex:idx_user_coupon,priority:2;not null"`
	AssignedAt time.Time `gorm:"column:assigned_at"`
	IsUsed     bool      `gorm:"column:is_used;not null;default:false"`
}

func (UserCoupon) TableName() string {
	return "user_coupons"
}

type CouponUsage struct {
	ID       string    `gorm:"column:usage_id;primaryKey;size:36"`
	CouponID string    `gorm:"column:coupon_id;size:36;index;not null"`
	UserID   string    `gorm:"column:user_id;size:36;index;not null"`
	OrderID  string    `gorm:"column:order_id;size:36;index;not null"`
	UsedAt   time.Time `gorm:"column:used_at;not null"`
}

func (CouponUsage) TableName() string {
	return "coupon_usage"
}
