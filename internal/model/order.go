package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "PLACED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

type Order struct {
	ID             string          `gorm:"column:order_id;primaryKey;size:36"`
	UserID         string          `gorm:"column:user_id;size:36;index;not null"`
	Status         OrderStatus     `gorm:"column:order_status;size:20;not null"`
	TotalAmount    decimal.Decimal `gorm:"column:total_amount;type:decimal(12,2);not null"`
	DiscountAmount decimal.Decimal `gorm:"column:discount_amount;type:decimal(12,2);not null"`
	PointUsed      int64           `gorm:"column:point_used;not null"`
	CreatedAt      time.Time       `gorm:"column:created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem.UnitPrice is the product price at the time the order was placed.
// It is never re-derived from products.price.
type OrderItem struct {
	ID        string          `gorm:"column:order_item_id;primaryKey;size:36"`
	OrderID   string          `gorm:"column:order_id;size:36;index;not null"`
	ProductID string          `gorm:"column:product_id;size:36;index;not null"`
	Quantity  int             `gorm:"column:quantity;not null"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:decimal(12,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// LineTotal is unit_price × quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
