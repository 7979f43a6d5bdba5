package model

import "time"

type ShippingStatus string

const (
	ShippingStatusShipped   ShippingStatus = "SHIPPED"
	ShippingStatusDelivered ShippingStatus = "DELIVERED"
)

var ShippingStatuses = []ShippingStatus{ShippingStatusShipped, ShippingStatusDelivered}

var Carriers = []string{"CJ대한통운", "한진택배", "롯데택배", "우체국택배"}

type Shipping struct {
	ID             string         `gorm:"column:shipping_id;primaryKey;size:36"`
	OrderID        string         `gorm:"column:order_id;size:36;uniqueIndex;not null"`
	TrackingNumber string         `gorm:"column:tracking_number;size:32;not null"`
	Carrier        string         `gorm:"column:carrier;size:50;not null"`
	Status         ShippingStatus `gorm:"column:status;size:20;not null"`
	ShippedAt      time.Time      `gorm:"column:shipped_at;not null"`
	DeliveredAt    *time.Time     `gorm:"column:delivered_at"`
}

func (Shipping) TableName() string {
	return "shipping"
}
