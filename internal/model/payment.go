package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

type PaymentMethod string

const (
	PaymentMethodCard  PaymentMethod = "CARD"
	PaymentMethodBank  PaymentMethod = "BANK"
	PaymentMethodKakao PaymentMethod = "KAKAO"
	PaymentMethodNaver PaymentMethod = "NAVER"
)

var PaymentMethods = []PaymentMethod{PaymentMethodCard, PaymentMethodBank, PaymentMethodKakao, PaymentMethodNaver}

type Payment struct {
	ID          string          `gorm:"column:payment_id;primaryKey;size:36"`
	OrderID     string          `gorm:"column:order_id;size:36;uniqueIndex;not null"`
	Method      PaymentMethod   `gorm:"column:payment_method;size:20;not null"`
	Status      PaymentStatus   `gorm:"column:payment_status;size:20;not null"`
	Amount      decimal.Decimal `gorm:"column:amount;type:decimal(12,2);not null"`
	PaymentDate time.Time       `gorm:"column:payment_date;not null"`
}

func (Payment) TableName() string {
	return "payment"
}
