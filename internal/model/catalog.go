package model

import "github.com/shopspring/decimal"

type User struct {
	ID string `gorm:"column:user_id;primaryKey;size:36"`
}

func (User) TableName() string {
	return "users"
}

type Product struct {
	ID            string              `gorm:"column:product_id;primaryKey;size:36"`
	Price         decimal.Decimal     `gorm:"column:price;type:decimal(12,2);not null"`
	AverageRating decimal.NullDecimal `gorm:"column:average_rating;type:decimal(3,2)"`
}

func (Product) TableName() string {
	return "products"
}

type Rating struct {
	ID        string `gorm:"column:rating_id;primaryKey;size:36"`
	ProductID string `gorm:"column:product_id;size:36;index;not null"`
	UserID    string `gorm:"column:user_id;size:36;index;not null"`
	Score     int    `gorm:"column:score;not null"`
}

func (Rating) TableName() string {
	return "rating"
}
