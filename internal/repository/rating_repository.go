package repository

import (
	"context"

	"gorm.io/gorm"
)

// AverageRatingSQL sets products.average_rating to the 2-decimal mean score of
// every product that has at least one rating. Products without ratings keep
// their current value. Valid on both PostgreSQL and MySQL.
const AverageRatingSQL = `UPDATE products
SET average_rating = (
	SELECT ROUND(AVG(r.score), 2) FROM rating r WHERE r.product_id = products.product_id
)
WHERE EXISTS (
	SELECT 1 FROM rating r WHERE r.product_id = products.product_id
)`

type RatingRepository interface {
	RecomputeAverageRatings(ctx context.Context) (int64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) RecomputeAverageRatings(ctx context.Context) (int64, error) {
	if r.db == nil {
		return 0, ErrDBNotReady
	}
	res := r.db.WithContext(ctx).Exec(AverageRatingSQL)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
