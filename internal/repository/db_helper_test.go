package repository

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/shinyyama/commerce-seed/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB returns a transaction on a fresh schema of the PostgreSQL database
// named by TEST_DATABASE_DSN. Everything is rolled back when the test ends.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	base, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := base.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	tx := base.Begin()
	require.NoError(t, tx.Error)
	t.Cleanup(func() { tx.Rollback() })

	schema := fmt.Sprintf("seedtest_%d", time.Now().UnixNano())
	require.NoError(t, tx.Exec("CREATE SCHEMA "+schema).Error)
	require.NoError(t, tx.Exec("SET LOCAL search_path TO "+schema).Error)
	require.NoError(t, tx.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Rating{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
		&model.Shipping{},
		&model.UserCoupon{},
		&model.CouponUsage{},
	))
	return tx
}

func insertAll(t *testing.T, db *gorm.DB, rows ...any) {
	t.Helper()
	for _, r := range rows {
		require.NoError(t, db.Create(r).Error, "insert %T", r)
	}
}
