package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setDBEnv(t *testing.T) {
	t.Setenv("DB_USER", "seed")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "shop")
	t.Setenv("DB_PORT", "")
}

func TestLoad_Defaults(t *testing.T) {
	setDBEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, AllSteps, cfg.Steps)
	assert.Equal(t, 3000, cfg.OrderCount)
	assert.Equal(t, 300, cfg.RedemptionCount)
	assert.Equal(t, 500, cfg.ProgressEvery)
	assert.False(t, cfg.AllowCouponReuse)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestLoad_PortFollowsDriver(t *testing.T) {
	tests := []struct {
		name     string
		driver   string
		port     string
		wantPort string
	}{
		{"postgres default", "postgres", "", "5432"},
		{"mysql default", "mysql", "", "3306"},
		{"mysql mixed case", "MySQL", "", "3306"},
		{"explicit port kept", "mysql", "3307", "3307"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setDBEnv(t)
			t.Setenv("DB_DRIVER", tt.driver)
			t.Setenv("DB_PORT", tt.port)

			cfg, err := Load()
			require.NoError(t, err)
			assert.Equal(t, tt.wantPort, cfg.DBPort)
		})
	}
}

func TestLoad_StepsAreReorderedAndDeduplicated(t *testing.T) {
	setDBEnv(t)
	t.Setenv("SEED_STEPS", " avg-ratings,Orders,,orders ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{StepOrders, StepAvgRatings}, cfg.Steps)
}

func TestLoad_DatabaseURLReplacesParts(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://seed:secret@db:5432/shop")
	t.Setenv("DB_DRIVER", "MySQL")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverMySQL, cfg.DBDriver)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"unknown driver", map[string]string{"DB_DRIVER": "sqlite"}, "DB_DRIVER"},
		{"unknown step", map[string]string{"SEED_STEPS": "orders,reviews"}, "unknown seed step"},
		{"no steps", map[string]string{"SEED_STEPS": " , "}, "at least one step"},
		{"zero orders", map[string]string{"SEED_ORDER_COUNT": "0"}, "SEED_ORDER_COUNT"},
		{"negative redemptions", map[string]string{"SEED_REDEMPTION_COUNT": "-1"}, "SEED_REDEMPTION_COUNT"},
		{"bad number", map[string]string{"SEED_ORDER_COUNT": "many"}, "OrderCount"},
		{"missing user", map[string]string{"DB_USER": ""}, "DB_USER"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setDBEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
