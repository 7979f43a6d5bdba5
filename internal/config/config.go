package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v9"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

var defaultPorts = map[string]string{
	DriverPostgres: "5432",
	DriverMySQL:    "3306",
}

// Seeding passes, in the order they must run.
const (
	StepOrders      = "orders"
	StepFulfillment = "fulfillment"
	StepCouponUsage = "coupon-usage"
	StepAvgRatings  = "avg-ratings"
)

var AllSteps = []string{StepOrders, StepFulfillment, StepCouponUsage, StepAvgRatings}

type Config struct {
	DBDriver    string `env:"DB_DRIVER" envDefault:"postgres"`
	DatabaseURL string `env:"DATABASE_URL"`
	DBUser      string `env:"DB_USER"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBHost      string `env:"DB_HOST" envDefault:"localhost"` // mysql also accepts tcp(host:3306), unix(/path) or /path
	DBName      string `env:"DB_NAME"`
	DBPort      string `env:"DB_PORT"` // empty means the driver's default port
	DBSSLMode   string `env:"DB_SSLMODE" envDefault:"disable"`

	Steps            []string `env:"SEED_STEPS" envSeparator:"," envDefault:"orders,fulfillment,coupon-usage,avg-ratings"`
	OrderCount       int      `env:"SEED_ORDER_COUNT" envDefault:"3000"`
	RedemptionCount  int      `env:"SEED_REDEMPTION_COUNT" envDefault:"300"`
	ProgressEvery    int      `env:"SEED_PROGRESS_EVERY" envDefault:"500"`
	RandomSeed       int64    `env:"SEED_RANDOM_SEED" envDefault:"0"`
	AllowCouponReuse bool     `env:"SEED_COUPON_REUSE" envDefault:"false"`

	MetricsAddr string `env:"METRICS_ADDR"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	if c.DBDriver != DriverPostgres && c.DBDriver != DriverMySQL {
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverMySQL, c.DBDriver)
	}
	if strings.TrimSpace(c.DBPort) == "" {
		c.DBPort = defaultPorts[c.DBDriver]
	}
	if c.DatabaseURL == "" {
		if c.DBUser == "" {
			return errors.New("DB_USER is required")
		}
		if c.DBName == "" {
			return errors.New("DB_NAME is required")
		}
	}

	steps, err := normalizeSteps(c.Steps)
	if err != nil {
		return err
	}
	c.Steps = steps

	if c.OrderCount <= 0 {
		return errors.New("SEED_ORDER_COUNT must be positive")
	}
	if c.RedemptionCount <= 0 {
		return errors.New("SEED_REDEMPTION_COUNT must be positive")
	}
	if c.ProgressEvery <= 0 {
		return errors.New("SEED_PROGRESS_EVERY must be positive")
	}
	return nil
}

// normalizeSteps drops blanks and duplicates and reorders the requested steps
// into dependency order.
func normalizeSteps(raw []string) ([]string, error) {
	want := make(map[string]bool, len(raw))
	for _, s := range raw {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if !isKnownStep(s) {
			return nil, fmt.Errorf("unknown seed step %q", s)
		}
		want[s] = true
	}
	if len(want) == 0 {
		return nil, errors.New("SEED_STEPS must name at least one step")
	}
	steps := make([]string, 0, len(want))
	for _, s := range AllSteps {
		if want[s] {
			steps = append(steps, s)
		}
	}
	return steps, nil
}

func isKnownStep(s string) bool {
	for _, k := range AllSteps {
		if k == s {
			return true
		}
	}
	return false
}
