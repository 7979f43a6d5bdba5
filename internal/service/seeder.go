package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/shinyyama/commerce-seed/internal/config"
)

type SeederService interface {
	Run(ctx context.Context, steps []string) ([]PassStats, error)
	CurrentStep() string
}

type seeder struct {
	composer        *OrderComposer
	fulfiller       *Fulfiller
	linker          *CouponLinker
	aggregator      *RatingAggregator
	orderCount      int
	redemptionCount int
	current         atomic.Value
}

func NewSeederService(composer *OrderComposer, fulfiller *Fulfiller, linker *CouponLinker, aggregator *RatingAggregator, orderCount, redemptionCount int) SeederService {
	s := &seeder{
		composer:        composer,
		fulfiller:       fulfiller,
		linker:          linker,
		aggregator:      aggregator,
		orderCount:      orderCount,
		redemptionCount: redemptionCount,
	}
	s.current.Store("")
	return s
}

// Run executes the steps one after another. Each step only starts after the
// previous one has finished; the first step error aborts the rest.
func (s *seeder) Run(ctx context.Context, steps []string) ([]PassStats, error) {
	defer s.current.Store("")

	var all []PassStats
	for _, step := range steps {
		s.current.Store(step)
		stats, err := s.runStep(ctx, step)
		if err != nil {
			return all, fmt.Errorf("%s: %w", step, err)
		}
		all = append(all, stats)
	}
	return all, nil
}

func (s *seeder) runStep(ctx context.Context, step string) (PassStats, error) {
	switch step {
	case config.StepOrders:
		return s.composer.Run(ctx, s.orderCount)
	case config.StepFulfillment:
		return s.fulfiller.Run(ctx)
	case config.StepCouponUsage:
		return s.linker.Run(ctx, s.redemptionCount)
	case config.StepAvgRatings:
		return s.aggregator.Run(ctx)
	default:
		return PassStats{}, fmt.Errorf("unknown step %q", step)
	}
}

func (s *seeder) CurrentStep() string {
	return s.current.Load().(string)
}
