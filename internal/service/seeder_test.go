package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/shinyyama/commerce-seed/internal/config"
	"github.com/shinyyama/commerce-seed/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memRefs reads back whatever the store holds so passes see upstream output.
type memRefs struct {
	fakeRefs
	store *memStore
}

func (m *memRefs) ListOrderTotals(ctx context.Context) ([]model.Order, error) {
	return m.store.orderTotals(), nil
}

func (m *memRefs) ListOrderIDs(ctx context.Context) ([]string, error) {
	return m.store.orderOrder, nil
}

func TestSeeder_RunsStepsInOrder(t *testing.T) {
	var buf bytes.Buffer
	store := newMemStore()
	refs := NewReferenceLoader(&memRefs{
		fakeRefs: fakeRefs{users: []string{"u1", "u2"}, products: testProducts(), grants: testGrants(20)},
		store:    store,
	})
	rt := testRuntime(NewRand(21), &buf)
	ratings := new(MockRatingRepository)
	ratings.On("RecomputeAverageRatings", mock.Anything).Return(int64(8), nil).Once()

	s := NewSeederService(
		NewOrderComposer(rt, refs, store),
		NewFulfiller(rt, refs, store, store),
		NewCouponLinker(rt, refs, store, false),
		NewRatingAggregator(rt, ratings),
		50, 10,
	)

	all, err := s.Run(context.Background(), config.AllSteps)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, []string{"orders", "fulfillment", "coupon-usage", "avg-ratings"},
		[]string{all[0].Pass, all[1].Pass, all[2].Pass, all[3].Pass})
	assert.Len(t, store.orders, 50)
	assert.Len(t, store.payments, 50)
	assert.Len(t, store.usages, 10)
	assert.Equal(t, "", s.CurrentStep())
	ratings.AssertExpectations(t)
}

func TestSeeder_StopsAtFirstFatalStep(t *testing.T) {
	var buf bytes.Buffer
	store := newMemStore()
	refs := NewReferenceLoader(&memRefs{store: store})
	rt := testRuntime(NewRand(21), &buf)
	ratings := new(MockRatingRepository)

	s := NewSeederService(
		NewOrderComposer(rt, refs, store),
		NewFulfiller(rt, refs, store, store),
		NewCouponLinker(rt, refs, store, false),
		NewRatingAggregator(rt, ratings),
		10, 10,
	)

	all, err := s.Run(context.Background(), []string{config.StepFulfillment, config.StepAvgRatings})
	assert.ErrorIs(t, err, ErrEmptyPool)
	assert.Contains(t, err.Error(), "fulfillment")
	assert.Empty(t, all)
	ratings.AssertNotCalled(t, "RecomputeAverageRatings", mock.Anything)
}
