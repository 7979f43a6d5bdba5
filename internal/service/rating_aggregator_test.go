package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) RecomputeAverageRatings(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestRatingAggregator_Run(t *testing.T) {
	var buf bytes.Buffer
	repo := new(MockRatingRepository)
	repo.On("RecomputeAverageRatings", mock.Anything).Return(int64(812), nil).Once()

	a := NewRatingAggregator(testRuntime(NewRand(1), &buf), repo)

	stats, err := a.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Succeeded)
	assert.Zero(t, stats.Failed)
	assert.Contains(t, buf.String(), "average ratings updated for 812 products")
	repo.AssertExpectations(t)
}

func TestRatingAggregator_Run_Error(t *testing.T) {
	var buf bytes.Buffer
	repo := new(MockRatingRepository)
	dbErr := errors.New("relation \"rating\" does not exist")
	repo.On("RecomputeAverageRatings", mock.Anything).Return(int64(0), dbErr)

	a := NewRatingAggregator(testRuntime(NewRand(1), &buf), repo)

	stats, err := a.Run(context.Background())
	assert.ErrorIs(t, err, dbErr)
	assert.Equal(t, 1, stats.Failed)
}
