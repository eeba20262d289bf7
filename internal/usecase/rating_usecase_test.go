package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homerent/pkg/errors"
)

func TestRateUser(t *testing.T) {
	users := seedUsers()
	uc := NewRatingUseCase(users)
	ctx := context.Background()

	result, err := uc.RateUser(ctx, "alice", "bob", 4)
	require.NoError(t, err)
	assert.Equal(t, 4.0, result.AverageRating)
	assert.Equal(t, 1, result.TotalRatings)

	// Re-rating replaces the previous score instead of stacking.
	result, err = uc.RateUser(ctx, "alice", "bob", 2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, result.AverageRating)
	assert.Equal(t, 1, result.TotalRatings)

	// A second rater moves the average.
	result, err = uc.RateUser(ctx, "carol", "bob", 4)
	require.NoError(t, err)
	assert.Equal(t, 3.0, result.AverageRating)
	assert.Equal(t, 2, result.TotalRatings)
}

func TestRateUserValidation(t *testing.T) {
	uc := NewRatingUseCase(seedUsers())
	ctx := context.Background()

	_, err := uc.RateUser(ctx, "alice", "bad/id", 3)
	assert.Equal(t, 400, errors.StatusOf(err))

	_, err = uc.RateUser(ctx, "alice", "bob", 0)
	assert.Equal(t, 400, errors.StatusOf(err))

	_, err = uc.RateUser(ctx, "alice", "bob", 6)
	assert.Equal(t, 400, errors.StatusOf(err))

	_, err = uc.RateUser(ctx, "alice", "alice", 3)
	assert.Equal(t, 409, errors.StatusOf(err))

	_, err = uc.RateUser(ctx, "alice", "ghost", 3)
	assert.Equal(t, 404, errors.StatusOf(err))
}
