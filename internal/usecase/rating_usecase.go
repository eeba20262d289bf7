package usecase

import (
	"context"
	"log"

	"homerent/internal/domain/repository"
	"homerent/pkg/errors"
	"homerent/pkg/utils"
)

type RatingUseCase struct {
	userRepo repository.UserRepository
}

func NewRatingUseCase(userRepo repository.UserRepository) *RatingUseCase {
	return &RatingUseCase{userRepo: userRepo}
}

// RatingResult carries the target's aggregates after the rating landed.
type RatingResult struct {
	UserID        string  `json:"user_id"`
	AverageRating float64 `json:"average_rating"`
	TotalRatings  int     `json:"total_ratings"`
}

// RateUser upserts the caller's score on the target. Rating the same user
// again replaces the previous score instead of adding a second one.
func (uc *RatingUseCase) RateUser(ctx context.Context, raterID, targetID string, score int) (*RatingResult, error) {
	if !utils.ValidID(targetID) {
		return nil, errors.BadRequest("Invalid user id", nil)
	}

	if score < 1 || score > 5 {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}

	if targetID == raterID {
		return nil, errors.Conflict("Cannot rate yourself")
	}

	if _, err := uc.userRepo.GetByID(ctx, targetID); err != nil {
		return nil, errors.NotFound("User", err)
	}

	updated, err := uc.userRepo.SaveRating(ctx, targetID, raterID, score)
	if err != nil {
		log.Printf("RateUser Error: failed to save rating from %s on %s: %v", raterID, targetID, err)
		return nil, err
	}

	return &RatingResult{
		UserID:        updated.ID,
		AverageRating: updated.AverageRating,
		TotalRatings:  updated.TotalRatings,
	}, nil
}
