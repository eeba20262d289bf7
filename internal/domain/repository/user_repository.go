package repository

import (
	"context"

	"homerent/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, limit, offset int) ([]*entity.User, int64, error)

	// SaveRating replaces raterID's score on the target user and recomputes
	// the running aggregates inside a single transaction.
	SaveRating(ctx context.Context, targetID, raterID string, score int) (*entity.User, error)
}
