package repository

import (
	"context"

	"homerent/internal/domain/entity"
)

type HouseRepository interface {
	Create(ctx context.Context, house *entity.House) error
	GetByID(ctx context.Context, id string) (*entity.House, error)
	List(ctx context.Context, limit, offset int) ([]*entity.House, int64, error)
	ListByOwnerID(ctx context.Context, ownerID string) ([]*entity.House, error)
	Update(ctx context.Context, house *entity.House) error
	Delete(ctx context.Context, id string) error
}
