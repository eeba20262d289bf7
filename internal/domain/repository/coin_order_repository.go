package repository

import (
	"context"

	"homerent/internal/domain/entity"
)

type CoinOrderRepository interface {
	Create(ctx context.Context, order *entity.CoinOrder) error
	GetByID(ctx context.Context, id string) (*entity.CoinOrder, error)

	// CompleteAndCredit marks the order completed and credits its coins to
	// the owning user in one transaction. An already-completed order is a
	// no-op, so a replayed gateway callback cannot credit twice.
	CompleteAndCredit(ctx context.Context, orderID string) (*entity.CoinOrder, error)
}
