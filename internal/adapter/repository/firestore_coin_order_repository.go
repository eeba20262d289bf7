package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"homerent/internal/domain/entity"
	"homerent/internal/domain/repository"
	apperrors "homerent/pkg/errors"
	"homerent/pkg/logger"
)

type firestoreCoinOrderRepository struct {
	client *firestore.Client
}

func NewFirestoreCoinOrderRepository(client *firestore.Client) repository.CoinOrderRepository {
	return &firestoreCoinOrderRepository{
		client: client,
	}
}

func (r *firestoreCoinOrderRepository) Create(ctx context.Context, order *entity.CoinOrder) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.CreatedAt = time.Now()

	_, err := r.client.Collection("coin_orders").Doc(order.ID).Set(ctx, order)
	if err != nil {
		return apperrors.Internal("Failed to create coin order", err)
	}
	return nil
}

func (r *firestoreCoinOrderRepository) GetByID(ctx context.Context, id string) (*entity.CoinOrder, error) {
	doc, err := r.client.Collection("coin_orders").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, apperrors.NotFound("Coin order", err)
		}
		return nil, apperrors.Internal("Failed to get coin order", err)
	}

	var order entity.CoinOrder
	if err := doc.DataTo(&order); err != nil {
		return nil, apperrors.Internal("Failed to parse coin order data", err)
	}

	return &order, nil
}

func (r *firestoreCoinOrderRepository) CompleteAndCredit(ctx context.Context, orderID string) (*entity.CoinOrder, error) {
	var completed *entity.CoinOrder

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		orderRef := r.client.Collection("coin_orders").Doc(orderID)
		orderDoc, err := tx.Get(orderRef)
		if err != nil {
			return err
		}

		var order entity.CoinOrder
		if err := orderDoc.DataTo(&order); err != nil {
			return err
		}

		// A replayed callback finds the order already completed.
		if order.Status == entity.CoinOrderCompleted {
			completed = &order
			return nil
		}

		userRef := r.client.Collection("users").Doc(order.UserID)
		userDoc, err := tx.Get(userRef)
		if err != nil {
			return err
		}
		var user entity.User
		if err := userDoc.DataTo(&user); err != nil {
			return err
		}

		now := time.Now()
		order.Status = entity.CoinOrderCompleted
		order.CompletedAt = &now

		if err := tx.Update(userRef, []firestore.Update{
			{Path: "coins", Value: user.Coins + order.Coins},
			{Path: "updatedAt", Value: now},
		}); err != nil {
			return err
		}
		if err := tx.Set(orderRef, &order); err != nil {
			return err
		}
		completed = &order
		return nil
	})

	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, apperrors.NotFound("Coin order", err)
		}
		logger.Error("CompleteAndCredit transaction failed for order %s: %v", orderID, err)
		return nil, apperrors.Internal("Failed to credit coin order", err)
	}

	return completed, nil
}
