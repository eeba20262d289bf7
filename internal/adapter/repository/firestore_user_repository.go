package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"homerent/internal/domain/entity"
	"homerent/internal/domain/repository"
	apperrors "homerent/pkg/errors"
	"homerent/pkg/logger"
)

type firestoreUserRepository struct {
	client *firestore.Client
}

func NewFirestoreUserRepository(client *firestore.Client) repository.UserRepository {
	return &firestoreUserRepository{
		client: client,
	}
}

func (r *firestoreUserRepository) Create(ctx context.Context, user *entity.User) error {
	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, user)
	if err != nil {
		return apperrors.Internal("Failed to create user", err)
	}
	return nil
}

func (r *firestoreUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.client.Collection("users").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, apperrors.NotFound("User", err)
		}
		return nil, apperrors.Internal("Failed to get user", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, apperrors.Internal("Failed to parse user data", err)
	}

	return &user, nil
}

func (r *firestoreUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := r.client.Collection("users").Where("email", "==", email).Limit(1)
	iter := query.Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, apperrors.NotFound("User", nil)
		}
		return nil, apperrors.Internal("Failed to query user by email", err)
	}

	var user entity.User
	if err := doc.DataTo(&user); err != nil {
		return nil, apperrors.Internal("Failed to parse user data", err)
	}

	return &user, nil
}

func (r *firestoreUserRepository) Update(ctx context.Context, user *entity.User) error {
	user.UpdatedAt = time.Now()

	_, err := r.client.Collection("users").Doc(user.ID).Set(ctx, user)
	if err != nil {
		return apperrors.Internal("Failed to update user", err)
	}
	return nil
}

func (r *firestoreUserRepository) List(ctx context.Context, limit, offset int) ([]*entity.User, int64, error) {
	query := r.client.Collection("users").OrderBy("createdAt", firestore.Desc)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while listing users: %v", err)
		return nil, 0, apperrors.Internal("Failed to list users", err)
	}

	total := int64(len(docs))

	start := offset
	if start > len(docs) {
		start = len(docs)
	}
	end := len(docs)
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	users := make([]*entity.User, 0, end-start)
	for i := start; i < end; i++ {
		var user entity.User
		if err := docs[i].DataTo(&user); err != nil {
			logger.Warn("Skipping malformed user document %s: %v", docs[i].Ref.ID, err)
			continue
		}
		users = append(users, &user)
	}

	return users, total, nil
}

func (r *firestoreUserRepository) SaveRating(ctx context.Context, targetID, raterID string, score int) (*entity.User, error) {
	var rated *entity.User

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		targetRef := r.client.Collection("users").Doc(targetID)
		doc, err := tx.Get(targetRef)
		if err != nil {
			return err
		}

		var user entity.User
		if err := doc.DataTo(&user); err != nil {
			return err
		}

		if user.Raters == nil {
			user.Raters = make(map[string]int)
		}
		if previous, ok := user.Raters[raterID]; ok {
			user.TotalScore -= int64(previous)
		} else {
			user.TotalRatings++
		}
		user.Raters[raterID] = score
		user.TotalScore += int64(score)
		user.AverageRating = float64(user.TotalScore) / float64(user.TotalRatings)
		user.UpdatedAt = time.Now()

		if err := tx.Set(targetRef, &user); err != nil {
			return err
		}
		rated = &user
		return nil
	})

	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, apperrors.NotFound("User", err)
		}
		return nil, apperrors.Internal("Failed to save rating", err)
	}

	return rated, nil
}
