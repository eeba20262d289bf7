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

type firestoreHouseRepository struct {
	client *firestore.Client
}

func NewFirestoreHouseRepository(client *firestore.Client) repository.HouseRepository {
	return &firestoreHouseRepository{
		client: client,
	}
}

func (r *firestoreHouseRepository) Create(ctx context.Context, house *entity.House) error {
	if house.ID == "" {
		house.ID = uuid.New().String()
	}

	now := time.Now()
	house.CreatedAt = now
	house.UpdatedAt = now

	_, err := r.client.Collection("houses").Doc(house.ID).Set(ctx, house)
	if err != nil {
		return apperrors.Internal("Failed to create house", err)
	}
	return nil
}

func (r *firestoreHouseRepository) GetByID(ctx context.Context, id string) (*entity.House, error) {
	doc, err := r.client.Collection("houses").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, apperrors.NotFound("House", err)
		}
		return nil, apperrors.Internal("Failed to get house", err)
	}

	var house entity.House
	if err := doc.DataTo(&house); err != nil {
		return nil, apperrors.Internal("Failed to parse house data", err)
	}

	return &house, nil
}

func (r *firestoreHouseRepository) List(ctx context.Context, limit, offset int) ([]*entity.House, int64, error) {
	query := r.client.Collection("houses").OrderBy("createdAt", firestore.Desc)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while listing houses: %v", err)
		return nil, 0, apperrors.Internal("Failed to list houses", err)
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

	houses := make([]*entity.House, 0, end-start)
	for i := start; i < end; i++ {
		var house entity.House
		if err := docs[i].DataTo(&house); err != nil {
			logger.Warn("Skipping malformed house document %s: %v", docs[i].Ref.ID, err)
			continue
		}
		houses = append(houses, &house)
	}

	return houses, total, nil
}

func (r *firestoreHouseRepository) ListByOwnerID(ctx context.Context, ownerID string) ([]*entity.House, error) {
	query := r.client.Collection("houses").Where("ownerId", "==", ownerID)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, apperrors.Internal("Failed to list houses by owner", err)
	}

	houses := make([]*entity.House, 0, len(docs))
	for _, doc := range docs {
		var house entity.House
		if err := doc.DataTo(&house); err != nil {
			continue
		}
		houses = append(houses, &house)
	}

	return houses, nil
}

func (r *firestoreHouseRepository) Update(ctx context.Context, house *entity.House) error {
	house.UpdatedAt = time.Now()

	_, err := r.client.Collection("houses").Doc(house.ID).Set(ctx, house)
	if err != nil {
		return apperrors.Internal("Failed to update house", err)
	}
	return nil
}

func (r *firestoreHouseRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("houses").Doc(id).Delete(ctx)
	if err != nil {
		return apperrors.Internal("Failed to delete house", err)
	}
	return nil
}
