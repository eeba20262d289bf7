package usecase

import (
	"context"
	"io"
	"log"
	"time"

	"homerent/internal/domain/entity"
	"homerent/internal/domain/repository"
	"homerent/internal/domain/service"
	"homerent/pkg/errors"
	"homerent/pkg/utils"
)

type HouseUseCase struct {
	houseRepo   repository.HouseRepository
	userRepo    repository.UserRepository
	fileService service.FileUploadService
}

func NewHouseUseCase(
	houseRepo repository.HouseRepository,
	userRepo repository.UserRepository,
	fileService service.FileUploadService,
) *HouseUseCase {
	return &HouseUseCase{
		houseRepo:   houseRepo,
		userRepo:    userRepo,
		fileService: fileService,
	}
}

type HouseImage struct {
	Reader      io.Reader
	ContentType string
}

type CreateHouseInput struct {
	Title       string
	Location    string
	Description string
	Price       float64
	ForSale     bool
	MainImage   *HouseImage
	SubImages   []*HouseImage
}

func (uc *HouseUseCase) CreateHouse(ctx context.Context, ownerID string, input CreateHouseInput) (*entity.House, error) {
	if input.MainImage == nil {
		return nil, errors.BadRequest("Main image is required", nil)
	}

	mainURL, err := uc.fileService.UploadFile(ctx, input.MainImage.Reader, input.MainImage.ContentType, "houses", true)
	if err != nil {
		log.Printf("CreateHouse Error: main image upload failed: %v", err)
		return nil, errors.Internal("Failed to upload main image", err)
	}

	subURLs := make([]string, 0, len(input.SubImages))
	for _, img := range input.SubImages {
		url, err := uc.fileService.UploadFile(ctx, img.Reader, img.ContentType, "houses", true)
		if err != nil {
			log.Printf("CreateHouse Error: sub image upload failed: %v", err)
			return nil, errors.Internal("Failed to upload image", err)
		}
		subURLs = append(subURLs, url)
	}

	now := time.Now()
	house := &entity.House{
		Title:       input.Title,
		Location:    input.Location,
		Description: input.Description,
		Price:       input.Price,
		ForSale:     input.ForSale,
		OwnerID:     ownerID,
		MainImage:   mainURL,
		SubImages:   subURLs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.houseRepo.Create(ctx, house); err != nil {
		return nil, errors.Internal("Failed to create house", err)
	}

	return house, nil
}

func (uc *HouseUseCase) GetHouse(ctx context.Context, id string) (*entity.House, error) {
	if !utils.ValidID(id) {
		return nil, errors.BadRequest("Invalid house id", nil)
	}
	return uc.houseRepo.GetByID(ctx, id)
}

func (uc *HouseUseCase) ListHouses(ctx context.Context, limit, offset int) ([]*entity.House, int64, error) {
	houses, total, err := uc.houseRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, errors.Internal("Failed to list houses", err)
	}
	return houses, total, nil
}

func (uc *HouseUseCase) ListMyHouses(ctx context.Context, ownerID string) ([]*entity.House, error) {
	houses, err := uc.houseRepo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, errors.Internal("Failed to list houses", err)
	}
	return houses, nil
}

type UpdateHouseInput struct {
	Title       *string
	Location    *string
	Description *string
	Price       *float64
	ForSale     *bool
}

func (uc *HouseUseCase) UpdateHouse(ctx context.Context, callerID, houseID string, input UpdateHouseInput) (*entity.House, error) {
	house, err := uc.authorizeOwner(ctx, callerID, houseID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		house.Title = *input.Title
	}
	if input.Location != nil {
		house.Location = *input.Location
	}
	if input.Description != nil {
		house.Description = *input.Description
	}
	if input.Price != nil {
		house.Price = *input.Price
	}
	if input.ForSale != nil {
		house.ForSale = *input.ForSale
	}
	house.UpdatedAt = time.Now()

	if err := uc.houseRepo.Update(ctx, house); err != nil {
		return nil, errors.Internal("Failed to update house", err)
	}

	return house, nil
}

// ReplaceImages swaps the house's stored images for freshly uploaded ones.
// Old objects are deleted best-effort after the listing is updated.
func (uc *HouseUseCase) ReplaceImages(ctx context.Context, callerID, houseID string, main *HouseImage, subs []*HouseImage) (*entity.House, error) {
	house, err := uc.authorizeOwner(ctx, callerID, houseID)
	if err != nil {
		return nil, err
	}

	oldMain := house.MainImage
	oldSubs := house.SubImages

	if main != nil {
		url, err := uc.fileService.UploadFile(ctx, main.Reader, main.ContentType, "houses", true)
		if err != nil {
			return nil, errors.Internal("Failed to upload main image", err)
		}
		house.MainImage = url
	}

	if len(subs) > 0 {
		urls := make([]string, 0, len(subs))
		for _, img := range subs {
			url, err := uc.fileService.UploadFile(ctx, img.Reader, img.ContentType, "houses", true)
			if err != nil {
				return nil, errors.Internal("Failed to upload image", err)
			}
			urls = append(urls, url)
		}
		house.SubImages = urls
	}

	house.UpdatedAt = time.Now()
	if err := uc.houseRepo.Update(ctx, house); err != nil {
		return nil, errors.Internal("Failed to update house", err)
	}

	if main != nil && oldMain != "" {
		if err := uc.fileService.DeleteFile(ctx, oldMain); err != nil {
			log.Printf("ReplaceImages: failed to delete old main image for house %s: %v", houseID, err)
		}
	}
	if len(subs) > 0 {
		for _, url := range oldSubs {
			if err := uc.fileService.DeleteFile(ctx, url); err != nil {
				log.Printf("ReplaceImages: failed to delete old image for house %s: %v", houseID, err)
			}
		}
	}

	return house, nil
}

func (uc *HouseUseCase) DeleteHouse(ctx context.Context, callerID, houseID string) error {
	house, err := uc.authorizeOwner(ctx, callerID, houseID)
	if err != nil {
		return err
	}

	if err := uc.houseRepo.Delete(ctx, house.ID); err != nil {
		return errors.Internal("Failed to delete house", err)
	}

	if house.MainImage != "" {
		if err := uc.fileService.DeleteFile(ctx, house.MainImage); err != nil {
			log.Printf("DeleteHouse: failed to delete main image for house %s: %v", houseID, err)
		}
	}
	for _, url := range house.SubImages {
		if err := uc.fileService.DeleteFile(ctx, url); err != nil {
			log.Printf("DeleteHouse: failed to delete image for house %s: %v", houseID, err)
		}
	}

	return nil
}

// authorizeOwner loads the house and checks the caller is its owner or an
// admin.
func (uc *HouseUseCase) authorizeOwner(ctx context.Context, callerID, houseID string) (*entity.House, error) {
	if !utils.ValidID(houseID) {
		return nil, errors.BadRequest("Invalid house id", nil)
	}

	house, err := uc.houseRepo.GetByID(ctx, houseID)
	if err != nil {
		return nil, err
	}

	if house.OwnerID == callerID {
		return house, nil
	}

	caller, err := uc.userRepo.GetByID(ctx, callerID)
	if err == nil && caller.Role == entity.RoleAdmin {
		return house, nil
	}

	return nil, errors.Forbidden("Only the owner can modify this listing", nil)
}
