package entity

import "time"

type House struct {
	ID          string    `json:"id" firestore:"id"`
	Title       string    `json:"title" firestore:"title"`
	Location    string    `json:"location" firestore:"location"`
	Description string    `json:"description" firestore:"description"`
	Price       float64   `json:"price" firestore:"price"`
	ForSale     bool      `json:"for_sale" firestore:"forSale"`
	OwnerID     string    `json:"owner_id" firestore:"ownerId"`
	MainImage   string    `json:"main_image" firestore:"mainImage"`
	SubImages   []string  `json:"sub_images,omitempty" firestore:"subImages,omitempty"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}
