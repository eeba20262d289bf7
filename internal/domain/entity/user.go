package entity

import "time"

const (
	RoleBuyer  = "Buyer"
	RoleSeller = "Seller"
	RoleAdmin  = "Admin"
)

type User struct {
	ID        string `json:"id" firestore:"id"`
	Email     string `json:"email" firestore:"email"`
	Username  string `json:"username" firestore:"username"`
	Phone     string `json:"phone" firestore:"phone"`
	Bio       string `json:"bio,omitempty" firestore:"bio,omitempty"`
	Role      string `json:"role" firestore:"role"`
	AvatarURL string `json:"avatar_url,omitempty" firestore:"avatarUrl,omitempty"`

	Coins int64 `json:"coins" firestore:"coins"`

	AverageRating float64        `json:"average_rating" firestore:"averageRating"`
	TotalRatings  int            `json:"total_ratings" firestore:"totalRatings"`
	TotalScore    int64          `json:"total_score" firestore:"totalScore"`
	Raters        map[string]int `json:"-" firestore:"raters"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// UserSummary is the participant-facing projection embedded in chat responses.
type UserSummary struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	Role          string  `json:"role"`
	AvatarURL     string  `json:"avatar_url,omitempty"`
	AverageRating float64 `json:"average_rating"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:            u.ID,
		Username:      u.Username,
		Role:          u.Role,
		AvatarURL:     u.AvatarURL,
		AverageRating: u.AverageRating,
	}
}
