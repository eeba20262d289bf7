package entity

import "time"

const (
	CoinOrderPending   = "pending"
	CoinOrderCompleted = "completed"
	CoinOrderFailed    = "failed"
)

// CoinOrder is a coin purchase awaiting confirmation from the payment
// gateway. The order is credited to the user exactly once, when the
// gateway callback verifies.
type CoinOrder struct {
	ID          string     `json:"id" firestore:"id"`
	UserID      string     `json:"user_id" firestore:"userId"`
	Coins       int64      `json:"coins" firestore:"coins"`
	Amount      int64      `json:"amount" firestore:"amount"` // ETB
	TxRef       string     `json:"tx_ref" firestore:"txRef"`
	Status      string     `json:"status" firestore:"status"`
	CreatedAt   time.Time  `json:"created_at" firestore:"createdAt"`
	CompletedAt *time.Time `json:"completed_at,omitempty" firestore:"completedAt,omitempty"`
}
