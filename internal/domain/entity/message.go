package entity

import "time"

type Message struct {
	ID       string `json:"id" firestore:"id"`
	ChatID   string `json:"chat_id" firestore:"chatId"`
	SenderID string `json:"sender_id" firestore:"senderId"`
	Content  string `json:"content" firestore:"content"`
	// Seen is reserved for a future read-receipt feature; nothing sets it yet.
	Seen      bool      `json:"seen" firestore:"seen"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
