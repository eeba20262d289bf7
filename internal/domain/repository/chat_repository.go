package repository

import (
	"context"

	"homerent/internal/domain/entity"
)

type ChatRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	GetByParticipants(ctx context.Context, userA, userB string) (*entity.Chat, error)
	ListByUserID(ctx context.Context, userID string) ([]*entity.Chat, error)

	// DeleteWithMessages removes the chat document and every message it
	// references in one transaction.
	DeleteWithMessages(ctx context.Context, chat *entity.Chat) error

	// Message methods
	GetMessageByID(ctx context.Context, messageID string) (*entity.Message, error)
	ListMessagesByChat(ctx context.Context, chatID string) ([]*entity.Message, error)

	// AppendMessage finds or creates the pair's chat, debits the sender the
	// per-message coin cost (floor-checked), creates the message and updates
	// the chat's message list and last-message pointer — all in a single
	// transaction. Reports whether a new chat was created.
	AppendMessage(ctx context.Context, senderID, recipientID string, message *entity.Message, coinCost int64) (*entity.Chat, bool, error)

	UpdateMessage(ctx context.Context, message *entity.Message) error

	// RemoveMessage deletes the message, prunes it from the parent chat's
	// list and recomputes the last-message pointer by creation time, in a
	// single transaction. Returns the updated chat.
	RemoveMessage(ctx context.Context, message *entity.Message) (*entity.Chat, error)
}
