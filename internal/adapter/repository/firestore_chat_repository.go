package repository

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"homerent/internal/domain/entity"
	"homerent/internal/domain/repository"
	apperrors "homerent/pkg/errors"
	"homerent/pkg/logger"
)

var errInsufficientCoins = errors.New("insufficient coin balance")

type firestoreChatRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatRepository {
	return &firestoreChatRepository{
		client: client,
	}
}

func (r *firestoreChatRepository) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	doc, err := r.client.Collection("chats").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, apperrors.NotFound("Chat", err)
		}
		return nil, apperrors.Internal("Failed to get chat", err)
	}

	var chat entity.Chat
	if err := doc.DataTo(&chat); err != nil {
		return nil, apperrors.Internal("Failed to parse chat data", err)
	}

	return &chat, nil
}

func (r *firestoreChatRepository) GetByParticipants(ctx context.Context, userA, userB string) (*entity.Chat, error) {
	pairKey := entity.ChatPairKey(userA, userB)

	query := r.client.Collection("chats").Where("pairKey", "==", pairKey).Limit(1)
	iter := query.Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, apperrors.NotFound("Chat", nil)
		}
		return nil, apperrors.Internal("Failed to query chat by participants", err)
	}

	var chat entity.Chat
	if err := doc.DataTo(&chat); err != nil {
		return nil, apperrors.Internal("Failed to parse chat data", err)
	}

	return &chat, nil
}

func (r *firestoreChatRepository) ListByUserID(ctx context.Context, userID string) ([]*entity.Chat, error) {
	query := r.client.Collection("chats").Where("participants", "array-contains", userID).OrderBy("updatedAt", firestore.Desc)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while fetching chats for user %s: %v", userID, err)
		return nil, apperrors.Internal("Failed to fetch chats", err)
	}

	chats := make([]*entity.Chat, 0, len(docs))
	for _, doc := range docs {
		var chat entity.Chat
		if err := doc.DataTo(&chat); err != nil {
			logger.Warn("Skipping malformed chat document %s: %v", doc.Ref.ID, err)
			continue
		}
		chats = append(chats, &chat)
	}

	return chats, nil
}

func (r *firestoreChatRepository) DeleteWithMessages(ctx context.Context, chat *entity.Chat) error {
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Delete(r.client.Collection("chats").Doc(chat.ID)); err != nil {
			return err
		}
		for _, messageID := range chat.MessageIDs {
			if err := tx.Delete(r.client.Collection("messages").Doc(messageID)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.Internal("Failed to delete chat", err)
	}

	return nil
}

func (r *firestoreChatRepository) GetMessageByID(ctx context.Context, messageID string) (*entity.Message, error) {
	doc, err := r.client.Collection("messages").Doc(messageID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, apperrors.NotFound("Message", err)
		}
		return nil, apperrors.Internal("Failed to get message", err)
	}

	var message entity.Message
	if err := doc.DataTo(&message); err != nil {
		return nil, apperrors.Internal("Failed to parse message data", err)
	}

	return &message, nil
}

func (r *firestoreChatRepository) ListMessagesByChat(ctx context.Context, chatID string) ([]*entity.Message, error) {
	query := r.client.Collection("messages").Where("chatId", "==", chatID).OrderBy("createdAt", firestore.Asc)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Firestore error while fetching messages for chat %s: %v", chatID, err)
		return nil, apperrors.Internal("Failed to fetch messages", err)
	}

	messages := make([]*entity.Message, 0, len(docs))
	for _, doc := range docs {
		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			logger.Warn("Skipping malformed message document %s: %v", doc.Ref.ID, err)
			continue
		}
		messages = append(messages, &message)
	}

	return messages, nil
}

func (r *firestoreChatRepository) AppendMessage(ctx context.Context, senderID, recipientID string, message *entity.Message, coinCost int64) (*entity.Chat, bool, error) {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	message.CreatedAt = time.Now()

	pairKey := entity.ChatPairKey(senderID, recipientID)

	var chat *entity.Chat
	var created bool

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		chat = nil
		created = false

		// All reads must precede writes inside a Firestore transaction.
		chatQuery := r.client.Collection("chats").Where("pairKey", "==", pairKey).Limit(1)
		chatDocs, err := tx.Documents(chatQuery).GetAll()
		if err != nil {
			return err
		}

		senderRef := r.client.Collection("users").Doc(senderID)
		senderDoc, err := tx.Get(senderRef)
		if err != nil {
			return err
		}
		var sender entity.User
		if err := senderDoc.DataTo(&sender); err != nil {
			return err
		}
		if coinCost > 0 && sender.Coins < coinCost {
			return errInsufficientCoins
		}

		now := message.CreatedAt
		if len(chatDocs) == 0 {
			chat = &entity.Chat{
				ID:           uuid.New().String(),
				PairKey:      pairKey,
				Participants: []string{senderID, recipientID},
				MessageIDs:   []string{},
				CreatedAt:    now,
			}
			created = true
		} else {
			chat = &entity.Chat{}
			if err := chatDocs[0].DataTo(chat); err != nil {
				return err
			}
		}

		message.ChatID = chat.ID
		chat.MessageIDs = append(chat.MessageIDs, message.ID)
		chat.LastMessageID = message.ID
		chat.UpdatedAt = now

		if coinCost > 0 {
			if err := tx.Update(senderRef, []firestore.Update{
				{Path: "coins", Value: sender.Coins - coinCost},
				{Path: "updatedAt", Value: now},
			}); err != nil {
				return err
			}
		}
		if err := tx.Set(r.client.Collection("messages").Doc(message.ID), message); err != nil {
			return err
		}
		return tx.Set(r.client.Collection("chats").Doc(chat.ID), chat)
	})

	if err != nil {
		if errors.Is(err, errInsufficientCoins) {
			return nil, false, apperrors.UnprocessableEntity("Insufficient coin balance", nil)
		}
		if status.Code(err) == codes.NotFound {
			return nil, false, apperrors.NotFound("Sender", err)
		}
		logger.Error("AppendMessage transaction failed for pair %s: %v", pairKey, err)
		return nil, false, apperrors.Internal("Failed to save message", err)
	}

	return chat, created, nil
}

func (r *firestoreChatRepository) UpdateMessage(ctx context.Context, message *entity.Message) error {
	_, err := r.client.Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return apperrors.Internal("Failed to update message", err)
	}
	return nil
}

func (r *firestoreChatRepository) RemoveMessage(ctx context.Context, message *entity.Message) (*entity.Chat, error) {
	var updated *entity.Chat

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		messageRef := r.client.Collection("messages").Doc(message.ID)
		if _, err := tx.Get(messageRef); err != nil {
			return err
		}

		chatRef := r.client.Collection("chats").Doc(message.ChatID)
		chatDoc, err := tx.Get(chatRef)
		if err != nil {
			return err
		}
		var chat entity.Chat
		if err := chatDoc.DataTo(&chat); err != nil {
			return err
		}

		remaining := make([]string, 0, len(chat.MessageIDs))
		for _, id := range chat.MessageIDs {
			if id != message.ID {
				remaining = append(remaining, id)
			}
		}
		chat.MessageIDs = remaining

		// The new last message is the most recent remaining one by creation
		// time. Two documents cover the case where the newest is the one
		// being deleted.
		chat.LastMessageID = ""
		if len(remaining) > 0 {
			latestQuery := r.client.Collection("messages").
				Where("chatId", "==", chat.ID).
				OrderBy("createdAt", firestore.Desc).
				Limit(2)
			latestDocs, err := tx.Documents(latestQuery).GetAll()
			if err != nil {
				return err
			}
			for _, doc := range latestDocs {
				var m entity.Message
				if err := doc.DataTo(&m); err != nil {
					continue
				}
				if m.ID != message.ID {
					chat.LastMessageID = m.ID
					break
				}
			}
		}
		chat.UpdatedAt = time.Now()

		if err := tx.Delete(messageRef); err != nil {
			return err
		}
		if err := tx.Set(chatRef, &chat); err != nil {
			return err
		}
		updated = &chat
		return nil
	})

	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, apperrors.NotFound("Message", err)
		}
		logger.Error("RemoveMessage transaction failed for message %s: %v", message.ID, err)
		return nil, apperrors.Internal("Failed to delete message", err)
	}

	return updated, nil
}
