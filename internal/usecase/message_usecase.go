package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"homerent/internal/domain/entity"
	"homerent/internal/domain/repository"
	"homerent/internal/infrastructure/ratelimit"
	"homerent/pkg/errors"
	"homerent/pkg/utils"
)

type MessageUseCase struct {
	chatRepo    repository.ChatRepository
	userRepo    repository.UserRepository
	broadcaster Broadcaster
	rateLimiter *ratelimit.RateLimiter
	coinCost    int64
}

func NewMessageUseCase(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	broadcaster Broadcaster,
	coinCost int64,
) *MessageUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &MessageUseCase{
		chatRepo:    chatRepo,
		userRepo:    userRepo,
		broadcaster: broadcaster,
		rateLimiter: rateLimiter,
		coinCost:    coinCost,
	}
}

type SendMessageInput struct {
	RecipientID string
	Content     string
}

// MessageEvent is the payload fanned out to channel subscribers. ChatID is
// only set when the message opened a brand-new chat, so clients know to
// subscribe before more traffic arrives.
type MessageEvent struct {
	Message *entity.Message `json:"message"`
	ChatID  string          `json:"new_chat_id,omitempty"`
}

// SendMessage creates a message toward the recipient, opening the pair's
// chat if it does not exist yet. The sender's coin balance is debited the
// per-message cost inside the same transaction that stores the message.
func (uc *MessageUseCase) SendMessage(ctx context.Context, senderID string, input SendMessageInput) (*entity.Message, error) {
	allowed, waitTime := uc.rateLimiter.Allow(senderID, "send_message")
	if !allowed {
		log.Printf("SendMessage Rate Limited: user %s must wait %v", senderID, waitTime)
		return nil, errors.TooManyRequests(fmt.Sprintf("Rate limit exceeded. Try again in %s", waitTime.Round(time.Second)))
	}

	if strings.TrimSpace(input.Content) == "" {
		return nil, errors.BadRequest("Message content is required", nil)
	}

	if !utils.ValidID(input.RecipientID) {
		return nil, errors.UnprocessableEntity("Invalid recipient id", nil)
	}

	if input.RecipientID == senderID {
		return nil, errors.Conflict("Cannot send a message to yourself")
	}

	if _, err := uc.userRepo.GetByID(ctx, input.RecipientID); err != nil {
		return nil, errors.NotFound("Recipient", err)
	}

	message := &entity.Message{
		ID:        uuid.New().String(),
		SenderID:  senderID,
		Content:   input.Content,
		CreatedAt: time.Now(),
	}

	chat, created, err := uc.chatRepo.AppendMessage(ctx, senderID, input.RecipientID, message, uc.coinCost)
	if err != nil {
		return nil, err
	}

	event := MessageEvent{Message: message}
	if created {
		event.ChatID = chat.ID
		log.Printf("SendMessage: opened new chat %s between %s and %s", chat.ID, senderID, input.RecipientID)
	}
	uc.notify("messageAdded", senderID, input.RecipientID, event)

	return message, nil
}

// EditMessage replaces the content of the author's own message.
func (uc *MessageUseCase) EditMessage(ctx context.Context, editorID, messageID, content string) (*entity.Message, error) {
	if !utils.ValidID(messageID) {
		return nil, errors.BadRequest("Invalid message id", nil)
	}

	if strings.TrimSpace(content) == "" {
		return nil, errors.BadRequest("Message content is required", nil)
	}

	message, err := uc.chatRepo.GetMessageByID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	if message.SenderID != editorID {
		return nil, errors.Forbidden("Only the author can edit a message", nil)
	}

	message.Content = content
	if err := uc.chatRepo.UpdateMessage(ctx, message); err != nil {
		log.Printf("EditMessage Error: failed to update message %s: %v", messageID, err)
		return nil, err
	}

	chat, err := uc.chatRepo.GetByID(ctx, message.ChatID)
	if err == nil {
		other := chat.OtherParticipant(editorID)
		uc.notify("messageUpdated", editorID, other, MessageEvent{Message: message})
	}

	return message, nil
}

// DeleteMessage removes the author's own message and repairs the parent
// chat's last-message pointer.
func (uc *MessageUseCase) DeleteMessage(ctx context.Context, requesterID, messageID string) (*entity.Message, error) {
	if !utils.ValidID(messageID) {
		return nil, errors.UnprocessableEntity("Invalid message id", nil)
	}

	message, err := uc.chatRepo.GetMessageByID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	if message.SenderID != requesterID {
		return nil, errors.Forbidden("Only the author can delete a message", nil)
	}

	chat, err := uc.chatRepo.RemoveMessage(ctx, message)
	if err != nil {
		log.Printf("DeleteMessage Error: failed to remove message %s: %v", messageID, err)
		return nil, err
	}

	other := chat.OtherParticipant(requesterID)
	uc.notify("messageDeleted", requesterID, other, MessageEvent{Message: message})

	return message, nil
}

// notify fans the event out on the pair's canonical channel. Fire and
// forget; subscribers that are offline simply miss it.
func (uc *MessageUseCase) notify(event, userA, userB string, payload MessageEvent) {
	if uc.broadcaster == nil {
		return
	}
	channel := event + "-" + entity.ChatPairKey(userA, userB)
	uc.broadcaster.Broadcast(channel, payload)
}
