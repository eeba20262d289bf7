package usecase

import (
	"context"
	"log"

	"homerent/internal/domain/entity"
	"homerent/internal/domain/repository"
	"homerent/pkg/errors"
	"homerent/pkg/utils"
)

type ChatUseCase struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
}

func NewChatUseCase(chatRepo repository.ChatRepository, userRepo repository.UserRepository) *ChatUseCase {
	return &ChatUseCase{
		chatRepo: chatRepo,
		userRepo: userRepo,
	}
}

// ChatResponse is a chat hydrated with its messages and the counterpart's
// public profile.
type ChatResponse struct {
	*entity.Chat
	Messages  []*entity.Message   `json:"message_list"`
	OtherUser *entity.UserSummary `json:"other_user,omitempty"`
}

// FindChat returns the caller's chat with the given user, hydrated with its
// messages. When no chat exists yet an empty placeholder of the same shape
// comes back, so clients always render the same schema.
func (uc *ChatUseCase) FindChat(ctx context.Context, callerID, otherID string) (*ChatResponse, error) {
	other, err := uc.validateCounterpart(ctx, callerID, otherID, false)
	if err != nil {
		return nil, err
	}

	chat, err := uc.chatRepo.GetByParticipants(ctx, callerID, otherID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return &ChatResponse{
				Chat: &entity.Chat{
					Participants: []string{callerID, otherID},
					MessageIDs:   []string{},
				},
				Messages:  []*entity.Message{},
				OtherUser: other.Summary(),
			}, nil
		}
		log.Printf("FindChat Error: failed to look up chat for %s/%s: %v", callerID, otherID, err)
		return nil, err
	}

	messages, err := uc.chatRepo.ListMessagesByChat(ctx, chat.ID)
	if err != nil {
		log.Printf("FindChat Error: failed to load messages for chat %s: %v", chat.ID, err)
		return nil, errors.Internal("Failed to load chat messages", err)
	}

	return &ChatResponse{
		Chat:      chat,
		Messages:  messages,
		OtherUser: other.Summary(),
	}, nil
}

// ListChats returns every chat the caller participates in, most recently
// updated first.
func (uc *ChatUseCase) ListChats(ctx context.Context, callerID string) ([]*ChatResponse, error) {
	chats, err := uc.chatRepo.ListByUserID(ctx, callerID)
	if err != nil {
		log.Printf("ListChats Error: failed to list chats for %s: %v", callerID, err)
		return nil, errors.Internal("Failed to list chats", err)
	}

	responses := make([]*ChatResponse, 0, len(chats))
	for _, chat := range chats {
		resp := &ChatResponse{Chat: chat, Messages: []*entity.Message{}}
		if otherID := chat.OtherParticipant(callerID); otherID != "" {
			if other, err := uc.userRepo.GetByID(ctx, otherID); err == nil {
				resp.OtherUser = other.Summary()
			}
		}
		responses = append(responses, resp)
	}

	return responses, nil
}

// DeleteChat removes the caller's chat with the given user along with every
// message in it.
func (uc *ChatUseCase) DeleteChat(ctx context.Context, callerID, otherID string) error {
	if _, err := uc.validateCounterpart(ctx, callerID, otherID, false); err != nil {
		return err
	}

	chat, err := uc.chatRepo.GetByParticipants(ctx, callerID, otherID)
	if err != nil {
		return err
	}

	if err := uc.chatRepo.DeleteWithMessages(ctx, chat); err != nil {
		log.Printf("DeleteChat Error: failed to delete chat %s: %v", chat.ID, err)
		return errors.Internal("Failed to delete chat", err)
	}

	log.Printf("DeleteChat: chat %s between %s and %s removed with %d messages",
		chat.ID, callerID, otherID, len(chat.MessageIDs))
	return nil
}

// validateCounterpart runs the shared id checks: well-formed id, not the
// caller themselves, and an existing user. strictID reports malformed ids as
// 422 instead of 400, matching the message endpoints.
func (uc *ChatUseCase) validateCounterpart(ctx context.Context, callerID, otherID string, strictID bool) (*entity.User, error) {
	if !utils.ValidID(otherID) {
		if strictID {
			return nil, errors.UnprocessableEntity("Invalid user id", nil)
		}
		return nil, errors.BadRequest("Invalid user id", nil)
	}

	if otherID == callerID {
		return nil, errors.Conflict("Cannot open a chat with yourself")
	}

	other, err := uc.userRepo.GetByID(ctx, otherID)
	if err != nil {
		return nil, errors.NotFound("User", err)
	}

	return other, nil
}
