package handler

import (
	"github.com/labstack/echo/v4"

	"homerent/internal/usecase"
	"homerent/pkg/errors"
	"homerent/pkg/response"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

// GetChats returns either the caller's chat with ?user=<id>, or every chat
// the caller participates in when the parameter is absent.
func (h *ChatHandler) GetChats(c echo.Context) error {
	uid := c.Get("uid").(string)

	if otherID := c.QueryParam("user"); otherID != "" {
		chat, err := h.chatUseCase.FindChat(c.Request().Context(), uid, otherID)
		if err != nil {
			return response.Error(c, err)
		}
		return response.Success(c, chat)
	}

	chats, err := h.chatUseCase.ListChats(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, chats)
}

func (h *ChatHandler) DeleteChat(c echo.Context) error {
	uid := c.Get("uid").(string)

	otherID := c.QueryParam("user")
	if otherID == "" {
		return response.Error(c, errors.BadRequest("Query parameter 'user' is required", nil))
	}

	if err := h.chatUseCase.DeleteChat(c.Request().Context(), uid, otherID); err != nil {
		return response.Error(c, err)
	}

	return response.NoContent(c)
}
