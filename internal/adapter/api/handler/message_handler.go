package handler

import (
	"github.com/labstack/echo/v4"

	"homerent/internal/usecase"
	"homerent/pkg/errors"
	"homerent/pkg/response"
)

type MessageHandler struct {
	messageUseCase *usecase.MessageUseCase
}

func NewMessageHandler(messageUseCase *usecase.MessageUseCase) *MessageHandler {
	return &MessageHandler{
		messageUseCase: messageUseCase,
	}
}

func (h *MessageHandler) SendMessage(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req struct {
		RecipientID string `json:"recipient_id"`
		Content     string `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	message, err := h.messageUseCase.SendMessage(c.Request().Context(), uid, usecase.SendMessageInput{
		RecipientID: req.RecipientID,
		Content:     req.Content,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *MessageHandler) EditMessage(c echo.Context) error {
	uid := c.Get("uid").(string)
	messageID := c.Param("id")

	var req struct {
		Content string `json:"content"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}

	message, err := h.messageUseCase.EditMessage(c.Request().Context(), uid, messageID, req.Content)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, message)
}

func (h *MessageHandler) DeleteMessage(c echo.Context) error {
	uid := c.Get("uid").(string)
	messageID := c.Param("id")

	message, err := h.messageUseCase.DeleteMessage(c.Request().Context(), uid, messageID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, message)
}
