package router

import (
	"github.com/labstack/echo/v4"

	"homerent/internal/adapter/api/handler"
	"homerent/internal/adapter/api/middleware"
)

// SetupChatRouter wires the chat and message endpoints. Handlers are passed
// in directly because they carry per-instance state (broadcaster wiring).
func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, messageHandler *handler.MessageHandler, authMiddleware *middleware.AuthMiddleware) {
	chats := e.Group("/v1/chats")
	chats.Use(authMiddleware.Authenticate)

	chats.GET("", chatHandler.GetChats)      // ?user=<id> for a single chat
	chats.DELETE("", chatHandler.DeleteChat) // ?user=<id>

	messages := e.Group("/v1/messages")
	messages.Use(authMiddleware.Authenticate)

	messages.POST("", messageHandler.SendMessage)
	messages.PATCH("/:id", messageHandler.EditMessage)
	messages.DELETE("/:id", messageHandler.DeleteMessage)
}
