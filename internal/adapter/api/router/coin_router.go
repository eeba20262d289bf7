package router

import (
	"github.com/labstack/echo/v4"

	"homerent/internal/adapter/api/handler"
	"homerent/internal/adapter/api/middleware"
)

func SetupCoinRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	coinHandler := handler.GetCoinHandler()

	// The gateway redirects here after checkout, outside any auth session.
	e.GET("/v1/coins/verify", coinHandler.VerifyPayment)

	protected := e.Group("/v1/coins")
	protected.Use(authMiddleware.Authenticate)

	protected.POST("", coinHandler.BuyCoins)
	protected.GET("/balance", coinHandler.GetBalance)
}
