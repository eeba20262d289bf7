package router

import (
	"github.com/labstack/echo/v4"

	"homerent/internal/adapter/api/handler"
	"homerent/internal/adapter/api/middleware"
)

func SetupHouseRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	houseHandler := handler.GetHouseHandler()

	// Browsing is public
	e.GET("/v1/houses", houseHandler.ListHouses)
	e.GET("/v1/houses/:id", houseHandler.GetHouse)

	protected := e.Group("/v1/houses")
	protected.Use(authMiddleware.Authenticate)

	protected.GET("/mine", houseHandler.ListMyHouses)
	protected.POST("", houseHandler.CreateHouse)
	protected.PATCH("/:id", houseHandler.UpdateHouse)
	protected.PUT("/:id/images", houseHandler.ReplaceImages)
	protected.DELETE("/:id", houseHandler.DeleteHouse)
}
