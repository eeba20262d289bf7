package router

import (
	"github.com/labstack/echo/v4"

	"homerent/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	SetupAuthRouter(e)
	SetupUserRouter(e, authMiddleware, adminMiddleware)
	SetupHouseRouter(e, authMiddleware)
	SetupCoinRouter(e, authMiddleware)
	SetupHealthRouter(e)
}
