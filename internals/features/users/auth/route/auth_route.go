package route

import (
	"github.com/gofiber/fiber/v2"

	"gymku_backend/internals/features/users/auth/controller"
	"gymku_backend/internals/features/users/auth/service"
)

// AuthUserRoutes: revoke token (group /api/u sudah lewat AuthJWT)
func AuthUserRoutes(user fiber.Router, bl *service.BlacklistService) {
	ctl := controller.NewAuthController(bl)

	user.Post("/auth/logout", ctl.Logout)
}
