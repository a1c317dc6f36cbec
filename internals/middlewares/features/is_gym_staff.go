package middleware

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"gymku_backend/internals/constants"
	helper "gymku_backend/internals/helpers/auth"
)

// RequireStaff: hanya owner/staff gym (dipasang setelah AuthJWT).
func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := helper.GetGymID(c); err != nil {
			return err
		}
		if !helper.IsStaff(c) {
			log.Println("🔐 [MIDDLEWARE] RequireStaff ditolak | Path:", c.Path(), "| Method:", c.Method())
			return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorStaff("endpoint admin"))
		}
		return c.Next()
	}
}
