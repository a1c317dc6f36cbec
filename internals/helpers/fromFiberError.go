package helper

import (
	"github.com/gofiber/fiber/v2"
)

// FromFiberError: ErrorHandler global Fiber. Error yang lolos dari handler /
// middleware (mis. 401 dari AuthJWT, 429 limiter) dirender dengan shape
// yang sama seperti JsonAppError.
func FromFiberError(c *fiber.Ctx, err error) error {
	return JsonAppError(c, err)
}
