package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"gymku_backend/internals/features/users/auth/service"
	helper "gymku_backend/internals/helpers"
	helperAuth "gymku_backend/internals/helpers/auth"
)

type AuthController struct {
	Blacklist *service.BlacklistService
}

func NewAuthController(bl *service.BlacklistService) *AuthController {
	return &AuthController{Blacklist: bl}
}

// expiry token dari klaim exp; tanpa exp → 24 jam dari sekarang
func tokenExpiry(c *fiber.Ctx, now time.Time) time.Time {
	if claims, ok := c.Locals("jwt_claims").(jwt.MapClaims); ok {
		switch v := claims["exp"].(type) {
		case float64:
			return time.Unix(int64(v), 0)
		case int64:
			return time.Unix(v, 0)
		}
	}
	return now.Add(24 * time.Hour)
}

// POST /api/u/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	raw, _ := c.Locals(helperAuth.LocRawToken).(string)

	if raw != "" {
		exp := tokenExpiry(c, ac.Blacklist.Clock.Now())
		if err := ac.Blacklist.Revoke(c.UserContext(), raw, exp); err != nil {
			log.Printf("[WARN] Failed to blacklist token: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal logout, coba lagi")
		}
	} else {
		log.Println("[INFO] Logout tanpa access token; lanjut clear cookies (idempotent)")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		HTTPOnly: true,
		Secure:   true,
		SameSite: "None",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
	})
	return helper.JsonOK(c, "Logout successful", nil)
}
