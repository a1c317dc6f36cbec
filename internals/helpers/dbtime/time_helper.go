package dbtime

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Nama locals mengikuti yang di-set middleware AuthJWT
const (
	LocGymTimezone = "gym_timezone" // string, misal "Asia/Jakarta"
	LocGymLoc      = "gym_loc"      // *time.Location
)

// GetGymLocation:
// 1) c.Locals("gym_loc") kalau sudah di-cache
// 2) c.Locals("gym_timezone") (claim token) → LoadLocation
// 3) fallback (timezone default gym dari config)
// Header / query dari client tidak pernah dipakai: jam gym menentukan
// booking window.
func GetGymLocation(c *fiber.Ctx, fallback *time.Location) *time.Location {
	if fallback == nil {
		fallback = time.UTC
	}
	if c == nil {
		return fallback
	}

	if v := c.Locals(LocGymLoc); v != nil {
		if loc, ok := v.(*time.Location); ok && loc != nil {
			return loc
		}
	}

	if v, ok := c.Locals(LocGymTimezone).(string); ok {
		if s := strings.TrimSpace(v); s != "" {
			if loc, err := time.LoadLocation(s); err == nil {
				c.Locals(LocGymLoc, loc)
				return loc
			}
		}
	}

	return fallback
}
