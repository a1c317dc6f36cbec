package details

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sessionRoute "gymku_backend/internals/features/gym/class_sessions/route"
	classRoute "gymku_backend/internals/features/gym/classes/route"
	enrollRoute "gymku_backend/internals/features/gym/enrollments/route"
	memberRoute "gymku_backend/internals/features/gym/members/route"
	authRoute "gymku_backend/internals/features/users/auth/route"
	authService "gymku_backend/internals/features/users/auth/service"
	"gymku_backend/internals/helpers/dbtime"
	rateLimiter "gymku_backend/internals/middlewares"
)

// Deps: dependency bersama untuk semua route gym.
type Deps struct {
	Validate  *validator.Validate
	Clock     dbtime.Clock
	Location  *time.Location // zona default gym
	Blacklist *authService.BlacklistService

	BookingLimitMax    int
	BookingLimitWindow time.Duration
}

// /api/public
func GymPublicRoutes(public fiber.Router, db *gorm.DB, d Deps) {
	enrollRoute.EnrollmentPublicRoutes(public, db, d.Clock, d.Location)
}

// /api/u (AuthJWT)
func GymUserRoutes(user fiber.Router, db *gorm.DB, d Deps) {
	booking := rateLimiter.BookingRateLimiter(d.BookingLimitMax, d.BookingLimitWindow)
	enrollRoute.EnrollmentUserRoutes(user, db, d.Validate, d.Clock, d.Location, booking)

	if d.Blacklist != nil {
		authRoute.AuthUserRoutes(user, d.Blacklist)
	}
}

// /api/a (AuthJWT + RequireStaff)
func GymAdminRoutes(admin fiber.Router, db *gorm.DB, d Deps) {
	classRoute.GymClassAdminRoutes(admin, db, d.Validate, d.Location)
	sessionRoute.ClassSessionAdminRoutes(admin, db, d.Validate, d.Clock, d.Location)
	enrollRoute.EnrollmentAdminRoutes(admin, db, d.Validate, d.Clock, d.Location)
	memberRoute.GymMemberAdminRoutes(admin, db, d.Validate, d.Location)
}
