// file: internals/features/gym/enrollments/route/user_route.go
package route

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	enrollctl "gymku_backend/internals/features/gym/enrollments/controller"
	memberService "gymku_backend/internals/features/gym/members/service"
	"gymku_backend/internals/helpers/dbtime"
)

// EnrollmentUserRoutes: listing + booking untuk member login (/api/u).
// bookingLimiter dipasang hanya di enroll/cancel.
func EnrollmentUserRoutes(user fiber.Router, db *gorm.DB, v *validator.Validate, clock dbtime.Clock, loc *time.Location, bookingLimiter fiber.Handler) {
	ctl := enrollctl.New(db, v, clock, loc, memberService.MembershipEligibility{})

	user.Get("/classes/:id/sessions", ctl.ListClassSessions)
	user.Get("/my/enrollments", ctl.MyEnrollments)
	user.Get("/members/:id/enrollments", ctl.MemberEnrollments)

	sess := user.Group("/sessions")
	if bookingLimiter != nil {
		sess.Post("/:id/enroll", bookingLimiter, ctl.Enroll)
		sess.Post("/:id/cancel", bookingLimiter, ctl.Cancel)
		return
	}
	sess.Post("/:id/enroll", ctl.Enroll)
	sess.Post("/:id/cancel", ctl.Cancel)
}

// EnrollmentAdminRoutes: absensi oleh staff (/api/a)
func EnrollmentAdminRoutes(admin fiber.Router, db *gorm.DB, v *validator.Validate, clock dbtime.Clock, loc *time.Location) {
	ctl := enrollctl.New(db, v, clock, loc, memberService.MembershipEligibility{})

	admin.Post("/sessions/:id/attendance", ctl.MarkAttendance)
}

// EnrollmentPublicRoutes: halaman booking publik tanpa login (/api/public)
func EnrollmentPublicRoutes(public fiber.Router, db *gorm.DB, clock dbtime.Clock, loc *time.Location) {
	ctl := enrollctl.New(db, nil, clock, loc, nil)

	public.Get("/gyms/:gym_id/classes/:id/sessions", ctl.PublicListClassSessions)
}
