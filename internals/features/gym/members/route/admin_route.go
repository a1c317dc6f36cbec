// file: internals/features/gym/members/route/admin_route.go
package route

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	memberctl "gymku_backend/internals/features/gym/members/controller"
)

func GymMemberAdminRoutes(admin fiber.Router, db *gorm.DB, v *validator.Validate, loc *time.Location) {
	ctl := memberctl.New(db, v, loc)

	g := admin.Group("/members")
	g.Post("/", ctl.Create)
	g.Get("/:id", ctl.Detail)
}
