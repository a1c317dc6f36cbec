// file: internals/features/gym/class_sessions/route/admin_route.go
package route

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sessctl "gymku_backend/internals/features/gym/class_sessions/controller"
	"gymku_backend/internals/helpers/dbtime"
)

// ClassSessionAdminRoutes: template sesi mingguan (staff/owner)
func ClassSessionAdminRoutes(admin fiber.Router, db *gorm.DB, v *validator.Validate, clock dbtime.Clock, loc *time.Location) {
	ctl := sessctl.New(db, v, clock, loc)

	g := admin.Group("/sessions")
	g.Post("/", ctl.Create)
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
