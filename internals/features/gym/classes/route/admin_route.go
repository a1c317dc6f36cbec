// file: internals/features/gym/classes/route/admin_route.go
package route

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classctl "gymku_backend/internals/features/gym/classes/controller"
)

// GymClassAdminRoutes: CRUD kelas (staff/owner)
func GymClassAdminRoutes(admin fiber.Router, db *gorm.DB, v *validator.Validate, loc *time.Location) {
	ctl := classctl.New(db, v, loc)

	g := admin.Group("/classes")
	g.Post("/", ctl.Create)
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Detail)
	g.Patch("/:id", ctl.Patch)
	g.Delete("/:id", ctl.Delete)
}
