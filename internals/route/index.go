// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	gymMiddleware "gymku_backend/internals/middlewares/auth_gym"
	featuresMiddleware "gymku_backend/internals/middlewares/features"
	routeDetails "gymku_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, jwtSecret string, d routeDetails.Deps) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	authOpts := gymMiddleware.AuthJWTOpts{
		Secret:              jwtSecret,
		AllowCookieFallback: true,
	}
	if d.Blacklist != nil {
		authOpts.BlacklistChecker = d.Blacklist.Checker()
	}

	// ===================== GROUPS =====================

	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")

	log.Println("[INFO] Setting up PRIVATE (user) group...")
	user := app.Group("/api/u", gymMiddleware.AuthJWT(authOpts))

	log.Println("[INFO] Setting up ADMIN group (Auth + RequireStaff)...")
	admin := app.Group("/api/a",
		gymMiddleware.AuthJWT(authOpts),
		featuresMiddleware.RequireStaff(),
	)

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting Gym routes...")
	routeDetails.GymPublicRoutes(public, db, d)
	routeDetails.GymUserRoutes(user, db, d)
	routeDetails.GymAdminRoutes(admin, db, d)
}
