// file: internals/route/index.go
package routes

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoute "discens_backend/internals/features/auth/route"
	schoolRoute "discens_backend/internals/features/schools/route"
	userRoute "discens_backend/internals/features/users/route"
	authMw "discens_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	jwt := authMw.AuthJWTOpts{
		Secret:              os.Getenv("JWT_SECRET"),
		AllowCookieFallback: true,
	}

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db)

	app.Get("/api/uptime", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"uptime": time.Since(startTime).String()})
	})

	// ===================== SESSION (any authenticated user) =====================
	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u", authMw.AuthJWT(jwt))
	authRoute.AuthUserRoutes(user, db)

	// ===================== ADMIN (per school) =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a",
		authMw.AuthJWT(jwt),
		authMw.RequireAdmin(),
	)
	userRoute.UserAdminRoutes(admin, db)
	schoolRoute.SchoolAdminRoutes(admin, db)

	// ===================== SUPERADMIN (global) =====================
	log.Println("[INFO] Setting up SUPERADMIN group...")
	superadmin := app.Group("/api/o",
		authMw.AuthJWT(jwt),
		authMw.RequireSuperadmin(),
	)
	schoolRoute.SchoolSuperadminRoutes(superadmin, db)
	userRoute.UserAdminRoutes(superadmin, db)
}
