// internals/features/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "discens_backend/internals/features/auth/controller"
	"discens_backend/internals/middlewares"
)

/*
Public auth routes. Login gets its own, tighter rate limit.
Mount: AuthRoutes(app, db)
*/
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctl := authController.NewAuthController(db)

	auth := app.Group("/api/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), ctl.Login) // POST /api/auth/login
	auth.Post("/refresh", ctl.RefreshToken)                        // POST /api/auth/refresh (refresh cookie)
	auth.Post("/logout", ctl.Logout)                               // POST /api/auth/logout
}

/*
Session routes: require a valid access token.
Mount: AuthUserRoutes(app.Group("/api/u"), db)
*/
func AuthUserRoutes(r fiber.Router, db *gorm.DB) {
	ctl := authController.NewAuthController(db)

	r.Get("/me", ctl.Me)                    // GET  /api/u/me
	r.Get("/me/roles", ctl.MyRoles)         // GET  /api/u/me/roles
	r.Get("/me/navigation", ctl.Navigation) // GET /api/u/me/navigation
	r.Post("/select-role", ctl.SelectRole)  // POST /api/u/select-role
}
