// internals/features/users/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "discens_backend/internals/features/users/controller"
)

/*
Admin routes: managed-user provisioning, scoped to the session school.
Mount: UserAdminRoutes(app.Group("/api/a"), db)
*/
func UserAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := userController.NewUserController(db)

	users := r.Group("/users")
	users.Get("/", ctl.ListUsers)   // GET    /api/a/users
	users.Get("/:id", ctl.GetUser)  // GET    /api/a/users/:id
	users.Post("/", ctl.CreateUser) // POST   /api/a/users
	users.Put("/:id", ctl.EditUser) // PUT    /api/a/users/:id
}
