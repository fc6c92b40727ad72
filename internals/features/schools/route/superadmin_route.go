// internals/features/schools/route/superadmin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	schoolController "discens_backend/internals/features/schools/controller"
)

/*
Superadmin routes: the tenant registry itself.
Mount: SchoolSuperadminRoutes(app.Group("/api/o"), db)
*/
func SchoolSuperadminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := schoolController.NewSchoolController(db)

	schools := r.Group("/schools")
	schools.Get("/", ctl.ListSchools)                            // GET    /api/o/schools
	schools.Get("/:id", ctl.GetSchool)                           // GET    /api/o/schools/:id
	schools.Post("/", ctl.CreateSchool)                          // POST   /api/o/schools
	schools.Put("/:id", ctl.UpdateSchool)                        // PUT    /api/o/schools/:id
	schools.Patch("/:id/activate", ctl.SetSchoolActive(true))    // PATCH  /api/o/schools/:id/activate
	schools.Patch("/:id/deactivate", ctl.SetSchoolActive(false)) // PATCH  /api/o/schools/:id/deactivate
}
