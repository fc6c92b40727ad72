// internals/features/schools/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	schoolController "discens_backend/internals/features/schools/controller"
)

/*
Admin routes: structure of the session school (levels, courses, calendar).
Mount: SchoolAdminRoutes(app.Group("/api/a"), db)
*/
func SchoolAdminRoutes(r fiber.Router, db *gorm.DB) {
	schoolCtl := schoolController.NewSchoolController(db)
	r.Get("/school", schoolCtl.GetMySchool)    // GET /api/a/school
	r.Put("/school", schoolCtl.UpdateMySchool) // PUT /api/a/school

	levelCtl := schoolController.NewSchoolLevelController(db)
	levels := r.Group("/school-levels")
	levels.Get("/", levelCtl.ListLevels)        // GET    /api/a/school-levels
	levels.Post("/", levelCtl.CreateLevel)      // POST   /api/a/school-levels
	levels.Put("/:id", levelCtl.UpdateLevel)    // PUT    /api/a/school-levels/:id
	levels.Delete("/:id", levelCtl.DeleteLevel) // DELETE /api/a/school-levels/:id

	courseCtl := schoolController.NewSchoolCourseController(db)
	courses := r.Group("/school-courses")
	courses.Get("/", courseCtl.ListCourses)        // GET    /api/a/school-courses
	courses.Post("/", courseCtl.CreateCourse)      // POST   /api/a/school-courses
	courses.Put("/:id", courseCtl.UpdateCourse)    // PUT    /api/a/school-courses/:id
	courses.Delete("/:id", courseCtl.DeleteCourse) // DELETE /api/a/school-courses/:id

	yearCtl := schoolController.NewAcademicYearController(db)
	years := r.Group("/academic-years")
	years.Get("/", yearCtl.ListAcademicYears)        // GET    /api/a/academic-years
	years.Post("/", yearCtl.CreateAcademicYear)      // POST   /api/a/academic-years
	years.Put("/:id", yearCtl.UpdateAcademicYear)    // PUT    /api/a/academic-years/:id
	years.Delete("/:id", yearCtl.DeleteAcademicYear) // DELETE /api/a/academic-years/:id
}
