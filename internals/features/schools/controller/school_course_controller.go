// file: internals/features/schools/controller/school_course_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"discens_backend/internals/features/schools/dto"
	"discens_backend/internals/features/schools/model"
	helper "discens_backend/internals/helpers"
	authMw "discens_backend/internals/middlewares/auth"
)

// SchoolCourseController manages the courses of the session school. A course
// always hangs off one of the school's own levels.
type SchoolCourseController struct {
	DB *gorm.DB
}

func NewSchoolCourseController(db *gorm.DB) *SchoolCourseController {
	return &SchoolCourseController{DB: db}
}

// ListCourses — GET /api/a/school-courses?level_id=
func (ctl *SchoolCourseController) ListCourses(c *fiber.Ctx) error {
	schoolID, err := authMw.SchoolIDFromLocals(c)
	if err != nil {
		return err
	}

	q := ctl.DB.WithContext(c.Context()).
		Where("school_id = ?", schoolID)
	if raw := c.Query("level_id"); raw != "" {
		levelID, perr := uuid.Parse(raw)
		if perr != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "level_id inválido")
		}
		q = q.Where("school_level_id = ?", levelID)
	}

	var courses []model.SchoolCourseModel
	if err := q.Order("name").Find(&courses).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo listar los cursos")
	}
	return helper.JsonList(c, "Cursos del colegio", courses, nil)
}

// CreateCourse — POST /api/a/school-courses
func (ctl *SchoolCourseController) CreateCourse(c *fiber.Ctx) error {
	schoolID, err := authMw.SchoolIDFromLocals(c)
	if err != nil {
		return err
	}

	var req dto.SchoolCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, dto.ValidationMessages(err))
	}

	if err := ctl.requireOwnLevel(c, schoolID, req.SchoolLevelID); err != nil {
		return err
	}

	course := model.SchoolCourseModel{
		SchoolID:      schoolID,
		SchoolLevelID: req.SchoolLevelID,
		Name:          req.Name,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&course).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo crear el curso")
	}
	return helper.JsonCreated(c, "Curso creado correctamente", course)
}

// UpdateCourse — PUT /api/a/school-courses/:id
func (ctl *SchoolCourseController) UpdateCourse(c *fiber.Ctx) error {
	schoolID, err := authMw.SchoolIDFromLocals(c)
	if err != nil {
		return err
	}
	course, err := ctl.findCourse(c, schoolID)
	if err != nil {
		return err
	}

	var req dto.SchoolCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, dto.ValidationMessages(err))
	}
	if err := ctl.requireOwnLevel(c, schoolID, req.SchoolLevelID); err != nil {
		return err
	}

	updates := map[string]any{
		"name":            req.Name,
		"school_level_id": req.SchoolLevelID,
	}
	if err := ctl.DB.WithContext(c.Context()).Model(course).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo actualizar el curso")
	}
	return helper.JsonUpdated(c, "Curso actualizado correctamente", course)
}

// DeleteCourse — DELETE /api/a/school-courses/:id
func (ctl *SchoolCourseController) DeleteCourse(c *fiber.Ctx) error {
	schoolID, err := authMw.SchoolIDFromLocals(c)
	if err != nil {
		return err
	}
	course, err := ctl.findCourse(c, schoolID)
	if err != nil {
		return err
	}
	if err := ctl.DB.WithContext(c.Context()).Delete(course).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo eliminar el curso")
	}
	return helper.JsonDeleted(c, "Curso eliminado", fiber.Map{"id": course.ID})
}

func (ctl *SchoolCourseController) findCourse(c *fiber.Ctx, schoolID uuid.UUID) (*model.SchoolCourseModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Identificador de curso inválido")
	}
	var course model.SchoolCourseModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&course, "id = ? AND school_id = ?", id, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Curso no encontrado")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "No se pudo obtener el curso")
	}
	return &course, nil
}

func (ctl *SchoolCourseController) requireOwnLevel(c *fiber.Ctx, schoolID, levelID uuid.UUID) error {
	var count int64
	if err := ctl.DB.WithContext(c.Context()).
		Model(&model.SchoolLevelModel{}).
		Where("id = ? AND school_id = ?", levelID, schoolID).
		Count(&count).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "No se pudo verificar el nivel")
	}
	if count == 0 {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "El nivel no pertenece a tu colegio")
	}
	return nil
}
