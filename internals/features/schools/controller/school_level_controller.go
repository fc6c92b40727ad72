// file: internals/features/schools/controller/school_level_controller.go
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

// SchoolLevelController manages the level subdivisions of the session school.
type SchoolLevelController struct {
	DB *gorm.DB
}

func NewSchoolLevelController(db *gorm.DB) *SchoolLevelController {
	return &SchoolLevelController{DB: db}
}

// ListLevels — GET /api/a/school-levels
func (ctl *SchoolLevelController) ListLevels(c *fiber.Ctx) error {
	schoolID, err := authMw.SchoolIDFromLocals(c)
	if err != nil {
		return err
	}
	var levels []model.SchoolLevelModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("school_id = ?", schoolID).
		Order("name").
		Find(&levels).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo listar los niveles")
	}
	return helper.JsonList(c, "Niveles del colegio", levels, nil)
}

// CreateLevel — POST /api/a/school-levels
func (ctl *SchoolLevelController) CreateLevel(c *fiber.Ctx) error {
	schoolID, err := authMw.SchoolIDFromLocals(c)
	if err != nil {
		return err
	}

	var req dto.SchoolLevelRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, dto.ValidationMessages(err))
	}

	level := model.SchoolLevelModel{
		SchoolID: schoolID,
		Name:     req.Name,
		CUE:      req.CUE,
		Diegep:   req.Diegep,
		KeyProv:  req.KeyProv,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&level).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo crear el nivel")
	}
	return helper.JsonCreated(c, "Nivel creado correctamente", level)
}

// UpdateLevel — PUT /api/a/school-levels/:id
func (ctl *SchoolLevelController) UpdateLevel(c *fiber.Ctx) error {
	level, err := ctl.findLevel(c)
	if err != nil {
		return err
	}

	var req dto.SchoolLevelRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, dto.ValidationMessages(err))
	}

	updates := map[string]any{
		"name":     req.Name,
		"cue":      req.CUE,
		"diegep":   req.Diegep,
		"key_prov": req.KeyProv,
	}
	if err := ctl.DB.WithContext(c.Context()).Model(level).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo actualizar el nivel")
	}
	return helper.JsonUpdated(c, "Nivel actualizado correctamente", level)
}

// DeleteLevel refuses while courses or role scopes still reference the level.
// DELETE /api/a/school-levels/:id
func (ctl *SchoolLevelController) DeleteLevel(c *fiber.Ctx) error {
	level, err := ctl.findLevel(c)
	if err != nil {
		return err
	}

	var courses int64
	if err := ctl.DB.WithContext(c.Context()).
		Model(&model.SchoolCourseModel{}).
		Where("school_level_id = ?", level.ID).
		Count(&courses).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo eliminar el nivel")
	}
	if courses > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "El nivel tiene cursos asociados")
	}

	var scopes int64
	if err := ctl.DB.WithContext(c.Context()).
		Table("profile_school_levels").
		Where("school_level_id = ?", level.ID).
		Count(&scopes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo eliminar el nivel")
	}
	if scopes > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "El nivel tiene usuarios asignados")
	}

	if err := ctl.DB.WithContext(c.Context()).Delete(level).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo eliminar el nivel")
	}
	return helper.JsonDeleted(c, "Nivel eliminado", fiber.Map{"id": level.ID})
}

// findLevel loads the level and checks it belongs to the session school.
func (ctl *SchoolLevelController) findLevel(c *fiber.Ctx) (*model.SchoolLevelModel, error) {
	schoolID, err := authMw.SchoolIDFromLocals(c)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Identificador de nivel inválido")
	}
	var level model.SchoolLevelModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&level, "id = ? AND school_id = ?", id, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Nivel no encontrado")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "No se pudo obtener el nivel")
	}
	return &level, nil
}
