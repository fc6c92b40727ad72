// file: internals/features/schools/controller/academic_year_controller.go
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

// AcademicYearController manages the school-year calendar of the session
// school. One row per calendar year per school.
type AcademicYearController struct {
	DB *gorm.DB
}

func NewAcademicYearController(db *gorm.DB) *AcademicYearController {
	return &AcademicYearController{DB: db}
}

// ListAcademicYears — GET /api/a/academic-years
func (ctl *AcademicYearController) ListAcademicYears(c *fiber.Ctx) error {
	schoolID, err := authMw.SchoolIDFromLocals(c)
	if err != nil {
		return err
	}
	var years []model.AcademicYearModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("school_id = ?", schoolID).
		Order("year DESC").
		Find(&years).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo listar los ciclos lectivos")
	}
	return helper.JsonList(c, "Ciclos lectivos", years, nil)
}

// CreateAcademicYear — POST /api/a/academic-years
func (ctl *AcademicYearController) CreateAcademicYear(c *fiber.Ctx) error {
	schoolID, err := authMw.SchoolIDFromLocals(c)
	if err != nil {
		return err
	}

	var req dto.AcademicYearRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, dto.ValidationMessages(err))
	}
	year, err := buildAcademicYear(&req)
	if err != nil {
		return err
	}

	var dup int64
	if err := ctl.DB.WithContext(c.Context()).
		Model(&model.AcademicYearModel{}).
		Where("school_id = ? AND year = ?", schoolID, year.Year).
		Count(&dup).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo crear el ciclo lectivo")
	}
	if dup > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Ya existe un ciclo lectivo para ese año")
	}

	year.SchoolID = schoolID
	if err := ctl.DB.WithContext(c.Context()).Create(year).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo crear el ciclo lectivo")
	}
	return helper.JsonCreated(c, "Ciclo lectivo creado correctamente", year)
}

// UpdateAcademicYear — PUT /api/a/academic-years/:id
func (ctl *AcademicYearController) UpdateAcademicYear(c *fiber.Ctx) error {
	schoolID, err := authMw.SchoolIDFromLocals(c)
	if err != nil {
		return err
	}
	existing, err := ctl.findYear(c, schoolID)
	if err != nil {
		return err
	}

	var req dto.AcademicYearRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, dto.ValidationMessages(err))
	}
	incoming, err := buildAcademicYear(&req)
	if err != nil {
		return err
	}

	updates := map[string]any{
		"year":               incoming.Year,
		"start_date":         incoming.StartDate,
		"end_date":           incoming.EndDate,
		"winter_break_start": incoming.WinterBreakStart,
		"winter_break_end":   incoming.WinterBreakEnd,
		"structure":          incoming.Structure,
	}
	if err := ctl.DB.WithContext(c.Context()).Model(existing).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo actualizar el ciclo lectivo")
	}
	return helper.JsonUpdated(c, "Ciclo lectivo actualizado correctamente", existing)
}

// DeleteAcademicYear — DELETE /api/a/academic-years/:id
func (ctl *AcademicYearController) DeleteAcademicYear(c *fiber.Ctx) error {
	schoolID, err := authMw.SchoolIDFromLocals(c)
	if err != nil {
		return err
	}
	existing, err := ctl.findYear(c, schoolID)
	if err != nil {
		return err
	}
	if err := ctl.DB.WithContext(c.Context()).Delete(existing).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo eliminar el ciclo lectivo")
	}
	return helper.JsonDeleted(c, "Ciclo lectivo eliminado", fiber.Map{"id": existing.ID})
}

/* ==========================
   Internals
========================== */

// buildAcademicYear checks date ordering: the year must start before it ends,
// and the winter break (if any) must fall inside it.
func buildAcademicYear(req *dto.AcademicYearRequest) (*model.AcademicYearModel, error) {
	start, end, wbStart, wbEnd, err := req.Dates()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Fechas inválidas")
	}
	if !start.Before(end) {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "La fecha de inicio debe ser anterior a la de fin")
	}
	if (wbStart == nil) != (wbEnd == nil) {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "El receso invernal requiere inicio y fin")
	}
	if wbStart != nil {
		if !wbStart.Before(*wbEnd) || wbStart.Before(start) || wbEnd.After(end) {
			return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "El receso invernal debe caer dentro del ciclo")
		}
	}

	structure := req.Structure
	if structure == "" {
		structure = "trimestres"
	}
	return &model.AcademicYearModel{
		Year:             req.Year,
		StartDate:        start,
		EndDate:          end,
		WinterBreakStart: wbStart,
		WinterBreakEnd:   wbEnd,
		Structure:        structure,
	}, nil
}

func (ctl *AcademicYearController) findYear(c *fiber.Ctx, schoolID uuid.UUID) (*model.AcademicYearModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Identificador de ciclo inválido")
	}
	var year model.AcademicYearModel
	if err := ctl.DB.WithContext(c.Context()).
		First(&year, "id = ? AND school_id = ?", id, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Ciclo lectivo no encontrado")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "No se pudo obtener el ciclo lectivo")
	}
	return &year, nil
}
