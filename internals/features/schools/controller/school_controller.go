// file: internals/features/schools/controller/school_controller.go
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

// SchoolController owns the tenant registry. Creation, activation and
// deactivation are superadmin operations; admins can read and update their
// own school only.
type SchoolController struct {
	DB *gorm.DB
}

func NewSchoolController(db *gorm.DB) *SchoolController {
	return &SchoolController{DB: db}
}

/* ==========================
   Superadmin surface
========================== */

// CreateSchool — POST /api/o/schools
func (ctl *SchoolController) CreateSchool(c *fiber.Ctx) error {
	var req dto.CreateSchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, dto.ValidationMessages(err))
	}

	school := model.SchoolModel{
		Name:     req.Name,
		Address:  req.Address,
		City:     req.City,
		Province: req.Province,
		Phone:    req.Phone,
		CUE:      req.CUE,
		IsActive: true,
	}
	if err := ctl.DB.WithContext(c.Context()).Create(&school).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo crear el colegio")
	}
	return helper.JsonCreated(c, "Colegio creado correctamente", school)
}

// ListSchools — GET /api/o/schools?active=true
func (ctl *SchoolController) ListSchools(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.Context()).Model(&model.SchoolModel{})
	switch c.Query("active") {
	case "true":
		q = q.Where("is_active = ?", true)
	case "false":
		q = q.Where("is_active = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo listar colegios")
	}

	var schools []model.SchoolModel
	if err := q.Order("name").Offset(paging.Offset).Limit(paging.Limit).Find(&schools).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo listar colegios")
	}
	return helper.JsonList(c, "Colegios registrados", schools, helper.BuildPagination(paging, total))
}

// GetSchool — GET /api/o/schools/:id
func (ctl *SchoolController) GetSchool(c *fiber.Ctx) error {
	school, err := ctl.findSchool(c, c.Params("id"))
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Detalle del colegio", school)
}

// UpdateSchool — PUT /api/o/schools/:id
func (ctl *SchoolController) UpdateSchool(c *fiber.Ctx) error {
	school, err := ctl.findSchool(c, c.Params("id"))
	if err != nil {
		return err
	}
	return ctl.applyUpdate(c, school)
}

// SetSchoolActive flips the tenant gate. Deactivating never deletes data;
// it only blocks new assignments.
// PATCH /api/o/schools/:id/activate | /deactivate
func (ctl *SchoolController) SetSchoolActive(active bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		school, err := ctl.findSchool(c, c.Params("id"))
		if err != nil {
			return err
		}
		if school.IsActive == active {
			return helper.JsonOK(c, "Sin cambios", school)
		}
		if err := ctl.DB.WithContext(c.Context()).
			Model(school).
			Update("is_active", active).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo actualizar el colegio")
		}
		msg := "Colegio activado"
		if !active {
			msg = "Colegio desactivado"
		}
		return helper.JsonUpdated(c, msg, school)
	}
}

/* ==========================
   Admin surface (own school)
========================== */

// GetMySchool — GET /api/a/school
func (ctl *SchoolController) GetMySchool(c *fiber.Ctx) error {
	schoolID, err := authMw.SchoolIDFromLocals(c)
	if err != nil {
		return err
	}
	school, err := ctl.findSchool(c, schoolID.String())
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Tu colegio", school)
}

// UpdateMySchool — PUT /api/a/school
func (ctl *SchoolController) UpdateMySchool(c *fiber.Ctx) error {
	schoolID, err := authMw.SchoolIDFromLocals(c)
	if err != nil {
		return err
	}
	school, err := ctl.findSchool(c, schoolID.String())
	if err != nil {
		return err
	}
	return ctl.applyUpdate(c, school)
}

/* ==========================
   Internals
========================== */

func (ctl *SchoolController) findSchool(c *fiber.Ctx, raw string) (*model.SchoolModel, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Identificador de colegio inválido")
	}
	var school model.SchoolModel
	if err := ctl.DB.WithContext(c.Context()).First(&school, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Colegio no encontrado")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "No se pudo obtener el colegio")
	}
	return &school, nil
}

func (ctl *SchoolController) applyUpdate(c *fiber.Ctx, school *model.SchoolModel) error {
	var req dto.UpdateSchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, dto.ValidationMessages(err))
	}

	updates := req.Updates()
	if len(updates) == 0 {
		return helper.JsonOK(c, "Sin cambios", school)
	}
	if err := ctl.DB.WithContext(c.Context()).Model(school).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo actualizar el colegio")
	}
	return helper.JsonUpdated(c, "Colegio actualizado correctamente", school)
}
