// file: internals/features/users/controller/user_controller.go
package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"discens_backend/internals/features/access"
	authService "discens_backend/internals/features/auth/service"
	"discens_backend/internals/features/users/dto"
	"discens_backend/internals/features/users/model"
	"discens_backend/internals/features/users/service"
	helper "discens_backend/internals/helpers"
	authMw "discens_backend/internals/middlewares/auth"
)

type UserController struct {
	DB     *gorm.DB
	Engine *service.MutationEngine
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{
		DB:     db,
		Engine: service.NewMutationEngine(db, authService.NewLocalIdentity(db)),
	}
}

/* ==========================
   Scoping
========================== */

// resolveTargetSchool decides which school the mutation applies to. Admin
// sessions are always locked to their own school; superadmin may target any
// school via the request body.
func resolveTargetSchool(c *fiber.Ctx, requested uuid.UUID) (uuid.UUID, error) {
	role, _ := c.Locals("active_role").(string)
	if access.ClassifyRole(role) == access.TierSuperadmin {
		if requested == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnprocessableEntity, "school_id es obligatorio")
		}
		return requested, nil
	}

	sessionSchool, err := authMw.SchoolIDFromLocals(c)
	if err != nil {
		return uuid.Nil, err
	}
	if requested != uuid.Nil && requested != sessionSchool {
		return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "No podés operar sobre otro colegio")
	}
	return sessionSchool, nil
}

/* ==========================
   Handlers
========================== */

// CreateUser provisions a managed user in one atomic sequence.
// POST /api/a/users
func (ctl *UserController) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateManagedUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, dto.ValidationMessages(err))
	}

	schoolID, err := resolveTargetSchool(c, req.SchoolID)
	if err != nil {
		return err
	}

	in := req.ToInput()
	in.SchoolID = schoolID

	profileID, err := ctl.Engine.CreateManagedUser(c.Context(), in)
	if err != nil {
		return mutationErrorResponse(c, err)
	}
	return helper.JsonCreated(c, "Usuario creado correctamente", fiber.Map{
		"profile_id": profileID,
		"school_id":  schoolID,
	})
}

// EditUser replaces the person attributes and association sets of a profile.
// PUT /api/a/users/:id
func (ctl *UserController) EditUser(c *fiber.Ctx) error {
	profileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identificador de perfil inválido")
	}

	var req dto.EditManagedUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Cuerpo de la petición inválido")
	}
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, dto.ValidationMessages(err))
	}

	schoolID, err := resolveTargetSchool(c, req.SchoolID)
	if err != nil {
		return err
	}
	if err := ctl.requireSameSchool(c, profileID, schoolID); err != nil {
		return err
	}

	in := req.ToInput()
	in.SchoolID = schoolID

	if err := ctl.Engine.EditManagedUser(c.Context(), profileID, in); err != nil {
		return mutationErrorResponse(c, err)
	}
	return helper.JsonUpdated(c, "Usuario actualizado correctamente", fiber.Map{
		"profile_id": profileID,
		"school_id":  schoolID,
	})
}

// ListUsers returns the profiles bound to the tenant school, with person data
// and assigned roles.
// GET /api/a/users
func (ctl *UserController) ListUsers(c *fiber.Ctx) error {
	schoolID, err := ctl.listScope(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	base := ctl.DB.WithContext(c.Context()).Table("profile_school").
		Where("profile_school.school_id = ?", schoolID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo listar usuarios")
	}

	var rows []listRow
	if err := ctl.DB.WithContext(c.Context()).Table("profile_school").
		Select("profiles.id AS profile_id, persons.id AS person_id, persons.first_name, persons.last_name, persons.email, persons.phone").
		Joins("JOIN profiles ON profiles.id = profile_school.profile_id").
		Joins("JOIN persons ON persons.id = profiles.person_id").
		Where("profile_school.school_id = ?", schoolID).
		Order("persons.last_name, persons.first_name").
		Offset(paging.Offset).Limit(paging.Limit).
		Scan(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo listar usuarios")
	}

	rolesByProfile, err := ctl.rolesFor(c, rows)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo listar usuarios")
	}

	items := make([]fiber.Map, 0, len(rows))
	for _, r := range rows {
		items = append(items, fiber.Map{
			"profile_id": r.ProfileID,
			"first_name": r.FirstName,
			"last_name":  r.LastName,
			"email":      r.Email,
			"phone":      r.Phone,
			"roles":      rolesByProfile[r.ProfileID],
		})
	}
	return helper.JsonList(c, "Usuarios del colegio", items, helper.BuildPagination(paging, total))
}

// GetUser returns one profile with person data, roles and level scopes.
// GET /api/a/users/:id
func (ctl *UserController) GetUser(c *fiber.Ctx) error {
	profileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Identificador de perfil inválido")
	}

	var profile model.ProfileModel
	if err := ctl.DB.WithContext(c.Context()).
		Preload("Person").
		First(&profile, "id = ?", profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Perfil no encontrado")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo obtener el usuario")
	}

	tenant, err := access.TenantSchoolID(c.Context(), ctl.DB, profileID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo obtener el usuario")
	}
	if schoolID, scopeErr := ctl.listScope(c); scopeErr == nil {
		if tenant == nil || *tenant != schoolID {
			return helper.JsonError(c, fiber.StatusNotFound, "Perfil no encontrado")
		}
	}

	roles, err := access.ResolveRoles(c.Context(), ctl.DB, profileID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo obtener el usuario")
	}

	var scopes []model.ProfileSchoolLevelModel
	if err := ctl.DB.WithContext(c.Context()).
		Where("profile_id = ?", profileID).
		Order("created_at").
		Find(&scopes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo obtener el usuario")
	}

	return helper.JsonOK(c, "Detalle del usuario", fiber.Map{
		"profile_id":  profile.ID,
		"person":      profile.Person,
		"school_id":   tenant,
		"roles":       roles,
		"role_levels": scopes,
	})
}

/* ==========================
   Internals
========================== */

// listScope: admin reads its own school; superadmin may pass ?school_id=.
func (ctl *UserController) listScope(c *fiber.Ctx) (uuid.UUID, error) {
	role, _ := c.Locals("active_role").(string)
	if access.ClassifyRole(role) == access.TierSuperadmin {
		raw := c.Query("school_id")
		if raw == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnprocessableEntity, "school_id es obligatorio")
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnprocessableEntity, "school_id inválido")
		}
		return id, nil
	}
	return authMw.SchoolIDFromLocals(c)
}

func (ctl *UserController) requireSameSchool(c *fiber.Ctx, profileID, schoolID uuid.UUID) error {
	tenant, err := access.TenantSchoolID(c.Context(), ctl.DB, profileID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo verificar el colegio del perfil")
	}
	if tenant != nil && *tenant != schoolID {
		return fiber.NewError(fiber.StatusForbidden, "El perfil pertenece a otro colegio")
	}
	return nil
}

type listRow struct {
	ProfileID uuid.UUID `json:"profile_id"`
	PersonID  uuid.UUID `json:"person_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
}

func (ctl *UserController) rolesFor(c *fiber.Ctx, rows []listRow) (map[uuid.UUID][]access.ResolvedRole, error) {
	out := make(map[uuid.UUID][]access.ResolvedRole, len(rows))
	if len(rows) == 0 {
		return out, nil
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ProfileID)
	}

	type roleRow struct {
		ProfileID uuid.UUID
		RoleID    uuid.UUID
		RoleName  string
	}
	var links []roleRow
	if err := ctl.DB.WithContext(c.Context()).
		Table("profile_roles").
		Select("profile_roles.profile_id, roles.id AS role_id, roles.name AS role_name").
		Joins("JOIN roles ON roles.id = profile_roles.role_id").
		Where("profile_roles.profile_id IN ?", ids).
		Order("profile_roles.created_at, profile_roles.id").
		Scan(&links).Error; err != nil {
		return nil, err
	}
	for _, l := range links {
		out[l.ProfileID] = append(out[l.ProfileID], access.ResolvedRole{RoleID: l.RoleID, RoleName: l.RoleName})
	}
	return out, nil
}

// mutationErrorResponse maps engine failures to step-tagged responses.
func mutationErrorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrProfileNotFound), errors.Is(err, service.ErrSchoolNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, service.ErrSchoolInactive), errors.Is(err, authService.ErrEmailTaken):
		status = fiber.StatusConflict
	case errors.Is(err, service.ErrNoRolesSelected), errors.Is(err, service.ErrOrphanScope):
		status = fiber.StatusUnprocessableEntity
	}

	var me *service.MutationError
	if errors.As(err, &me) {
		return helper.JsonErrorWithStep(c, status, string(me.Step), me.Err.Error())
	}
	return helper.JsonError(c, status, err.Error())
}
