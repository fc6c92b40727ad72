// file: internals/features/auth/service/auth_service.go
package service

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"discens_backend/internals/configs"
	"discens_backend/internals/features/access"
	helper "discens_backend/internals/helpers"
)

/* ==========================
   Sign-in
========================== */

// Login authenticates the principal, resolves its roles and either lands the
// session on the active role's dashboard or asks for an explicit role
// selection. The active-role marker from a previous session breaks the tie.
func Login(db *gorm.DB, idp *LocalIdentity, c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Formato de solicitud inválido")
	}
	if strings.TrimSpace(input.Email) == "" || input.Password == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Email y contraseña son obligatorios")
	}

	ctx := c.UserContext()
	user, err := idp.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			return helper.JsonError(c, fiber.StatusUnauthorized, ErrInvalidCredentials.Error())
		case errors.Is(err, ErrAccountDisabled):
			return helper.JsonError(c, fiber.StatusForbidden, ErrAccountDisabled.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo iniciar sesión")
		}
	}

	profileID := user.ID
	roles, err := access.ResolveRoles(ctx, db, profileID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, access.ErrRoleResolution.Error())
	}

	now := time.Now().UTC()

	// role selection first: a roleless principal gets no session and no
	// stored refresh token
	marker := helper.GetActiveRoleFromCookies(c)
	active, err := access.SelectActiveRole(roles, marker)
	switch {
	case errors.Is(err, access.ErrUnauthorized):
		return helper.JsonError(c, fiber.StatusForbidden, access.ErrUnauthorized.Error())

	case errors.Is(err, access.ErrRoleSelectionRequired):
		// authenticated but no active role yet: tokens without role claims,
		// the client must go through the role-selection step
		refresh, rerr := IssueRefreshToken(ctx, db, configs.JWTRefreshSecret, user.ID, now)
		if rerr != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo iniciar sesión")
		}
		accessToken, terr := CreateAccessToken(configs.JWTSecret, user.ID, "", "", "", now)
		if terr != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo iniciar sesión")
		}
		helper.SetAuthCookies(c, accessToken, refresh, now)
		return helper.JsonOK(c, "Seleccioná un rol para continuar", fiber.Map{
			"needs_role_selection": true,
			"roles":                roles,
			"select_role_route":    "/select-role",
		})

	case err != nil:
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo iniciar sesión")
	}

	refresh, err := IssueRefreshToken(ctx, db, configs.JWTRefreshSecret, user.ID, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo iniciar sesión")
	}

	return establishSession(db, c, user.ID, profileID, active, refresh, now)
}

// SelectRole makes one of the profile's roles active. Requires an
// authenticated session; the chosen role must actually be held.
func SelectRole(db *gorm.DB, c *fiber.Ctx) error {
	profileID, err := profileIDFromLocals(c)
	if err != nil {
		return err
	}

	var input struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Formato de solicitud inválido")
	}
	if strings.TrimSpace(input.Role) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Debe indicar un rol")
	}

	ctx := c.UserContext()
	roles, err := access.ResolveRoles(ctx, db, profileID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, access.ErrRoleResolution.Error())
	}

	var chosen *access.ResolvedRole
	for i, r := range roles {
		if strings.EqualFold(r.RoleName, strings.TrimSpace(input.Role)) {
			chosen = &roles[i]
			break
		}
	}
	if chosen == nil {
		return helper.JsonError(c, fiber.StatusForbidden, "El perfil no tiene asignado ese rol")
	}

	now := time.Now().UTC()
	refresh := c.Cookies(helper.CookieRefreshToken)
	return establishSession(db, c, profileID, profileID, *chosen, refresh, now)
}

// establishSession writes the session-context cookies and the access token
// for the resolved active role.
func establishSession(db *gorm.DB, c *fiber.Ctx, userID, profileID uuid.UUID, active access.ResolvedRole, refresh string, now time.Time) error {
	ctx := c.UserContext()

	schoolID, err := access.TenantSchoolID(ctx, db, profileID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo resolver el colegio del perfil")
	}
	schoolStr := ""
	if schoolID != nil {
		schoolStr = schoolID.String()
	}

	accessToken, err := CreateAccessToken(configs.JWTSecret, userID, active.RoleName, active.RoleID.String(), schoolStr, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo iniciar sesión")
	}

	helper.SetAuthCookies(c, accessToken, refresh, now)
	helper.SetSessionContextCookies(c, profileID.String(), schoolStr, active.RoleName, now)

	tier := access.ClassifyRole(active.RoleName)
	return helper.JsonOK(c, "Sesión iniciada", fiber.Map{
		"profile_id":    profileID,
		"school_id":     schoolID,
		"active_role":   active,
		"tier":          tier,
		"landing_route": tier.LandingRoute(),
		"navigation":    access.NavigationFor(tier),
		"access_token":  accessToken,
	})
}

/* ==========================
   Session introspection
========================== */

// Me returns the resolved session context for the authenticated profile.
func Me(db *gorm.DB, c *fiber.Ctx) error {
	profileID, err := profileIDFromLocals(c)
	if err != nil {
		return err
	}

	marker := activeRoleMarker(c)
	sc, err := access.ResolveSessionContext(c.UserContext(), db, profileID, marker)
	switch {
	case errors.Is(err, access.ErrUnauthorized):
		return helper.JsonError(c, fiber.StatusForbidden, access.ErrUnauthorized.Error())
	case errors.Is(err, access.ErrRoleSelectionRequired):
		roles, rerr := access.ResolveRoles(c.UserContext(), db, profileID)
		if rerr != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, access.ErrRoleResolution.Error())
		}
		return helper.JsonOK(c, "Seleccioná un rol para continuar", fiber.Map{
			"needs_role_selection": true,
			"roles":                roles,
		})
	case err != nil:
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo resolver la sesión")
	}
	return helper.JsonOK(c, "Sesión activa", sc)
}

// MyRoles lists every role the profile holds, in resolution order.
func MyRoles(db *gorm.DB, c *fiber.Ctx) error {
	profileID, err := profileIDFromLocals(c)
	if err != nil {
		return err
	}
	roles, err := access.ResolveRoles(c.UserContext(), db, profileID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, access.ErrRoleResolution.Error())
	}
	return helper.JsonOK(c, "Roles del perfil", roles)
}

// Navigation returns the active tier's sidebar links.
func Navigation(db *gorm.DB, c *fiber.Ctx) error {
	profileID, err := profileIDFromLocals(c)
	if err != nil {
		return err
	}

	marker := activeRoleMarker(c)
	sc, err := access.ResolveSessionContext(c.UserContext(), db, profileID, marker)
	switch {
	case errors.Is(err, access.ErrUnauthorized):
		return helper.JsonError(c, fiber.StatusForbidden, access.ErrUnauthorized.Error())
	case errors.Is(err, access.ErrRoleSelectionRequired):
		return helper.JsonError(c, fiber.StatusConflict, access.ErrRoleSelectionRequired.Error())
	case err != nil:
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo resolver la sesión")
	}

	return helper.JsonOK(c, "Navegación", fiber.Map{
		"tier":          sc.Tier,
		"landing_route": sc.LandingRoute,
		"links":         sc.Navigation,
	})
}

/* ==========================
   Token lifecycle
========================== */

// RefreshToken rotates the refresh token and reissues the access token,
// preserving the active-role marker.
func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Cookies(helper.CookieRefreshToken))
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Falta el refresh token")
	}

	ctx := c.UserContext()
	now := time.Now().UTC()
	userID, next, err := RotateRefreshToken(ctx, db, configs.JWTRefreshSecret, raw, now)
	if err != nil {
		if errors.Is(err, ErrInvalidRefreshToken) {
			return helper.JsonError(c, fiber.StatusUnauthorized, ErrInvalidRefreshToken.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo renovar la sesión")
	}

	// role claims follow the stored marker; a session that never selected a
	// role stays roleless until it does
	activeRole, roleID, schoolStr := "", "", ""
	if sc, err := access.ResolveSessionContext(ctx, db, userID, activeRoleMarker(c)); err == nil {
		activeRole = sc.ActiveRole.RoleName
		roleID = sc.ActiveRole.RoleID.String()
		if sc.SchoolID != nil {
			schoolStr = sc.SchoolID.String()
		}
	}

	accessToken, err := CreateAccessToken(configs.JWTSecret, userID, activeRole, roleID, schoolStr, now)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "No se pudo renovar la sesión")
	}
	helper.SetAuthCookies(c, accessToken, next, now)

	return helper.JsonOK(c, "Sesión renovada", fiber.Map{
		"access_token": accessToken,
	})
}

// Logout revokes the refresh token and clears every session cookie.
// Idempotent: logging out twice is fine.
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	now := time.Now().UTC()
	if raw := strings.TrimSpace(c.Cookies(helper.CookieRefreshToken)); raw != "" {
		_ = RevokeRefreshToken(c.UserContext(), db, configs.JWTRefreshSecret, raw, now)
	}
	helper.ClearSessionCookies(c)
	return helper.JsonOK(c, "Sesión cerrada", nil)
}

/* ==========================
   Helpers
========================== */

func profileIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	v, ok := c.Locals("user_id").(string)
	if !ok || v == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Sesión no autenticada")
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Identificador de sesión inválido")
	}
	return id, nil
}

// activeRoleMarker prefers the token claim, then the durable cookie.
func activeRoleMarker(c *fiber.Ctx) string {
	if v, ok := c.Locals("active_role").(string); ok && v != "" {
		return v
	}
	return helper.GetActiveRoleFromCookies(c)
}
