package constants

import "fmt"

// Canonical role names as stored in the `roles` table. Comparison for
// routing/authorization is always case-insensitive; these constants keep the
// canonical (lowercase) spelling used by seeds and tests.
const (
	RoleSuperadmin = "superadmin"
	RoleAdmin      = "admin"

	// Staff
	RoleRepresentanteLegal = "representante legal"
	RolePropietario        = "propietario"
	RoleDirectorGeneral    = "director general"
	RoleDirectorDeNivel    = "director de nivel"
	RoleDirectorDeArea     = "director de área"
	RolePreceptor          = "preceptor"
	RoleSecretaria         = "secretaria"
	RoleSecretario         = "secretario"
	RoleDocente            = "docente"
	RoleAdministrativo     = "administrativo"
	RoleMaestranza         = "maestranza"
	RoleMantenimiento      = "mantenimiento"

	// Community
	RoleFamiliar   = "familiar"
	RoleEstudiante = "estudiante"
)

// Role-error message templates
const (
	ErrOnlySuperadminsCanAccess = "❌ Solo superadmin puede acceder a %s."
	ErrOnlyAdminsCanAccess      = "❌ Solo admin o superadmin pueden acceder a %s."
	ErrOnlyStaffCanAccess       = "❌ Solo personal del colegio puede acceder a %s."
)

func RoleErrorSuperadmin(feature string) string {
	return fmt.Sprintf(ErrOnlySuperadminsCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	StaffRoles = []string{
		RoleRepresentanteLegal,
		RolePropietario,
		RoleDirectorGeneral,
		RoleDirectorDeNivel,
		RoleDirectorDeArea,
		RolePreceptor,
		RoleSecretaria,
		RoleSecretario,
		RoleDocente,
		RoleAdministrativo,
		RoleMaestranza,
		RoleMantenimiento,
	}

	CommunityRoles = []string{
		RoleFamiliar,
		RoleEstudiante,
	}

	// AllRoles is the seedable vocabulary, insertion order preserved.
	AllRoles = func() []string {
		out := []string{RoleSuperadmin, RoleAdmin}
		out = append(out, StaffRoles...)
		out = append(out, CommunityRoles...)
		return out
	}()
)
