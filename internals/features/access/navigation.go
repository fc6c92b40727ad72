// file: internals/features/access/navigation.go
package access

// NavLink is one sidebar entry. Icon is a symbolic key resolved by the
// presentation layer (lucide names).
type NavLink struct {
	Label string `json:"label"`
	Route string `json:"route"`
	Icon  string `json:"icon"`
}

// Static navigation configuration per tier, ordered.
var (
	superadminLinks = []NavLink{
		{Label: "Inicio", Route: "/dashboard/superadmin", Icon: "Home"},
		{Label: "Colegios", Route: "/dashboard/superadmin/schools", Icon: "School"},
		{Label: "Niveles", Route: "/dashboard/superadmin/levels", Icon: "Layers"},
		{Label: "Usuarios", Route: "/dashboard/superadmin/users", Icon: "Users"},
	}

	adminLinks = []NavLink{
		{Label: "Inicio", Route: "/dashboard/admin", Icon: "Home"},
		{Label: "Colegio", Route: "/dashboard/admin/school", Icon: "School"},
		{Label: "Niveles", Route: "/dashboard/admin/levels", Icon: "Layers"},
		{Label: "Cursos", Route: "/dashboard/admin/courses", Icon: "BookOpen"},
		{Label: "Ciclo lectivo", Route: "/dashboard/admin/academic_years", Icon: "Calendar"},
		{Label: "Usuarios", Route: "/dashboard/admin/users", Icon: "Users"},
	}

	staffLinks = []NavLink{
		{Label: "Inicio", Route: "/dashboard/staff", Icon: "Home"},
	}

	communityLinks = []NavLink{
		{Label: "Inicio", Route: "/dashboard/community", Icon: "Home"},
	}

	genericLinks = []NavLink{
		{Label: "Inicio", Route: "/dashboard/generic", Icon: "Home"},
	}
)

// NavigationFor returns the tier's fixed link set. Callers must not mutate
// the returned slice.
func NavigationFor(t Tier) []NavLink {
	switch t {
	case TierSuperadmin:
		return superadminLinks
	case TierAdmin:
		return adminLinks
	case TierStaff:
		return staffLinks
	case TierCommunity:
		return communityLinks
	default:
		return genericLinks
	}
}
