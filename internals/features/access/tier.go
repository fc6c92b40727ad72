// file: internals/features/access/tier.go
package access

import (
	"strings"

	"discens_backend/internals/constants"
)

// Tier is the permission tier an active role resolves to. Authorization
// decisions compare tiers, never raw role-name strings.
type Tier string

const (
	TierSuperadmin Tier = "superadmin"
	TierAdmin      Tier = "admin"
	TierStaff      Tier = "staff"
	TierCommunity  Tier = "community"
	TierGeneric    Tier = "generic"
)

var staffRoleSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(constants.StaffRoles))
	for _, r := range constants.StaffRoles {
		set[r] = struct{}{}
	}
	return set
}()

var communityRoleSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(constants.CommunityRoles))
	for _, r := range constants.CommunityRoles {
		set[r] = struct{}{}
	}
	return set
}()

// ClassifyRole maps a role name to its tier. Pure and total: any input,
// including the empty string, yields a tier. Comparison is case-insensitive.
func ClassifyRole(roleName string) Tier {
	normalized := strings.ToLower(strings.TrimSpace(roleName))

	switch normalized {
	case constants.RoleSuperadmin:
		return TierSuperadmin
	case constants.RoleAdmin:
		return TierAdmin
	}
	if _, ok := staffRoleSet[normalized]; ok {
		return TierStaff
	}
	if _, ok := communityRoleSet[normalized]; ok {
		return TierCommunity
	}
	return TierGeneric
}

// LandingRoute returns the dashboard landing route for the tier.
func (t Tier) LandingRoute() string {
	switch t {
	case TierSuperadmin:
		return "/dashboard/superadmin"
	case TierAdmin:
		return "/dashboard/admin"
	case TierStaff:
		return "/dashboard/staff"
	case TierCommunity:
		return "/dashboard/community"
	default:
		return "/dashboard/generic"
	}
}

// LandingRouteForRole is the classify-then-route shortcut used after login.
func LandingRouteForRole(roleName string) string {
	return ClassifyRole(roleName).LandingRoute()
}
