// file: internals/features/access/resolver.go
package access

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrRoleResolution wraps store failures while loading a profile's roles.
// A profile with zero roles is a valid empty result, not this error.
var ErrRoleResolution = fmt.Errorf("no se pudieron resolver los roles del perfil")

// ResolvedRole is one role held by a profile.
type ResolvedRole struct {
	RoleID   uuid.UUID `json:"role_id"`
	RoleName string    `json:"role_name"`
}

// ResolveRoles loads the roles held by profileID, ordered by assignment
// insertion so multi-role handling is deterministic. Pure read.
func ResolveRoles(ctx context.Context, db *gorm.DB, profileID uuid.UUID) ([]ResolvedRole, error) {
	var roles []ResolvedRole
	err := db.WithContext(ctx).
		Table("profile_roles").
		Select("profile_roles.role_id AS role_id, roles.name AS role_name").
		Joins("JOIN roles ON roles.id = profile_roles.role_id").
		Where("profile_roles.profile_id = ?", profileID).
		Order("profile_roles.created_at, profile_roles.id").
		Scan(&roles).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRoleResolution, err)
	}
	return roles, nil
}
