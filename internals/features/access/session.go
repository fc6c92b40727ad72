// file: internals/features/access/session.go
package access

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "discens_backend/internals/features/users/model"
)

// SessionContext is the fully resolved per-request context: who, which
// tenant, acting as what. It is passed explicitly into handlers instead of
// living in any process-wide store.
type SessionContext struct {
	ProfileID    uuid.UUID    `json:"profile_id"`
	SchoolID     *uuid.UUID   `json:"school_id,omitempty"`
	ActiveRole   ResolvedRole `json:"active_role"`
	Tier         Tier         `json:"tier"`
	LandingRoute string       `json:"landing_route"`
	Navigation   []NavLink    `json:"navigation"`
}

// ResolveSessionContext runs the full chain: resolve roles → select active
// role against the stored marker → classify → attach tenant school.
// ErrUnauthorized and ErrRoleSelectionRequired pass through for the caller
// to translate.
func ResolveSessionContext(ctx context.Context, db *gorm.DB, profileID uuid.UUID, storedMarker string) (SessionContext, error) {
	roles, err := ResolveRoles(ctx, db, profileID)
	if err != nil {
		return SessionContext{}, err
	}

	active, err := SelectActiveRole(roles, storedMarker)
	if err != nil {
		return SessionContext{}, err
	}

	tier := ClassifyRole(active.RoleName)
	sc := SessionContext{
		ProfileID:    profileID,
		ActiveRole:   active,
		Tier:         tier,
		LandingRoute: tier.LandingRoute(),
		Navigation:   NavigationFor(tier),
	}

	schoolID, err := TenantSchoolID(ctx, db, profileID)
	if err != nil {
		return SessionContext{}, err
	}
	sc.SchoolID = schoolID

	return sc, nil
}

// TenantSchoolID returns the profile's tenant school, nil when unbound
// (superadmin operators have no tenant). The one-school-per-profile rule
// makes First authoritative.
func TenantSchoolID(ctx context.Context, db *gorm.DB, profileID uuid.UUID) (*uuid.UUID, error) {
	var ps userModel.ProfileSchoolModel
	err := db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		First(&ps).Error
	switch {
	case err == nil:
		return &ps.SchoolID, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, err
	}
}
