// file: internals/features/access/selector.go
package access

import (
	"errors"
	"strings"
)

var (
	// ErrUnauthorized: the profile holds no roles; no dashboard is allowed.
	ErrUnauthorized = errors.New("el perfil no tiene roles asignados")

	// ErrRoleSelectionRequired: more than one role and the stored marker
	// matches none of them; the caller must send the user through the
	// explicit role-selection step.
	ErrRoleSelectionRequired = errors.New("se requiere seleccionar un rol")
)

// SelectActiveRole picks the single active role for a session.
//
// Policy (one policy for every flow):
//   - zero roles      → ErrUnauthorized
//   - exactly one     → that role, whatever the marker said; the caller must
//     overwrite the marker so future loads agree
//   - more than one   → the stored marker wins when it matches one of the
//     role names (case-insensitive); otherwise ErrRoleSelectionRequired.
//     There is no silent first-role fallback.
func SelectActiveRole(roles []ResolvedRole, storedMarker string) (ResolvedRole, error) {
	switch len(roles) {
	case 0:
		return ResolvedRole{}, ErrUnauthorized
	case 1:
		return roles[0], nil
	}

	marker := strings.TrimSpace(storedMarker)
	if marker != "" {
		for _, r := range roles {
			if strings.EqualFold(r.RoleName, marker) {
				return r, nil
			}
		}
	}
	return ResolvedRole{}, ErrRoleSelectionRequired
}
