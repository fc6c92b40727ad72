// internals/middlewares/auth/tier_middleware.go
package auth

import (
	"github.com/gofiber/fiber/v2"

	"discens_backend/internals/features/access"
)

// RequireTier guards a route group by permission tier. The active role was
// resolved at login and travels in the token; classification happens here so
// guards never compare raw role-name strings.
func RequireTier(message string, allowed ...access.Tier) fiber.Handler {
	allowedSet := make(map[access.Tier]struct{}, len(allowed))
	for _, t := range allowed {
		allowedSet[t] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("active_role").(string)
		if !ok || role == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Sesión sin rol activo")
		}

		if _, ok := allowedSet[access.ClassifyRole(role)]; ok {
			return c.Next()
		}

		if message == "" {
			message = "No tenés permisos para acceder a este recurso"
		}
		return fiber.NewError(fiber.StatusForbidden, message)
	}
}

// RequireSuperadmin / RequireAdmin are the usual group guards.
func RequireSuperadmin() fiber.Handler {
	return RequireTier("Solo superadmin puede acceder", access.TierSuperadmin)
}

func RequireAdmin() fiber.Handler {
	return RequireTier("Solo admin o superadmin pueden acceder", access.TierAdmin, access.TierSuperadmin)
}
