// internals/middlewares/auth/claim_utils.go
package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UserIDFromLocals returns the authenticated principal ID hydrated by AuthJWT.
func UserIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
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

// SchoolIDFromLocals returns the tenant school bound to the session. Admin
// mutations are always scoped to it.
func SchoolIDFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	v, ok := c.Locals("school_id").(string)
	if !ok || v == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "La sesión no tiene un colegio asignado")
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "Identificador de colegio inválido")
	}
	return id, nil
}
