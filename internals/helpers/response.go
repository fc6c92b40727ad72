// file: internals/helpers/response.go
package helper

import (
	"github.com/gofiber/fiber/v2"
)

/* ===============================
   JSON envelope
=================================*/

func JsonOK(c *fiber.Ctx, message string, data any) error {
	return jsonEnvelope(c, fiber.StatusOK, "success", message, data)
}

func JsonCreated(c *fiber.Ctx, message string, data any) error {
	return jsonEnvelope(c, fiber.StatusCreated, "success", message, data)
}

func JsonUpdated(c *fiber.Ctx, message string, data any) error {
	return jsonEnvelope(c, fiber.StatusOK, "success", message, data)
}

func JsonDeleted(c *fiber.Ctx, message string, data any) error {
	return jsonEnvelope(c, fiber.StatusOK, "success", message, data)
}

func JsonError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"code":    status,
		"status":  "error",
		"message": message,
	})
}

// JsonErrorWithStep tags mutation failures with the step that failed so the
// caller can tell how far the sequence got.
func JsonErrorWithStep(c *fiber.Ctx, status int, step, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"code":    status,
		"status":  "error",
		"step":    step,
		"message": message,
	})
}

func JsonValidationError(c *fiber.Ctx, fieldErrors map[string]string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"code":    fiber.StatusUnprocessableEntity,
		"status":  "error",
		"message": "Validación fallida",
		"errors":  fieldErrors,
	})
}

func JsonList(c *fiber.Ctx, message string, data any, pagination any) error {
	body := fiber.Map{
		"code":    fiber.StatusOK,
		"status":  "success",
		"message": message,
		"data":    data,
	}
	if pagination != nil {
		body["pagination"] = pagination
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

func jsonEnvelope(c *fiber.Ctx, status int, state, message string, data any) error {
	body := fiber.Map{
		"code":    status,
		"status":  state,
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}
