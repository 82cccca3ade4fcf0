package api

import (
	"github.com/conectarapak/conectar/internal/services"
	"github.com/gofiber/fiber/v2"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func validationError(c *fiber.Ctx, machine *services.OnboardingMachine) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":        machine.FirstError(),
		"field_errors": machine.FieldErrors(),
		"state":        machine.State(),
	})
}

func flowState(c *fiber.Ctx, machine *services.OnboardingMachine) error {
	return c.JSON(fiber.Map{"ok": true, "state": machine.State()})
}
