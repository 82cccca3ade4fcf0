package api

import (
	"strings"

	"github.com/conectarapak/conectar/internal/ai"
	"github.com/conectarapak/conectar/internal/models"
	"github.com/gofiber/fiber/v2"
)

const assistantUnavailableMessage = "El asistente no está disponible en este momento. Inténtalo nuevamente más tarde."

func (handler *Handler) AssistantGenerate(c *fiber.Ctx) error {
	input := assistantInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if strings.TrimSpace(input.Prompt) == "" {
		return apiError(c, fiber.StatusBadRequest, "prompt must not be empty")
	}

	systemInstruction := ""
	if claims, ok := currentClaims(c); ok {
		if profile, found := models.RoleProfileFor(claims.Role); found {
			systemInstruction = profile.SystemInstruction
		}
	}

	history := make([]ai.Turn, 0, len(input.History))
	for _, turn := range input.History {
		history = append(history, ai.Turn{Role: turn.Role, Text: turn.Text})
	}

	text, _, err := handler.generator.GenerateText(c.UserContext(), input.Prompt, systemInstruction, history)
	if err != nil {
		return c.JSON(fiber.Map{"text": assistantUnavailableMessage, "unavailable": true})
	}
	return c.JSON(fiber.Map{"text": text})
}

func (handler *Handler) AssistantImage(c *fiber.Ctx) error {
	input := assistantImageInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if strings.TrimSpace(input.Prompt) == "" {
		return apiError(c, fiber.StatusBadRequest, "prompt must not be empty")
	}

	image, err := handler.generator.GenerateImage(c.UserContext(), input.Prompt, input.AspectRatio)
	if err != nil {
		return c.JSON(fiber.Map{"image": nil, "unavailable": true})
	}
	return c.JSON(fiber.Map{"image": image})
}
