package api

import (
	"errors"
	"strings"

	"github.com/conectarapak/conectar/internal/models"
	"github.com/conectarapak/conectar/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) QueryResearch(c *fiber.Ctx) error {
	input := researchQueryInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	systemInstruction := ""
	if claims, ok := currentClaims(c); ok {
		if profile, found := models.RoleProfileFor(claims.Role); found {
			systemInstruction = profile.SystemInstruction
		}
	}

	result, err := handler.library.Query(c.UserContext(), strings.TrimSpace(input.Question), systemInstruction)
	if err != nil {
		if errors.Is(err, services.ErrResearchQueryEmpty) {
			return apiError(c, fiber.StatusBadRequest, "question must not be empty")
		}
		if errors.Is(err, services.ErrResearchSuperseded) {
			return apiError(c, fiber.StatusConflict, "query superseded by a newer request")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to run research query")
	}

	return c.JSON(result)
}

func (handler *Handler) SaveResearch(c *fiber.Ctx) error {
	input := saveResearchInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.Unavailable {
		return apiError(c, fiber.StatusUnprocessableEntity, "cannot save an unavailable result")
	}

	record, err := handler.library.Save(strings.TrimSpace(input.Query), services.ResearchResult{
		Text:    input.Text,
		Sources: input.Sources,
	})
	if err != nil {
		if errors.Is(err, services.ErrResearchQueryEmpty) {
			return apiError(c, fiber.StatusBadRequest, "query must not be empty")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to save research")
	}

	return c.Status(fiber.StatusCreated).JSON(record)
}

func (handler *Handler) ListResearch(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"records": handler.library.List()})
}

func (handler *Handler) RecallResearch(c *fiber.Ctx) error {
	record, found := handler.library.Recall(c.Params("id"))
	if !found {
		return apiError(c, fiber.StatusNotFound, "saved research not found")
	}
	return c.JSON(record)
}

func (handler *Handler) DeleteResearch(c *fiber.Ctx) error {
	if err := handler.library.Delete(c.Params("id")); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to delete research")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) ExportResearch(c *fiber.Ctx) error {
	record, found := handler.library.Recall(c.Params("id"))
	if !found {
		return apiError(c, fiber.StatusNotFound, "saved research not found")
	}

	document := services.RenderResearchPrintDocument(record, handler.location)
	c.Type("html", "utf-8")
	return c.SendString(document)
}
