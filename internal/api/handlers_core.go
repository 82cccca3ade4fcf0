package api

import (
	"github.com/conectarapak/conectar/internal/models"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) GetRoles(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"roles": models.RoleCatalog()})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	claims, ok := currentClaims(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	user, err := handler.authService.FindByID(claims.UserID)
	if err != nil {
		return apiError(c, fiber.StatusNotFound, "user not found")
	}

	return c.JSON(fiber.Map{
		"id":           user.ID,
		"name":         user.Name,
		"email":        user.Email,
		"documentType": user.DocumentType,
		"documentId":   user.DocumentID,
		"phone":        user.Phone,
		"role":         user.Role,
		"avatarUrl":    user.AvatarURL,
		"isVerified":   user.IsVerified,
	})
}
