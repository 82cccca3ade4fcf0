package api

import "github.com/gofiber/fiber/v2"

const contextClaimsKey = "conectar_claims"

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	claims, err := handler.parseSessionToken(c.Cookies(authCookieName))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	c.Locals(contextClaimsKey, claims)
	return c.Next()
}

func currentClaims(c *fiber.Ctx) (authClaims, bool) {
	claims, ok := c.Locals(contextClaimsKey).(authClaims)
	return claims, ok
}
