package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")
	api.Get("/roles", handler.GetRoles)

	onboarding := api.Group("/onboarding")
	onboarding.Post("", handler.StartOnboarding)
	onboarding.Get("/:flow", handler.OnboardingState)
	onboarding.Post("/:flow/login", handler.SubmitLogin)
	onboarding.Post("/:flow/signup/identity", handler.SubmitSignupIdentity)
	onboarding.Post("/:flow/signup/contact", handler.SubmitSignupContact)
	onboarding.Post("/:flow/signup/back", handler.SignupBack)
	onboarding.Post("/:flow/signup/role", handler.SubmitSignupRole)
	onboarding.Post("/:flow/switch-signup", handler.SwitchToSignup)
	onboarding.Post("/:flow/switch-login", handler.SwitchToLogin)
	onboarding.Post("/:flow/forgot", handler.ForgotAccess)
	onboarding.Post("/:flow/recovery", handler.SubmitRecovery)

	auth := api.Group("/auth")
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	research := api.Group("/research", handler.AuthRequired)
	research.Post("/query", handler.QueryResearch)
	research.Post("/saved", handler.SaveResearch)
	research.Get("/saved", handler.ListResearch)
	research.Get("/saved/:id", handler.RecallResearch)
	research.Delete("/saved/:id", handler.DeleteResearch)
	research.Get("/saved/:id/export", handler.ExportResearch)

	assistant := api.Group("/assistant", handler.AuthRequired)
	assistant.Post("/generate", handler.AssistantGenerate)
	assistant.Post("/image", handler.AssistantImage)
}
