package api

import (
	"errors"
	"strings"
	"time"

	"github.com/conectarapak/conectar/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) StartOnboarding(c *fiber.Ctx) error {
	entry := &flowEntry{}
	entry.machine = services.NewOnboardingMachine(handler.onboardingCompletion(entry))
	flowID := handler.flows.Create(entry)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"flow_id": flowID,
		"state":   entry.machine.State(),
	})
}

func (handler *Handler) OnboardingState(c *fiber.Ctx) error {
	_, entry, err := handler.lookupFlow(c)
	if err != nil {
		return err
	}
	return flowState(c, entry.machine)
}

func (handler *Handler) SubmitLogin(c *fiber.Ctx) error {
	flowID, entry, err := handler.lookupFlow(c)
	if err != nil {
		return err
	}

	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	submitErr := entry.machine.SubmitLogin(strings.TrimSpace(input.Email), input.Role)
	return handler.respondSubmit(c, flowID, entry, submitErr)
}

func (handler *Handler) SubmitSignupIdentity(c *fiber.Ctx) error {
	flowID, entry, err := handler.lookupFlow(c)
	if err != nil {
		return err
	}

	input := identityInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	submitErr := entry.machine.SubmitIdentity(
		strings.TrimSpace(input.Name),
		strings.ToUpper(strings.TrimSpace(input.DocumentType)),
		strings.TrimSpace(input.DocumentID),
	)
	return handler.respondSubmit(c, flowID, entry, submitErr)
}

func (handler *Handler) SubmitSignupContact(c *fiber.Ctx) error {
	flowID, entry, err := handler.lookupFlow(c)
	if err != nil {
		return err
	}

	input := contactInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	submitErr := entry.machine.SubmitContact(strings.TrimSpace(input.Email), strings.TrimSpace(input.Phone))
	return handler.respondSubmit(c, flowID, entry, submitErr)
}

func (handler *Handler) SubmitSignupRole(c *fiber.Ctx) error {
	flowID, entry, err := handler.lookupFlow(c)
	if err != nil {
		return err
	}

	input := roleInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	submitErr := entry.machine.SubmitRole(input.Role)
	return handler.respondSubmit(c, flowID, entry, submitErr)
}

func (handler *Handler) SignupBack(c *fiber.Ctx) error {
	flowID, entry, err := handler.lookupFlow(c)
	if err != nil {
		return err
	}
	return handler.respondSubmit(c, flowID, entry, entry.machine.Back())
}

func (handler *Handler) SwitchToSignup(c *fiber.Ctx) error {
	flowID, entry, err := handler.lookupFlow(c)
	if err != nil {
		return err
	}
	return handler.respondSubmit(c, flowID, entry, entry.machine.SwitchToSignup())
}

func (handler *Handler) SwitchToLogin(c *fiber.Ctx) error {
	flowID, entry, err := handler.lookupFlow(c)
	if err != nil {
		return err
	}
	return handler.respondSubmit(c, flowID, entry, entry.machine.SwitchToLogin())
}

func (handler *Handler) ForgotAccess(c *fiber.Ctx) error {
	flowID, entry, err := handler.lookupFlow(c)
	if err != nil {
		return err
	}
	return handler.respondSubmit(c, flowID, entry, entry.machine.ForgotAccess())
}

func (handler *Handler) SubmitRecovery(c *fiber.Ctx) error {
	flowID, entry, err := handler.lookupFlow(c)
	if err != nil {
		return err
	}

	input := recoveryInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	code := services.NormalizeRecoveryCode(input.RecoveryCode)
	if err := services.ValidateRecoveryCodeFormat(code); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid recovery code")
	}

	user, err := handler.authService.FindUserByRecoveryCode(code)
	if err != nil {
		if errors.Is(err, services.ErrRecoveryCodeNotFound) {
			return apiError(c, fiber.StatusUnauthorized, "recovery code not recognized")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to verify recovery code")
	}

	draft := services.IdentityDraft{
		Name:         user.Name,
		DocumentType: user.DocumentType,
		DocumentID:   user.DocumentID,
		Email:        user.Email,
		Phone:        user.Phone,
		Role:         user.Role,
	}
	return handler.respondSubmit(c, flowID, entry, entry.machine.CompleteRecovery(draft))
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) onboardingCompletion(entry *flowEntry) services.CompletionFunc {
	return func(identity services.Identity) error {
		user, err := handler.authService.ResolveIdentity(identity, time.Now().In(handler.location))
		if err != nil {
			return err
		}

		completed := &completedOnboarding{userID: user.ID, identity: identity}
		if strings.TrimSpace(user.RecoveryCodeHash) == "" {
			code, err := services.GenerateRecoveryCode()
			if err != nil {
				return err
			}
			if err := handler.authService.SetRecoveryCode(user.ID, code); err != nil {
				return err
			}
			completed.recoveryCode = code
		}

		entry.completedUser = completed
		return nil
	}
}

func (handler *Handler) lookupFlow(c *fiber.Ctx) (string, *flowEntry, error) {
	flowID := strings.TrimSpace(c.Params("flow"))
	entry, exists := handler.flows.Get(flowID)
	if !exists {
		return "", nil, fiber.NewError(fiber.StatusNotFound, "onboarding session not found")
	}
	return flowID, entry, nil
}

func (handler *Handler) respondSubmit(c *fiber.Ctx, flowID string, entry *flowEntry, submitErr error) error {
	switch {
	case submitErr == nil:
		if entry.machine.Finished() {
			return handler.respondAuthenticated(c, flowID, entry)
		}
		return flowState(c, entry.machine)
	case errors.Is(submitErr, services.ErrOnboardingValidationFailed):
		return validationError(c, entry.machine)
	case errors.Is(submitErr, services.ErrOnboardingTransitionInvalid):
		return apiError(c, fiber.StatusConflict, "transition not allowed")
	case errors.Is(submitErr, services.ErrOnboardingFinished):
		return apiError(c, fiber.StatusGone, "onboarding already finished")
	default:
		return apiError(c, fiber.StatusInternalServerError, "failed to complete onboarding")
	}
}

func (handler *Handler) respondAuthenticated(c *fiber.Ctx, flowID string, entry *flowEntry) error {
	completed := entry.completedUser
	if completed == nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to complete onboarding")
	}

	if err := handler.setAuthCookie(c, completed.userID, completed.identity.Role); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	handler.flows.Remove(flowID)

	payload := fiber.Map{
		"ok":       true,
		"state":    services.OnboardingStateAuthenticated,
		"identity": completed.identity,
	}
	if completed.recoveryCode != "" {
		payload["recovery_code"] = completed.recoveryCode
	}
	return c.JSON(payload)
}
