package services

import (
	"errors"
	"sync"
)

type OnboardingState string

const (
	OnboardingStateLogin          OnboardingState = "login"
	OnboardingStateSignupIdentity OnboardingState = "signup_identity"
	OnboardingStateSignupContact  OnboardingState = "signup_contact"
	OnboardingStateRoleSelection  OnboardingState = "role_selection"
	OnboardingStateRecovery       OnboardingState = "recovery"
	OnboardingStateAuthenticated  OnboardingState = "authenticated"
)

var (
	ErrOnboardingTransitionInvalid = errors.New("onboarding transition not allowed")
	ErrOnboardingValidationFailed  = errors.New("onboarding validation failed")
	ErrOnboardingFinished          = errors.New("onboarding already finished")
)

// CompletionFunc receives the synthesized identity exactly once per
// successful run. Returning an error keeps the machine in its current state
// so the submit can be retried.
type CompletionFunc func(Identity) error

// OnboardingMachine drives one login/signup/recovery session. Signup steps
// are reachable only in order: identity, then contact, then role selection.
// The machine holds no identity once the completion callback has fired.
// Submits serialize on mu, including the completion callback, so a double
// submit either waits its turn or lands on finished; the callback must not
// call back into the machine.
type OnboardingMachine struct {
	mu          sync.Mutex
	state       OnboardingState
	draft       IdentityDraft
	fieldErrors FieldErrors
	errorOrder  []string
	finished    bool
	onComplete  CompletionFunc
}

func NewOnboardingMachine(onComplete CompletionFunc) *OnboardingMachine {
	if onComplete == nil {
		onComplete = func(Identity) error { return nil }
	}
	return &OnboardingMachine{
		state:      OnboardingStateLogin,
		onComplete: onComplete,
	}
}

func (machine *OnboardingMachine) State() OnboardingState {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	return machine.state
}

func (machine *OnboardingMachine) Finished() bool {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	return machine.finished
}

func (machine *OnboardingMachine) FieldErrors() FieldErrors {
	machine.mu.Lock()
	defer machine.mu.Unlock()

	copied := make(FieldErrors, len(machine.fieldErrors))
	for field, message := range machine.fieldErrors {
		copied[field] = message
	}
	return copied
}

// FirstError returns the message of the highest-priority failing field from
// the last rejected submit, or an empty string.
func (machine *OnboardingMachine) FirstError() string {
	machine.mu.Lock()
	defer machine.mu.Unlock()
	return FirstFieldError(machine.fieldErrors, machine.errorOrder)
}

func (machine *OnboardingMachine) SwitchToSignup() error {
	machine.mu.Lock()
	defer machine.mu.Unlock()

	if machine.finished {
		return ErrOnboardingFinished
	}
	if machine.state != OnboardingStateLogin {
		return ErrOnboardingTransitionInvalid
	}
	machine.state = OnboardingStateSignupIdentity
	machine.clearErrorsLocked()
	return nil
}

func (machine *OnboardingMachine) SwitchToLogin() error {
	machine.mu.Lock()
	defer machine.mu.Unlock()

	if machine.finished {
		return ErrOnboardingFinished
	}
	machine.state = OnboardingStateLogin
	machine.draft = IdentityDraft{}
	machine.clearErrorsLocked()
	return nil
}

func (machine *OnboardingMachine) ForgotAccess() error {
	machine.mu.Lock()
	defer machine.mu.Unlock()

	if machine.finished {
		return ErrOnboardingFinished
	}
	if machine.state != OnboardingStateLogin {
		return ErrOnboardingTransitionInvalid
	}
	machine.state = OnboardingStateRecovery
	machine.clearErrorsLocked()
	return nil
}

func (machine *OnboardingMachine) Back() error {
	machine.mu.Lock()
	defer machine.mu.Unlock()

	if machine.finished {
		return ErrOnboardingFinished
	}
	if machine.state != OnboardingStateSignupContact {
		return ErrOnboardingTransitionInvalid
	}
	machine.state = OnboardingStateSignupIdentity
	machine.clearErrorsLocked()
	return nil
}

func (machine *OnboardingMachine) SubmitLogin(email string, role string) error {
	machine.mu.Lock()
	defer machine.mu.Unlock()

	if machine.finished {
		return ErrOnboardingFinished
	}
	if machine.state != OnboardingStateLogin {
		return ErrOnboardingTransitionInvalid
	}

	if fieldErrors := ValidateLoginInput(email, role); fieldErrors != nil {
		machine.rejectLocked(fieldErrors, loginFieldOrder)
		return ErrOnboardingValidationFailed
	}

	draft := IdentityDraft{Email: email, Role: role}
	return machine.finalizeLocked(draft)
}

func (machine *OnboardingMachine) SubmitIdentity(name string, documentType string, documentID string) error {
	machine.mu.Lock()
	defer machine.mu.Unlock()

	if machine.finished {
		return ErrOnboardingFinished
	}
	if machine.state != OnboardingStateSignupIdentity {
		return ErrOnboardingTransitionInvalid
	}

	if fieldErrors := ValidateIdentityInput(name, documentType, documentID); fieldErrors != nil {
		machine.rejectLocked(fieldErrors, identityFieldOrder)
		return ErrOnboardingValidationFailed
	}

	machine.draft.Name = name
	machine.draft.DocumentType = documentType
	machine.draft.DocumentID = documentID
	machine.state = OnboardingStateSignupContact
	machine.clearErrorsLocked()
	return nil
}

func (machine *OnboardingMachine) SubmitContact(email string, phone string) error {
	machine.mu.Lock()
	defer machine.mu.Unlock()

	if machine.finished {
		return ErrOnboardingFinished
	}
	if machine.state != OnboardingStateSignupContact {
		return ErrOnboardingTransitionInvalid
	}

	if fieldErrors := ValidateContactInput(email, phone); fieldErrors != nil {
		machine.rejectLocked(fieldErrors, contactFieldOrder)
		return ErrOnboardingValidationFailed
	}

	machine.draft.Email = email
	machine.draft.Phone = phone
	machine.state = OnboardingStateRoleSelection
	machine.clearErrorsLocked()
	return nil
}

func (machine *OnboardingMachine) SubmitRole(role string) error {
	machine.mu.Lock()
	defer machine.mu.Unlock()

	if machine.finished {
		return ErrOnboardingFinished
	}
	if machine.state != OnboardingStateRoleSelection {
		return ErrOnboardingTransitionInvalid
	}

	if fieldErrors := ValidateRoleSelection(role); fieldErrors != nil {
		machine.rejectLocked(fieldErrors, roleFieldOrder)
		return ErrOnboardingValidationFailed
	}

	draft := machine.draft
	draft.Role = role
	return machine.finalizeLocked(draft)
}

// CompleteRecovery authenticates a recovery-state session with a draft the
// caller resolved from a valid recovery code.
func (machine *OnboardingMachine) CompleteRecovery(draft IdentityDraft) error {
	machine.mu.Lock()
	defer machine.mu.Unlock()

	if machine.finished {
		return ErrOnboardingFinished
	}
	if machine.state != OnboardingStateRecovery {
		return ErrOnboardingTransitionInvalid
	}
	return machine.finalizeLocked(draft)
}

func (machine *OnboardingMachine) finalizeLocked(draft IdentityDraft) error {
	identity := SynthesizeIdentity(draft)
	if err := machine.onComplete(identity); err != nil {
		return err
	}

	machine.state = OnboardingStateAuthenticated
	machine.finished = true
	machine.draft = IdentityDraft{}
	machine.clearErrorsLocked()
	return nil
}

func (machine *OnboardingMachine) rejectLocked(fieldErrors FieldErrors, order []string) {
	machine.fieldErrors = fieldErrors
	machine.errorOrder = order
}

func (machine *OnboardingMachine) clearErrorsLocked() {
	machine.fieldErrors = nil
	machine.errorOrder = nil
}
