package services

import (
	"regexp"
	"strings"

	"github.com/conectarapak/conectar/internal/models"
)

var emailShapeRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
var rutShapeRegex = regexp.MustCompile(`^[0-9]+[0-9kK]$`)

const rutMinCleanedLength = 8

// FieldErrors maps a submitted field name to a user-correctable message.
// The map is never surfaced directly: FirstFieldError picks the message to
// show using an explicit priority order, so the result does not depend on
// map iteration order.
type FieldErrors map[string]string

var loginFieldOrder = []string{"email", "role"}
var identityFieldOrder = []string{"name", "documentType", "documentId"}
var contactFieldOrder = []string{"email", "phone"}
var roleFieldOrder = []string{"role"}

func FirstFieldError(fieldErrors FieldErrors, order []string) string {
	for _, field := range order {
		if message, exists := fieldErrors[field]; exists {
			return message
		}
	}
	return ""
}

func ValidateLoginInput(email string, role string) FieldErrors {
	fieldErrors := FieldErrors{}
	if strings.TrimSpace(email) == "" {
		fieldErrors["email"] = "ingresa tu correo o identificador"
	}
	if !models.IsValidRole(role) {
		fieldErrors["role"] = "selecciona un perfil válido"
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

func ValidateIdentityInput(name string, documentType string, documentID string) FieldErrors {
	fieldErrors := FieldErrors{}
	if strings.TrimSpace(name) == "" {
		fieldErrors["name"] = "ingresa tu nombre o razón social"
	}
	if !models.IsValidDocumentType(documentType) {
		fieldErrors["documentType"] = "selecciona un tipo de documento"
	}
	cleaned := strings.TrimSpace(documentID)
	if cleaned == "" {
		fieldErrors["documentId"] = "ingresa tu documento de identidad"
	} else if documentType == models.DocumentTypeRUT && !IsValidRUTShape(documentID) {
		fieldErrors["documentId"] = "el RUT ingresado no es válido"
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

func ValidateContactInput(email string, phone string) FieldErrors {
	fieldErrors := FieldErrors{}
	if !emailShapeRegex.MatchString(strings.TrimSpace(email)) {
		fieldErrors["email"] = "ingresa un correo válido"
	}
	if strings.TrimSpace(phone) == "" {
		fieldErrors["phone"] = "ingresa un teléfono de contacto"
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

func ValidateRoleSelection(role string) FieldErrors {
	if !models.IsValidRole(role) {
		return FieldErrors{"role": "selecciona un perfil para continuar"}
	}
	return nil
}

// CleanRUT keeps digits and check letters, dropping dots, dashes and any
// other separator the user typed.
func CleanRUT(raw string) string {
	var builder strings.Builder
	for _, character := range raw {
		if (character >= '0' && character <= '9') || character == 'k' || character == 'K' {
			builder.WriteRune(character)
		}
	}
	return builder.String()
}

// IsValidRUTShape checks length and last-character shape only. The modulo-11
// check digit is deliberately not verified, matching the platform's intake
// behavior of accepting any plausibly shaped RUT.
func IsValidRUTShape(raw string) bool {
	cleaned := CleanRUT(raw)
	if len(cleaned) < rutMinCleanedLength {
		return false
	}
	return rutShapeRegex.MatchString(cleaned)
}

func ValidEmailShape(email string) bool {
	return emailShapeRegex.MatchString(strings.TrimSpace(email))
}
