package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/conectarapak/conectar/internal/security"
)

var ErrRecoveryCodeFormatInvalid = errors.New("recovery code format invalid")

var recoveryCodeFormatRegex = regexp.MustCompile(`^CONECTA-[A-Z0-9]{4}-[A-Z0-9]{4}-[A-Z0-9]{4}$`)

func ValidateRecoveryCodeFormat(code string) error {
	if !recoveryCodeFormatRegex.MatchString(strings.TrimSpace(code)) {
		return ErrRecoveryCodeFormatInvalid
	}
	return nil
}

func NormalizeRecoveryCode(raw string) string {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, " ", "")
	normalized = strings.ReplaceAll(normalized, "-", "")
	normalized = strings.TrimPrefix(normalized, "CONECTA")
	if len(normalized) != 12 {
		return strings.ToUpper(strings.TrimSpace(raw))
	}
	return fmt.Sprintf("CONECTA-%s-%s-%s", normalized[:4], normalized[4:8], normalized[8:12])
}

func GenerateRecoveryCode() (string, error) {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	value, err := security.RandomString(12, alphabet)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("CONECTA-%s-%s-%s", value[:4], value[4:8], value[8:12]), nil
}
