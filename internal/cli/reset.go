package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/conectarapak/conectar/internal/db"
	"github.com/conectarapak/conectar/internal/models"
	"github.com/conectarapak/conectar/internal/services"
	"gorm.io/gorm"
)

// RunResetRecoveryCommand replaces the recovery code of the user matching
// email and prints the new code once. Intended for operators helping a user
// who lost both session and code.
func RunResetRecoveryCommand(dbPath string, email string) error {
	normalizedEmail := strings.ToLower(strings.TrimSpace(email))
	if normalizedEmail == "" {
		return errors.New("email is required")
	}
	if !services.ValidEmailShape(normalizedEmail) {
		return fmt.Errorf("invalid email address: %s", normalizedEmail)
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	var user models.User
	if err := database.Where("lower(trim(email)) = ?", normalizedEmail).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user %s not found", normalizedEmail)
		}
		return fmt.Errorf("load user: %w", err)
	}

	code, err := services.GenerateRecoveryCode()
	if err != nil {
		return fmt.Errorf("generate recovery code: %w", err)
	}

	authService := services.NewAuthService(db.NewUserRepository(database))
	if err := authService.SetRecoveryCode(user.ID, code); err != nil {
		return fmt.Errorf("update recovery code: %w", err)
	}

	fmt.Println("✅ Recovery code reset successful")
	fmt.Printf("New recovery code: %s\n", code)
	fmt.Println("Share it with the user through a trusted channel; it is shown only once.")

	return nil
}
