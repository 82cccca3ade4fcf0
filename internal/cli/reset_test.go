package cli

import (
	"path/filepath"
	"testing"

	"github.com/conectarapak/conectar/internal/db"
	"github.com/conectarapak/conectar/internal/models"
)

func TestRunResetRecoveryCommandRejectsBadEmail(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "conectar-cli-test.db")

	if err := RunResetRecoveryCommand(databasePath, "   "); err == nil {
		t.Fatal("expected an error for a missing email")
	}
	if err := RunResetRecoveryCommand(databasePath, "not-an-email"); err == nil {
		t.Fatal("expected an error for a malformed email")
	}
}

func TestRunResetRecoveryCommandUnknownUser(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "conectar-cli-test.db")

	if err := RunResetRecoveryCommand(databasePath, "nadie@conectar.cl"); err == nil {
		t.Fatal("expected an error for an unknown user")
	}
}

func TestRunResetRecoveryCommandReplacesHash(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "conectar-cli-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	user := models.User{
		Name:             "Ana",
		Email:            "ana@conectar.cl",
		Role:             models.RoleEntrepreneur,
		RecoveryCodeHash: "old-hash",
	}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}

	if err := RunResetRecoveryCommand(databasePath, "Ana@Conectar.cl"); err != nil {
		t.Fatalf("RunResetRecoveryCommand() unexpected error: %v", err)
	}

	reopened, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	var updated models.User
	if err := reopened.First(&updated, user.ID).Error; err != nil {
		t.Fatalf("load updated user: %v", err)
	}
	if updated.RecoveryCodeHash == "old-hash" || updated.RecoveryCodeHash == "" {
		t.Fatalf("expected a fresh recovery code hash, got %q", updated.RecoveryCodeHash)
	}
}
