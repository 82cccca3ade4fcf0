package models

import "time"

const (
	RoleEntrepreneur    = "entrepreneur"
	RoleInvestorNatural = "investor_natural"
	RoleInvestorLegal   = "investor_legal"
	RoleAdvisor         = "advisor"
)

const (
	DocumentTypeRUT      = "RUT"
	DocumentTypeDNI      = "DNI"
	DocumentTypePassport = "PASSPORT"
)

type User struct {
	ID               uint   `gorm:"primaryKey"`
	Name             string `gorm:"not null"`
	Email            string `gorm:"uniqueIndex"`
	DocumentType     string
	DocumentID       string
	Phone            string
	Role             string `gorm:"not null"`
	AvatarURL        string
	IsVerified       bool `gorm:"not null;default:false"`
	RecoveryCodeHash string
	CreatedAt        time.Time `gorm:"not null"`
}

func IsValidRole(role string) bool {
	switch role {
	case RoleEntrepreneur, RoleInvestorNatural, RoleInvestorLegal, RoleAdvisor:
		return true
	default:
		return false
	}
}

func IsValidDocumentType(documentType string) bool {
	switch documentType {
	case DocumentTypeRUT, DocumentTypeDNI, DocumentTypePassport:
		return true
	default:
		return false
	}
}
