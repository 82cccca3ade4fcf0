package services

import (
	"fmt"
	"net/url"
	"strings"
)

const fallbackAvatarSeed = "conectarapak"

// Identity is the synthesized user record handed to the caller when an
// onboarding run reaches its terminal state. The machine keeps no copy
// after handoff.
type Identity struct {
	Name         string `json:"name"`
	DocumentType string `json:"documentType,omitempty"`
	DocumentID   string `json:"documentId,omitempty"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Role         string `json:"role"`
	AvatarURL    string `json:"avatarUrl"`
	IsVerified   bool   `json:"isVerified"`
}

type IdentityDraft struct {
	Name         string
	DocumentType string
	DocumentID   string
	Email        string
	Phone        string
	Role         string
}

func SynthesizeIdentity(draft IdentityDraft) Identity {
	name := strings.TrimSpace(draft.Name)
	if name == "" {
		name = EmailLocalPart(draft.Email)
	}

	return Identity{
		Name:         name,
		DocumentType: draft.DocumentType,
		DocumentID:   strings.TrimSpace(draft.DocumentID),
		Email:        strings.ToLower(strings.TrimSpace(draft.Email)),
		Phone:        strings.TrimSpace(draft.Phone),
		Role:         draft.Role,
		AvatarURL:    AvatarURLFor(AvatarSeed(draft.Email, draft.DocumentID)),
		IsVerified:   true,
	}
}

// AvatarSeed picks the stable key the avatar is derived from: email first,
// then documentId, then a shared fallback.
func AvatarSeed(email string, documentID string) string {
	if seed := strings.ToLower(strings.TrimSpace(email)); seed != "" {
		return seed
	}
	if seed := strings.TrimSpace(documentID); seed != "" {
		return seed
	}
	return fallbackAvatarSeed
}

func AvatarURLFor(seed string) string {
	return fmt.Sprintf("https://api.dicebear.com/9.x/initials/svg?seed=%s", url.QueryEscape(seed))
}

func EmailLocalPart(email string) string {
	normalized := strings.TrimSpace(email)
	if at := strings.Index(normalized, "@"); at > 0 {
		return normalized[:at]
	}
	return normalized
}
