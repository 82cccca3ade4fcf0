package api

import "github.com/conectarapak/conectar/internal/models"

type loginInput struct {
	Email string `json:"email" form:"email"`
	Role  string `json:"role" form:"role"`
}

type identityInput struct {
	Name         string `json:"name" form:"name"`
	DocumentType string `json:"document_type" form:"document_type"`
	DocumentID   string `json:"document_id" form:"document_id"`
}

type contactInput struct {
	Email string `json:"email" form:"email"`
	Phone string `json:"phone" form:"phone"`
}

type roleInput struct {
	Role string `json:"role" form:"role"`
}

type recoveryInput struct {
	RecoveryCode string `json:"recovery_code" form:"recovery_code"`
}

type researchQueryInput struct {
	Question string `json:"question" form:"question"`
}

type saveResearchInput struct {
	Query       string                  `json:"query"`
	Text        string                  `json:"text"`
	Sources     []models.ResearchSource `json:"sources"`
	Unavailable bool                    `json:"unavailable"`
}

type assistantInput struct {
	Prompt  string          `json:"prompt"`
	History []assistantTurn `json:"history"`
}

type assistantTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type assistantImageInput struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspect_ratio"`
}
