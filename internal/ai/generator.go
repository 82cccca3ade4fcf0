package ai

import (
	"context"
	"errors"
)

var ErrGeneratorDisabled = errors.New("generative client is disabled")

// Turn is one prior exchange in a conversation, with Role "user" or "model".
type Turn struct {
	Role string
	Text string
}

// Citation is an opaque web reference returned alongside generated text.
type Citation struct {
	URI   string
	Title string
}

// Generator is the single seam to the external generative service. Calls may
// be slow and may fail; callers convert failures to fallback values and never
// retry automatically.
type Generator interface {
	GenerateText(ctx context.Context, prompt string, systemInstruction string, history []Turn) (string, []Citation, error)
	GenerateImage(ctx context.Context, prompt string, aspectRatio string) (string, error)
}

// Disabled stands in for the Gemini client when no API key is configured.
// Every call fails fast so the service layer serves its fallbacks.
type Disabled struct{}

func (Disabled) GenerateText(context.Context, string, string, []Turn) (string, []Citation, error) {
	return "", nil, ErrGeneratorDisabled
}

func (Disabled) GenerateImage(context.Context, string, string) (string, error) {
	return "", ErrGeneratorDisabled
}
