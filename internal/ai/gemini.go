package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	DefaultTextModel  = "gemini-2.5-flash"
	DefaultImageModel = "imagen-3.0-generate-002"
)

// GeminiClient generates text and images through Google's Gemini API.
type GeminiClient struct {
	client     *genai.Client
	textModel  string
	imageModel string
}

func NewGeminiClient(ctx context.Context, apiKey string, textModel string, imageModel string) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini API key is required")
	}
	if textModel == "" {
		textModel = DefaultTextModel
	}
	if imageModel == "" {
		imageModel = DefaultImageModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiClient{
		client:     client,
		textModel:  textModel,
		imageModel: imageModel,
	}, nil
}

func (c *GeminiClient) GenerateText(ctx context.Context, prompt string, systemInstruction string, history []Turn) (string, []Citation, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		contents = append(contents, genai.NewContentFromText(turn.Text, historyRole(turn.Role)))
	}
	contents = append(contents, genai.NewContentFromText(prompt, genai.RoleUser))

	config := &genai.GenerateContentConfig{}
	if systemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(systemInstruction, genai.RoleUser)
	}

	result, err := c.client.Models.GenerateContent(ctx, c.textModel, contents, config)
	if err != nil {
		return "", nil, fmt.Errorf("gemini generate text: %w", err)
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", nil, errors.New("gemini returned an empty response")
	}

	return text, extractCitations(result), nil
}

func (c *GeminiClient) GenerateImage(ctx context.Context, prompt string, aspectRatio string) (string, error) {
	config := &genai.GenerateImagesConfig{NumberOfImages: 1}
	if aspectRatio != "" {
		config.AspectRatio = aspectRatio
	}

	result, err := c.client.Models.GenerateImages(ctx, c.imageModel, prompt, config)
	if err != nil {
		return "", fmt.Errorf("gemini generate image: %w", err)
	}
	if len(result.GeneratedImages) == 0 || result.GeneratedImages[0].Image == nil {
		return "", errors.New("gemini returned no image")
	}

	return base64.StdEncoding.EncodeToString(result.GeneratedImages[0].Image.ImageBytes), nil
}

func historyRole(role string) genai.Role {
	if role == "model" {
		return genai.RoleModel
	}
	return genai.RoleUser
}

func extractCitations(result *genai.GenerateContentResponse) []Citation {
	if len(result.Candidates) == 0 || result.Candidates[0].GroundingMetadata == nil {
		return nil
	}

	chunks := result.Candidates[0].GroundingMetadata.GroundingChunks
	citations := make([]Citation, 0, len(chunks))
	for _, chunk := range chunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		citations = append(citations, Citation{
			URI:   chunk.Web.URI,
			Title: chunk.Web.Title,
		})
	}
	if len(citations) == 0 {
		return nil
	}
	return citations
}
