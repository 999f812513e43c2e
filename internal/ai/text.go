// Package ai implements the stateless proxies behind the assistant endpoints:
// text generation, image generation and video suggestion. Each validates its
// input, calls exactly one upstream API and maps the happy-path field into a
// uniform response. No retries, no caching.
package ai

import (
	"context"
	"strings"

	"cloud.google.com/go/vertexai/genai"

	"github.com/devhardik21/RootStudy/internal/apperr"
	"github.com/devhardik21/RootStudy/internal/gcp"
)

// TextGenerator proxies prompt requests to the fixed Vertex AI text model.
type TextGenerator struct {
	client *gcp.VertexClient
}

func NewTextGenerator(client *gcp.VertexClient) *TextGenerator {
	return &TextGenerator{client: client}
}

// GenerateText forwards the prompt and returns the first candidate's text.
func (g *TextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", apperr.BadRequest("prompt is required")
	}
	if g.client == nil {
		return "", apperr.Service("text generation is not configured", nil)
	}

	resp, err := g.client.TextModel.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", apperr.Service("text generation failed", err)
	}

	text := extractText(resp)
	if text == "" {
		return "No response generated.", nil
	}
	return text, nil
}

// extractText robustly pulls the text parts out of a model response.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(b.String())
}
