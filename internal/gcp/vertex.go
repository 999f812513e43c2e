package gcp

import (
	"context"
	"fmt"

	"cloud.google.com/go/vertexai/genai"
)

// TextModelName is fixed; the proxy endpoint does not expose model selection.
const TextModelName = "gemini-1.5-pro"

// VertexClient holds the pre-configured generative model for the text
// assistant endpoint.
type VertexClient struct {
	TextModel  *genai.GenerativeModel
	baseClient *genai.Client
}

// NewVertexClient creates a new client holding the configured text model.
func NewVertexClient(ctx context.Context, projectID, region string) (*VertexClient, error) {
	if projectID == "" || region == "" {
		return nil, fmt.Errorf("NewVertexClient: projectID and region cannot be empty")
	}

	baseClient, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	textModel := baseClient.GenerativeModel(TextModelName)
	textModel.GenerationConfig = genai.GenerationConfig{
		Temperature: genai.Ptr[float32](0.7),
	}
	textModel.SafetySettings = []*genai.SafetySetting{
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockNone},
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockNone},
	}

	return &VertexClient{
		TextModel:  textModel,
		baseClient: baseClient,
	}, nil
}

func (c *VertexClient) Close() error {
	if c.baseClient != nil {
		return c.baseClient.Close()
	}
	return nil
}
