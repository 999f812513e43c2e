package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/devhardik21/RootStudy/internal/apperr"
	"github.com/devhardik21/RootStudy/internal/assets"
)

// GeneratedImage is the result of one image generation: the durable URL of
// the stored image and the object id it lives under.
type GeneratedImage struct {
	URL      string
	PublicID string
}

// ImageGenerator proxies prompts to an OpenAI-compatible image generation API
// and persists the returned image in the asset store.
type ImageGenerator struct {
	httpClient *http.Client
	apiURL     string
	apiKey     string
	model      string
	assets     assets.Store
}

func NewImageGenerator(apiURL, apiKey, model string, assetStore assets.Store) *ImageGenerator {
	return &ImageGenerator{
		httpClient: &http.Client{Timeout: 2 * time.Minute},
		apiURL:     apiURL,
		apiKey:     apiKey,
		model:      model,
		assets:     assetStore,
	}
}

type imageAPIRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size"`
}

type imageAPIResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
		URL     string `json:"url"`
	} `json:"data"`
}

// GenerateImage forwards the prompt to the image API, decodes the base64
// payload and stores the bytes via the asset store.
func (g *ImageGenerator) GenerateImage(ctx context.Context, prompt string) (GeneratedImage, error) {
	if strings.TrimSpace(prompt) == "" {
		return GeneratedImage{}, apperr.BadRequest("prompt is required")
	}
	if g.apiKey == "" {
		return GeneratedImage{}, apperr.Service("image generation is not configured", nil)
	}

	body, err := json.Marshal(imageAPIRequest{
		Model:  g.model,
		Prompt: prompt,
		N:      1,
		Size:   "1024x1024",
	})
	if err != nil {
		return GeneratedImage{}, apperr.Internal("failed to encode image request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL, bytes.NewReader(body))
	if err != nil {
		return GeneratedImage{}, apperr.Internal("failed to build image request", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return GeneratedImage{}, apperr.Service("image generation request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return GeneratedImage{}, apperr.Service("failed to read image response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return GeneratedImage{}, apperr.Service(
			fmt.Sprintf("image API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))), nil)
	}

	var parsed imageAPIResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return GeneratedImage{}, apperr.Service("failed to parse image response", err)
	}
	if len(parsed.Data) == 0 || parsed.Data[0].B64JSON == "" {
		return GeneratedImage{}, apperr.Service("no image generated", nil)
	}

	raw, err := base64.StdEncoding.DecodeString(parsed.Data[0].B64JSON)
	if err != nil {
		return GeneratedImage{}, apperr.Service("failed to decode image payload", err)
	}

	asset, err := g.assets.UploadBytes(ctx, raw, "image/png")
	if err != nil {
		return GeneratedImage{}, err
	}
	return GeneratedImage{URL: asset.URL, PublicID: asset.ID}, nil
}
