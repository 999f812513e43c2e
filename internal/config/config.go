// Package config loads all runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DefaultMaxPdfFileSize = 25 << 20 // 25 MiB
	DefaultMaxPdfPages    = 50
)

// Config holds everything the process needs: GCP project wiring, the asset
// bucket, AI provider settings and the PDF upload limits.
type Config struct {
	Port           string
	ProjectID      string
	AssetsBucket   string
	VertexAIRegion string

	ImageAPIURL string
	ImageAPIKey string
	ImageModel  string

	YouTubeAPIKey string

	GroupsCollection string
	PagesCollection  string
	PdfCollection    string

	MaxPdfFileSize int64
	MaxPdfPages    int
}

// Load reads configuration from the environment, honoring a local .env file
// if one is present. Missing required settings fail startup.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:           GetEnv("PORT", "8080"),
		ProjectID:      GetEnv("GCP_PROJECT_ID", ""),
		AssetsBucket:   GetEnv("ASSETS_BUCKET", ""),
		VertexAIRegion: GetEnv("VERTEX_AI_REGION", "us-central1"),

		ImageAPIURL: GetEnv("IMAGE_API_URL", "https://api.openai.com/v1/images/generations"),
		ImageAPIKey: GetEnv("IMAGE_API_KEY", ""),
		ImageModel:  GetEnv("IMAGE_MODEL", "gpt-image-1"),

		YouTubeAPIKey: GetEnv("YOUTUBE_API_KEY", ""),

		GroupsCollection: GetEnv("FIRESTORE_GROUPS_COLLECTION", "groups"),
		PagesCollection:  GetEnv("FIRESTORE_PAGES_COLLECTION", "pages"),
		PdfCollection:    GetEnv("FIRESTORE_PDF_COLLECTION", "pdfDocuments"),

		MaxPdfFileSize: getEnvInt64("PDF_MAX_FILE_SIZE", DefaultMaxPdfFileSize),
		MaxPdfPages:    getEnvInt("PDF_MAX_PAGES", DefaultMaxPdfPages),
	}

	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("GCP_PROJECT_ID environment variable must be set")
	}
	if cfg.AssetsBucket == "" {
		return nil, fmt.Errorf("ASSETS_BUCKET environment variable must be set")
	}
	return cfg, nil
}

// GetEnv is a helper to read an environment variable or return a default value.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}
