package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/devhardik21/RootStudy/internal/ai"
	"github.com/devhardik21/RootStudy/internal/apperr"
	"github.com/devhardik21/RootStudy/internal/models"
)

// TextGenerator, ImageGenerator and VideoSuggester are the proxy surfaces the
// assistant routes need.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (ai.GeneratedImage, error)
}

type VideoSuggester interface {
	Suggest(ctx context.Context, topic string) ([]models.YouTubeVideo, error)
}

type AIHandler struct {
	text   TextGenerator
	image  ImageGenerator
	videos VideoSuggester
}

func NewAIHandler(text TextGenerator, image ImageGenerator, videos VideoSuggester) *AIHandler {
	return &AIHandler{text: text, image: image, videos: videos}
}

// GenerateText handles POST /api/text.
func (h *AIHandler) GenerateText(c *gin.Context) {
	var req models.TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.BadRequest("prompt is required"))
		return
	}

	text, err := h.text.GenerateText(c.Request.Context(), req.Prompt)
	if err != nil {
		slog.Error("Text generation failed.", "error", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.TextResponse{Text: text})
}

// GenerateImage handles POST /api/image.
func (h *AIHandler) GenerateImage(c *gin.Context) {
	var req models.ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.BadRequest("prompt is required"))
		return
	}

	img, err := h.image.GenerateImage(c.Request.Context(), req.Prompt)
	if err != nil {
		slog.Error("Image generation failed.", "error", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.ImageResponse{
		Message:  "Image generated successfully",
		ImageURL: img.URL,
		PublicID: img.PublicID,
	})
}

// SuggestVideos handles POST /api/youtube.
func (h *AIHandler) SuggestVideos(c *gin.Context) {
	var req models.YouTubeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.BadRequest("topic is required"))
		return
	}

	videos, err := h.videos.Suggest(c.Request.Context(), req.Topic)
	if err != nil {
		slog.Error("Video suggestion failed.", "topic", req.Topic, "error", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.YouTubeResponse{
		Message: "Videos fetched successfully",
		Topic:   req.Topic,
		Count:   len(videos),
		Videos:  videos,
	})
}
