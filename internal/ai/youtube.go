package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/devhardik21/RootStudy/internal/apperr"
	"github.com/devhardik21/RootStudy/internal/models"
)

// SuggestedVideoCount is fixed; the endpoint does not expose paging.
const SuggestedVideoCount = 6

// VideoSuggester proxies topic searches to the YouTube Data API.
type VideoSuggester struct {
	svc *youtube.Service
}

func NewVideoSuggester(ctx context.Context, apiKey string) (*VideoSuggester, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("a YouTube API key must be provided")
	}
	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &VideoSuggester{svc: svc}, nil
}

// Suggest searches for embeddable videos on the topic.
func (v *VideoSuggester) Suggest(ctx context.Context, topic string) ([]models.YouTubeVideo, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, apperr.BadRequest("topic is required")
	}
	if v == nil || v.svc == nil {
		return nil, apperr.Service("video search is not configured", nil)
	}

	resp, err := v.svc.Search.List([]string{"snippet"}).
		Q(topic).
		Type("video").
		VideoEmbeddable("true").
		SafeSearch("strict").
		MaxResults(SuggestedVideoCount).
		Context(ctx).
		Do()
	if err != nil {
		return nil, apperr.Service("video search failed", err)
	}

	videos := make([]models.YouTubeVideo, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		thumbnail := ""
		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.Medium != nil {
			thumbnail = item.Snippet.Thumbnails.Medium.Url
		}
		videos = append(videos, models.YouTubeVideo{
			VideoID:      item.Id.VideoId,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			Thumbnail:    thumbnail,
			ChannelTitle: item.Snippet.ChannelTitle,
			PublishedAt:  item.Snippet.PublishedAt,
			VideoURL:     "https://www.youtube.com/watch?v=" + item.Id.VideoId,
			EmbedURL:     "https://www.youtube.com/embed/" + item.Id.VideoId,
		})
	}
	return videos, nil
}
