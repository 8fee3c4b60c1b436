package fetcher

import (
	"context"
	"fmt"

	"github.com/shenikar/coastal_hazard_system/internal/models"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// YouTube ищет видео через YouTube Data API v3
type YouTube struct {
	service *youtube.Service
}

func NewYouTube(ctx context.Context, apiKey string, opts ...option.ClientOption) (*YouTube, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &YouTube{service: svc}, nil
}

func (y *YouTube) Platform() string { return PlatformYouTube }

func (y *YouTube) Fetch(ctx context.Context, query string, limit int) ([]*models.Post, error) {
	if limit < 1 {
		limit = 10
	}
	resp, err := y.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		Order("date").
		MaxResults(int64(min(limit, 50))).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube search: %w", err)
	}

	posts := make([]*models.Post, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Snippet == nil || item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		posts = append(posts, &models.Post{
			Source:    PlatformYouTube,
			Text:      item.Snippet.Title,
			Timestamp: normalizeTimestamp(item.Snippet.PublishedAt),
			URL:       strPtr("https://www.youtube.com/watch?v=" + item.Id.VideoId),
		})
	}
	return posts, nil
}
