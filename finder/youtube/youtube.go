package youtube

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"market-scout/config"
	"market-scout/models"
)

const watchURLPrefix = "https://www.youtube.com/watch?v="

// Client wraps the YouTube Data API for candidate search.
type Client struct {
	service *youtube.Service
	cfg     *config.Config
}

// NewClient creates a YouTube API client from the configured key.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	if cfg.YouTubeAPIKey == "" {
		return nil, fmt.Errorf("youtube: missing API key: set YOUTUBE_API_KEY")
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(cfg.YouTubeAPIKey))
	if err != nil {
		return nil, fmt.Errorf("youtube: create service: %w", err)
	}

	return &Client{service: service, cfg: cfg}, nil
}

// Search runs a relevance-ordered video search constrained to English and to
// uploads within the configured recency window, then batch-fetches duration
// and statistics for the returned IDs. Results keep the API's order.
func (c *Client) Search(ctx context.Context, query string) ([]models.VideoCandidate, error) {
	publishedAfter := time.Now().
		AddDate(0, 0, -c.cfg.PublishedAfterDays).
		UTC().
		Format(time.RFC3339)

	searchResp, err := c.service.Search.List([]string{"id", "snippet"}).
		Context(ctx).
		Q(query).
		MaxResults(c.cfg.SearchMaxResults).
		Type("video").
		PublishedAfter(publishedAfter).
		RelevanceLanguage("en").
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube: search: %w", err)
	}

	videoIDs := make([]string, 0, len(searchResp.Items))
	for _, item := range searchResp.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			videoIDs = append(videoIDs, item.Id.VideoId)
		}
	}
	if len(videoIDs) == 0 {
		return nil, nil
	}

	videosResp, err := c.service.Videos.List([]string{"contentDetails", "statistics", "snippet"}).
		Context(ctx).
		Id(strings.Join(videoIDs, ",")).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube: video details: %w", err)
	}

	candidates := make([]models.VideoCandidate, 0, len(videosResp.Items))
	for _, v := range videosResp.Items {
		if v.Snippet == nil || v.ContentDetails == nil {
			continue
		}

		publishedAt, _ := time.Parse(time.RFC3339, v.Snippet.PublishedAt)

		var views int64
		if v.Statistics != nil {
			views = int64(v.Statistics.ViewCount)
		}

		candidates = append(candidates, models.VideoCandidate{
			ID:           v.Id,
			Title:        v.Snippet.Title,
			ChannelTitle: v.Snippet.ChannelTitle,
			PublishedAt:  publishedAt,
			Duration:     v.ContentDetails.Duration,
			ViewCount:    views,
			URL:          watchURLPrefix + v.Id,
		})
	}

	return candidates, nil
}
