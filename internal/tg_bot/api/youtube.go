package api

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// YouTubeWatchURL prefixes a video ID to form a watch link.
const YouTubeWatchURL = "https://www.youtube.com/watch?v="

// YouTubeAPI searches videos through the YouTube Data API v3.
type YouTubeAPI struct {
	service *youtube.Service
	timeout time.Duration
}

// NewYouTubeAPI creates a YouTube client authenticated with apiKey.
// A non-empty endpoint overrides the API base URL.
func NewYouTubeAPI(ctx context.Context, apiKey, endpoint string, timeout time.Duration) (*YouTubeAPI, error) {
	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}

	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &YouTubeAPI{service: service, timeout: timeout}, nil
}

// FirstVideoURL returns the watch URL of the first video matching query,
// or an empty string when nothing matches.
func (y *YouTubeAPI) FirstVideoURL(ctx context.Context, query string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, y.timeout)
	defer cancel()

	resp, err := y.service.Search.List([]string{"id"}).
		Q(query).
		Type("video").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("youtube search %q: %w", query, err)
	}

	for _, item := range resp.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			return YouTubeWatchURL + item.Id.VideoId, nil
		}
	}

	logrus.WithField("query", query).Debug("YouTube search returned no videos")
	return "", nil
}
