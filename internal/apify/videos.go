package apify

import (
	"context"
	"fmt"

	"github.com/abhisek/teachme/internal/lesson"
)

// DefaultVideoActor is the YouTube scraper.
const DefaultVideoActor = "h7sDV53CddomktSi5"

const maxVideos = 3

type videoInput struct {
	SearchQueries     []string `json:"searchQueries"`
	MaxResults        int      `json:"maxResults"`
	MaxResultsShorts  int      `json:"maxResultsShorts"`
	MaxResultStreams  int      `json:"maxResultStreams"`
	StartURLs         []string `json:"startUrls"`
	SubtitlesLanguage string   `json:"subtitlesLanguage"`
	SubtitlesFormat   string   `json:"subtitlesFormat"`
}

type videoItem struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	Description  string `json:"description"`
	Duration     string `json:"duration"`
	ViewCount    int64  `json:"viewCount"`
	ThumbnailURL string `json:"thumbnailUrl"`
}

// VideoFinder searches YouTube for tutorial videos on a topic.
type VideoFinder struct {
	client *Client
	actor  string
}

// NewVideoFinder creates a finder. An empty actor selects DefaultVideoActor.
func NewVideoFinder(client *Client, actor string) *VideoFinder {
	if actor == "" {
		actor = DefaultVideoActor
	}
	return &VideoFinder{client: client, actor: actor}
}

// FindVideos returns up to three videos for "learn <topic> tutorial",
// excluding shorts and live streams.
func (f *VideoFinder) FindVideos(ctx context.Context, topic string) ([]lesson.Video, error) {
	var items []videoItem
	err := f.client.RunSync(ctx, f.actor, videoInput{
		SearchQueries:     []string{fmt.Sprintf("learn %s tutorial", topic)},
		MaxResults:        maxVideos,
		MaxResultsShorts:  0,
		MaxResultStreams:  0,
		StartURLs:         []string{},
		SubtitlesLanguage: "any",
		SubtitlesFormat:   "srt",
	}, &items)
	if err != nil {
		return nil, err
	}

	videos := make([]lesson.Video, 0, len(items))
	for _, it := range items {
		if it.URL == "" {
			continue
		}
		videos = append(videos, lesson.Video{
			Title:        it.Title,
			URL:          it.URL,
			Description:  it.Description,
			Duration:     it.Duration,
			ViewCount:    it.ViewCount,
			ThumbnailURL: it.ThumbnailURL,
		})
		if len(videos) == maxVideos {
			break
		}
	}
	return videos, nil
}

var _ lesson.VideoFinder = (*VideoFinder)(nil)
