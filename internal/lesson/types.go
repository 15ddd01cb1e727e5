package lesson

import (
	"context"
	"time"
)

// Lesson is an assembled multi-part lesson. It is not modified after
// Generate returns it.
type Lesson struct {
	ID        string    `json:"id"`
	Topic     string    `json:"topic"`
	Subtopics []string  `json:"subtopics"`
	Content   string    `json:"content"`
	Images    []string  `json:"images"`
	Videos    []Video   `json:"videos"`
	CreatedAt time.Time `json:"created_at"`
}

// Video is a related tutorial video.
type Video struct {
	Title        string `json:"title"`
	URL          string `json:"url"`
	Description  string `json:"description,omitempty"`
	Duration     string `json:"duration,omitempty"`
	ViewCount    int64  `json:"view_count,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// Request is the input to Service.Generate.
type Request struct {
	Topic  string
	Depth  string
	Source string
}

// ImageResolver turns a short descriptor into an image URL. ok is false when
// nothing usable was found; implementations do not return errors.
type ImageResolver interface {
	Resolve(ctx context.Context, query string) (url string, ok bool)
}

// VideoFinder looks up tutorial videos for a topic.
type VideoFinder interface {
	FindVideos(ctx context.Context, topic string) ([]Video, error)
}
