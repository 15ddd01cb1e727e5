// Package lesson runs the lesson pipeline: plan subtopics, generate one
// fragment per subtopic, resolve image descriptors and assemble the text.
package lesson

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/teachme/internal/logger"
	"github.com/abhisek/teachme/internal/planner"
)

// Planner produces the ordered subtopic list for a request.
type Planner interface {
	Plan(ctx context.Context, topic, depth, source string) []string
}

// Service generates complete lessons.
type Service struct {
	planner   Planner
	assembler *Assembler
	videos    VideoFinder
	now       func() time.Time
}

// NewService creates a lesson service. videos may be nil.
func NewService(p Planner, a *Assembler, videos VideoFinder) *Service {
	return &Service{planner: p, assembler: a, videos: videos, now: time.Now}
}

// Preview returns the planned subtopics without generating any content.
func (s *Service) Preview(ctx context.Context, req Request) ([]string, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	subtopics := s.planner.Plan(ctx, strings.TrimSpace(req.Topic), req.Depth, req.Source)
	if len(subtopics) == 0 {
		return nil, ErrNoPlan
	}
	return subtopics, nil
}

// Generate builds a lesson for req. Errors are ErrMissingTopic, ErrNoPlan and
// the context error when ctx ends before the lesson is complete; every other
// downstream failure degrades inside the lesson instead.
func (s *Service) Generate(ctx context.Context, req Request) (*Lesson, error) {
	ctx = logger.WithAction(ctx, "generate_lesson")
	log := logger.FromContext(ctx)

	subtopics, err := s.Preview(ctx, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("plan lesson: %w", ctxErr)
		}
		return nil, err
	}
	log.Info("planned lesson", zap.String("topic", req.Topic), zap.Int("subtopics", len(subtopics)))

	lesson := s.assembler.Assemble(ctx, subtopics, req.Source)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("assemble lesson: %w", err)
	}
	lesson.ID = uuid.NewString()
	lesson.Topic = strings.TrimSpace(req.Topic)
	if lesson.Topic == "" {
		lesson.Topic = subtopics[0]
	}
	lesson.Videos = s.findVideos(ctx, lesson.Topic)
	lesson.CreatedAt = s.now().UTC()

	log.Info("lesson assembled",
		zap.String("lesson_id", lesson.ID),
		zap.Int("images", len(lesson.Images)),
		zap.Int("videos", len(lesson.Videos)),
	)
	return lesson, nil
}

func (s *Service) findVideos(ctx context.Context, topic string) []Video {
	if s.videos == nil {
		return []Video{}
	}
	videos, err := s.videos.FindVideos(ctx, topic)
	if err != nil {
		logger.FromContext(ctx).Warn("video lookup failed", zap.String("topic", topic), zap.Error(err))
		return []Video{}
	}
	if videos == nil {
		return []Video{}
	}
	return videos
}

func (r Request) validate() error {
	if strings.TrimSpace(r.Topic) == "" && strings.TrimSpace(r.Source) == "" {
		return ErrMissingTopic
	}
	return nil
}

var _ Planner = (*planner.Planner)(nil)
