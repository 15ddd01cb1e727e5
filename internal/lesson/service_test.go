package lesson

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/abhisek/teachme/internal/llm"
)

type stubPlanner struct {
	subtopics []string
	calls     []string
}

func (s *stubPlanner) Plan(_ context.Context, topic, depth, source string) []string {
	s.calls = append(s.calls, topic+"|"+depth+"|"+source)
	return s.subtopics
}

type stubVideos struct {
	videos []Video
	err    error
	topic  string
}

func (s *stubVideos) FindVideos(_ context.Context, topic string) ([]Video, error) {
	s.topic = topic
	return s.videos, s.err
}

func TestService_Generate(t *testing.T) {
	p := &stubPlanner{subtopics: []string{"Atoms", "Bonds"}}
	mock := llm.NewMockProvider(llm.MockText("atoms text"), llm.MockText("bonds text"))
	videos := &stubVideos{videos: []Video{{Title: "Chemistry 101", URL: "https://youtube.example/v1"}}}

	svc := NewService(p, NewAssembler(mock, nil, DefaultConfig()), videos)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	l, err := svc.Generate(context.Background(), Request{Topic: " Chemistry ", Depth: "briefly"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.ID == "" {
		t.Error("lesson ID not set")
	}
	if l.Topic != "Chemistry" {
		t.Errorf("Topic = %q", l.Topic)
	}
	if l.Content != "\natoms text\nbonds text" {
		t.Errorf("Content = %q", l.Content)
	}
	if !l.CreatedAt.Equal(fixed) {
		t.Errorf("CreatedAt = %v", l.CreatedAt)
	}
	if videos.topic != "Chemistry" || len(l.Videos) != 1 {
		t.Errorf("videos not attached: topic=%q videos=%v", videos.topic, l.Videos)
	}
	if !reflect.DeepEqual(p.calls, []string{"Chemistry|briefly|"}) {
		t.Errorf("planner calls = %q", p.calls)
	}
}

func TestService_Errors(t *testing.T) {
	svc := NewService(&stubPlanner{}, NewAssembler(llm.NewMockProvider(), nil, DefaultConfig()), nil)

	if _, err := svc.Generate(context.Background(), Request{Topic: "  "}); !errors.Is(err, ErrMissingTopic) {
		t.Errorf("expected ErrMissingTopic, got %v", err)
	}
	if _, err := svc.Generate(context.Background(), Request{Topic: "Anything"}); !errors.Is(err, ErrNoPlan) {
		t.Errorf("expected ErrNoPlan, got %v", err)
	}
}

func TestService_SourceOnly(t *testing.T) {
	p := &stubPlanner{subtopics: []string{"Mitosis"}}
	mock := llm.NewMockProvider(llm.MockText("mitosis text"))
	svc := NewService(p, NewAssembler(mock, nil, DefaultConfig()), nil)

	l, err := svc.Generate(context.Background(), Request{Source: "Cells divide by mitosis."})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Topic != "Mitosis" {
		t.Errorf("Topic should fall back to first subtopic, got %q", l.Topic)
	}
	if l.Videos == nil || len(l.Videos) != 0 {
		t.Errorf("Videos = %#v, want empty", l.Videos)
	}
}

func TestService_VideoFailureIsIgnored(t *testing.T) {
	p := &stubPlanner{subtopics: []string{"A"}}
	mock := llm.NewMockProvider(llm.MockText("a"))
	svc := NewService(p, NewAssembler(mock, nil, DefaultConfig()), &stubVideos{err: errors.New("actor failed")})

	l, err := svc.Generate(context.Background(), Request{Topic: "A"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(l.Videos) != 0 {
		t.Errorf("Videos = %v", l.Videos)
	}
}

func TestService_Cancelled(t *testing.T) {
	p := &stubPlanner{subtopics: []string{"A", "B"}}
	mock := llm.NewMockProvider(llm.MockText("a"), llm.MockText("b"))
	svc := NewService(p, NewAssembler(mock, nil, DefaultConfig()), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l, err := svc.Generate(ctx, Request{Topic: "A"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if l != nil {
		t.Errorf("expected no lesson, got %+v", l)
	}
	if mock.CallCount() != 0 {
		t.Errorf("expected no fragment calls, got %d", mock.CallCount())
	}
}

func TestService_CancelledWhilePlanning(t *testing.T) {
	svc := NewService(&stubPlanner{}, NewAssembler(llm.NewMockProvider(), nil, DefaultConfig()), nil)

	ctx, cancel := context.WithTimeout(context.Background(), -time.Second)
	defer cancel()

	if _, err := svc.Generate(ctx, Request{Topic: "A"}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
}

func TestService_Preview(t *testing.T) {
	p := &stubPlanner{subtopics: []string{"A", "B", "C"}}
	mock := llm.NewMockProvider()
	svc := NewService(p, NewAssembler(mock, nil, DefaultConfig()), nil)

	got, err := svc.Preview(context.Background(), Request{Topic: "x", Depth: "briefly"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Preview() = %q", got)
	}
	if mock.CallCount() != 0 {
		t.Error("preview must not generate fragments")
	}
}
