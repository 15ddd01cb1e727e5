package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/teachme/internal/assessment"
	"github.com/abhisek/teachme/internal/document"
	"github.com/abhisek/teachme/internal/lesson"
	"github.com/abhisek/teachme/internal/logger"
	"github.com/abhisek/teachme/internal/render"
)

// LessonGenerator runs the full lesson pipeline.
type LessonGenerator interface {
	Generate(ctx context.Context, req lesson.Request) (*lesson.Lesson, error)
}

// SubtopicPlanner plans subtopics.
type SubtopicPlanner interface {
	Plan(ctx context.Context, topic, depth, source string) []string
}

// SummaryAssessor grades learner summaries.
type SummaryAssessor interface {
	Assess(ctx context.Context, original, summary string, state assessment.State) assessment.Feedback
}

// Handler serves the lesson API.
type Handler struct {
	lessons        LessonGenerator
	planner        SubtopicPlanner
	assessor       SummaryAssessor
	extractor      document.Extractor
	html           render.Formatter
	uploadMaxBytes int64
}

// NewHandler creates the API handler.
func NewHandler(lessons LessonGenerator, planner SubtopicPlanner, assessor SummaryAssessor, extractor document.Extractor, uploadMaxBytes int64) *Handler {
	return &Handler{
		lessons:        lessons,
		planner:        planner,
		assessor:       assessor,
		extractor:      extractor,
		html:           render.NewHTMLFormatter(),
		uploadMaxBytes: uploadMaxBytes,
	}
}

type subtopicsRequest struct {
	Topic         string `json:"topic"`
	Depth         string `json:"depth"`
	SourceContent string `json:"source_content"`
}

type subtopicsResponse struct {
	Subtopics []string `json:"subtopics"`
}

type teachRequest struct {
	Topic string `json:"topic"`
	Depth string `json:"depth"`
}

type teachResponse struct {
	ID        string         `json:"id"`
	Topic     string         `json:"topic"`
	Subtopics []string       `json:"subtopics"`
	Content   string         `json:"content"`
	HTML      string         `json:"html"`
	Images    []string       `json:"images"`
	Videos    []lesson.Video `json:"videos"`
}

type compareRequest struct {
	OriginalContent  string               `json:"original_content"`
	UserSummary      string               `json:"user_summary"`
	PreviousFeedback *assessment.Feedback `json:"previous_feedback"`
}

// PlanSubtopics handles POST /api/subtopics.
func (h *Handler) PlanSubtopics(w http.ResponseWriter, r *http.Request) {
	var req subtopicsRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Topic) == "" && strings.TrimSpace(req.SourceContent) == "" {
		Error(w, http.StatusBadRequest, "No topic provided")
		return
	}

	ctx := logger.WithAction(r.Context(), "plan_subtopics")
	subtopics := h.planner.Plan(ctx, req.Topic, req.Depth, req.SourceContent)
	JSON(w, http.StatusOK, subtopicsResponse{Subtopics: subtopics})
}

// Teach handles POST /api/teach.
func (h *Handler) Teach(w http.ResponseWriter, r *http.Request) {
	var req teachRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		Error(w, http.StatusBadRequest, "No topic provided")
		return
	}

	h.generate(w, r, lesson.Request{Topic: req.Topic, Depth: req.Depth})
}

// TeachDocument handles POST /api/teach/document.
func (h *Handler) TeachDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.uploadMaxBytes)
	if err := r.ParseMultipartForm(h.uploadMaxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			Error(w, http.StatusRequestEntityTooLarge, "Uploaded file is too large")
			return
		}
		Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		Error(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		Error(w, http.StatusBadRequest, "Could not read uploaded file")
		return
	}

	doc, err := document.New(header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := logger.AddFields(r.Context(), zap.String("document", doc.Name), zap.String("mime_type", doc.MimeType))
	text := h.extractor.ExtractText(ctx, doc)
	if strings.TrimSpace(text) == "" {
		Error(w, http.StatusBadRequest, "Could not extract any text from the document")
		return
	}

	h.generate(w, r.WithContext(ctx), lesson.Request{
		Topic:  r.FormValue("topic"),
		Depth:  r.FormValue("depth"),
		Source: text,
	})
}

// Compare handles POST /api/compare.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.OriginalContent) == "" || strings.TrimSpace(req.UserSummary) == "" {
		Error(w, http.StatusBadRequest, "Both original content and user summary are required")
		return
	}

	ctx := logger.WithAction(r.Context(), "assess_summary")
	feedback := h.assessor.Assess(ctx, req.OriginalContent, req.UserSummary, assessment.StateFor(req.PreviousFeedback))
	JSON(w, http.StatusOK, feedback)
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request, req lesson.Request) {
	l, err := h.lessons.Generate(r.Context(), req)
	switch {
	case errors.Is(err, lesson.ErrMissingTopic):
		Error(w, http.StatusBadRequest, "No topic provided")
		return
	case errors.Is(err, lesson.ErrNoPlan):
		Error(w, http.StatusBadGateway, "Could not plan any subtopics for this topic")
		return
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		Error(w, http.StatusGatewayTimeout, "Lesson generation timed out")
		return
	case err != nil:
		logger.FromContext(r.Context()).Error("lesson generation failed", zap.Error(err))
		Error(w, http.StatusInternalServerError, "Lesson generation failed")
		return
	}

	page, err := h.html.Format(l)
	if err != nil {
		logger.FromContext(r.Context()).Warn("html rendering failed", zap.Error(err))
	}

	JSON(w, http.StatusOK, teachResponse{
		ID:        l.ID,
		Topic:     l.Topic,
		Subtopics: l.Subtopics,
		Content:   l.Content,
		HTML:      string(page),
		Images:    l.Images,
		Videos:    l.Videos,
	})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		Error(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}
