// Package planner decomposes a topic, or a document's text, into an
// ordered list of subtopics sized by the requested depth.
package planner

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/teachme/internal/llm"
	"github.com/abhisek/teachme/internal/logger"
)

// Planner asks the LLM for a subtopic outline.
type Planner struct {
	provider llm.Provider
	cfg      Config
}

// New creates a subtopic planner.
func New(provider llm.Provider, cfg Config) *Planner {
	return &Planner{provider: provider, cfg: cfg}
}

// Plan returns up to CountForDepth(depth) subtopics. When source is non-empty
// the subtopics are drawn from its first SourceCharLimit characters and topic
// is optional guidance. Any provider or parse failure yields an empty list;
// the cause is logged, never returned.
func (p *Planner) Plan(ctx context.Context, topic, depth, source string) []string {
	ctx = llm.WithPurpose(ctx, llm.PurposeSubtopics)
	log := logger.FromContext(ctx)

	n := CountForDepth(depth)
	topic = strings.TrimSpace(topic)

	var userMsg string
	if strings.TrimSpace(source) != "" {
		userMsg = buildSourceMessage(topic, source, n, p.cfg.SourceCharLimit)
	} else {
		userMsg = buildTopicMessage(topic, n)
	}

	req := llm.Request{
		System:      plannerSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: userMsg}},
		MaxTokens:   p.cfg.MaxTokens,
		Temperature: p.cfg.Temperature,
	}

	resp, err := p.provider.Generate(ctx, req)
	if err != nil {
		log.Warn("subtopic planning failed", zap.String("topic", topic), zap.Error(err))
		return []string{}
	}

	subtopics, err := parseSubtopics(resp.Content, n)
	if err != nil {
		log.Warn("unusable subtopic response",
			zap.String("topic", topic),
			zap.String("raw", resp.Text()),
			zap.Error(err),
		)
		return []string{}
	}

	log.Debug("planned subtopics", zap.String("topic", topic), zap.Strings("subtopics", subtopics))
	return subtopics
}

// parseSubtopics strips any code fence, validates the array shape and keeps
// at most n non-blank titles.
func parseSubtopics(raw json.RawMessage, n int) ([]string, error) {
	clean, err := llm.Validate(SubtopicsSchema, raw)
	if err != nil {
		return nil, err
	}

	var items []string
	if err := json.Unmarshal(clean, &items); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: raw, Err: err}
	}

	out := make([]string, 0, n)
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
		if len(out) == n {
			break
		}
	}
	return out, nil
}
