// Package assessment grades a learner's summary against the text it
// summarizes and tracks the shrinking set of missing points across
// resubmissions.
package assessment

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/teachme/internal/llm"
	"github.com/abhisek/teachme/internal/logger"
)

// Config holds assessment generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults for assessment.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   9000,
		Temperature: 0.7,
	}
}

// Engine runs one assessment round per call and keeps no state between
// calls; the caller carries State.
type Engine struct {
	provider llm.Provider
	cfg      Config
}

// NewEngine creates an assessment engine.
func NewEngine(provider llm.Provider, cfg Config) *Engine {
	return &Engine{provider: provider, cfg: cfg}
}

// Assess grades summary against original. In the resuming state the
// returned missing points are always a subset of the prior ones. Any
// provider or parse failure yields Degraded().
func (e *Engine) Assess(ctx context.Context, original, summary string, state State) Feedback {
	ctx = llm.WithPurpose(ctx, llm.PurposeAssessment)
	log := logger.FromContext(ctx).With(zap.Bool("resuming", state.IsResuming()))

	var userMsg string
	if state.IsResuming() {
		userMsg = buildResumingMessage(original, summary, state.prior)
	} else {
		userMsg = buildInitialMessage(original, summary)
	}

	resp, err := e.provider.Generate(ctx, llm.Request{
		System:      assessmentSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: userMsg}},
		Schema:      FeedbackSchema,
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
	})
	if err != nil {
		log.Warn("summary assessment failed", zap.Error(err))
		return Degraded()
	}

	f, err := parseFeedback(resp.Content)
	if err != nil {
		log.Warn("unusable assessment response", zap.String("raw", resp.Text()), zap.Error(err))
		return Degraded()
	}

	if !state.IsResuming() {
		return f
	}

	remaining := state.narrow(f.MissingPoints)
	if dropped := len(f.MissingPoints) - len(remaining); dropped > 0 {
		log.Debug("discarded missing points outside the prior list", zap.Int("dropped", dropped))
	}
	if len(remaining) == 0 {
		return Complete()
	}
	f.MissingPoints = remaining
	return f
}

// parseFeedback re-checks the reply. Structured output is already validated
// by the provider, but the check also covers vendors that fence or pad it.
func parseFeedback(raw json.RawMessage) (Feedback, error) {
	clean, err := llm.Validate(FeedbackSchema, raw)
	if err != nil {
		return Feedback{}, err
	}

	var f Feedback
	if err := json.Unmarshal(clean, &f); err != nil {
		return Feedback{}, fmt.Errorf("decode feedback: %w", err)
	}
	if f.CorrectPoints == nil {
		f.CorrectPoints = []string{}
	}
	if f.MissingPoints == nil {
		f.MissingPoints = []string{}
	}
	return f, nil
}
