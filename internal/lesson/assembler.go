package lesson

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/teachme/internal/descriptor"
	"github.com/abhisek/teachme/internal/llm"
	"github.com/abhisek/teachme/internal/logger"
)

// Assembler turns a subtopic list into lesson text with resolved images.
type Assembler struct {
	provider llm.Provider
	images   ImageResolver
	cfg      Config
}

// NewAssembler creates an Assembler. images may be nil, in which case every
// descriptor block is dropped from the output.
func NewAssembler(provider llm.Provider, images ImageResolver, cfg Config) *Assembler {
	return &Assembler{provider: provider, images: images, cfg: cfg}
}

// GenerateFragment produces the lesson text for one subtopic. It never fails:
// provider errors and empty replies become a short apology naming the
// subtopic.
func (a *Assembler) GenerateFragment(ctx context.Context, subtopic, source string) string {
	ctx = llm.WithPurpose(ctx, llm.PurposeFragment)
	grounded := strings.TrimSpace(source) != ""

	var userMsg string
	if grounded {
		userMsg = buildSourceFragmentMessage(subtopic, source, a.cfg.SourceCharLimit)
	} else {
		userMsg = buildFragmentMessage(subtopic)
	}

	resp, err := a.provider.Generate(ctx, llm.Request{
		System:      fragmentSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: userMsg}},
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
	})
	if err == nil && strings.TrimSpace(resp.Text()) != "" {
		return resp.Text()
	}

	logger.FromContext(ctx).Warn("fragment generation failed",
		zap.String("subtopic", subtopic),
		zap.Bool("grounded", grounded),
		zap.Error(err),
	)
	return fallbackFragment(subtopic, grounded)
}

// Assemble generates one fragment per subtopic in order, resolves every
// image descriptor in the combined text and substitutes the results.
// A descriptor that cannot be resolved is removed; later images keep their
// own positions. Subtopics reached after ctx is done get the fallback text
// without a model call. Only Subtopics, Content and Images are set on the
// result.
func (a *Assembler) Assemble(ctx context.Context, subtopics []string, source string) *Lesson {
	log := logger.FromContext(ctx)

	grounded := strings.TrimSpace(source) != ""
	interrupted := false
	var b strings.Builder
	for _, subtopic := range subtopics {
		b.WriteString("\n")
		if err := ctx.Err(); err != nil {
			if !interrupted {
				log.Warn("lesson assembly interrupted", zap.String("subtopic", subtopic), zap.Error(err))
				interrupted = true
			}
			b.WriteString(fallbackFragment(subtopic, grounded))
			continue
		}
		b.WriteString(a.GenerateFragment(ctx, subtopic, source))
	}
	text := b.String()

	captions := descriptor.Extract(text)
	slots := make([]string, len(captions))
	images := make([]string, 0, len(captions))
	for i, caption := range captions {
		url, ok := a.resolve(ctx, caption)
		if !ok {
			log.Debug("no image for descriptor", zap.String("descriptor", caption))
			continue
		}
		slots[i] = url
		images = append(images, url)
	}

	return &Lesson{
		Subtopics: append([]string(nil), subtopics...),
		Content:   descriptor.SubstituteSlots(text, slots),
		Images:    images,
	}
}

func (a *Assembler) resolve(ctx context.Context, caption string) (string, bool) {
	if a.images == nil || caption == "" {
		return "", false
	}
	url, ok := a.images.Resolve(ctx, caption)
	if !ok || strings.TrimSpace(url) == "" {
		return "", false
	}
	return strings.TrimSpace(url), true
}
