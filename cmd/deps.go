package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/teachme/internal/apify"
	"github.com/abhisek/teachme/internal/assessment"
	"github.com/abhisek/teachme/internal/config"
	"github.com/abhisek/teachme/internal/document"
	"github.com/abhisek/teachme/internal/lesson"
	"github.com/abhisek/teachme/internal/llm"
	"github.com/abhisek/teachme/internal/logger"
	"github.com/abhisek/teachme/internal/planner"
	"github.com/abhisek/teachme/internal/store"
)

// deps is everything a command needs to plan, assemble and assess.
type deps struct {
	cfg       *config.Config
	log       *zap.Logger
	store     *store.Store
	planner   *planner.Planner
	lessons   *lesson.Service
	assessor  *assessment.Engine
	extractor document.Chain

	closers []func() error
}

// loadConfig reads configuration and builds the process logger.
func loadConfig(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.Log.Mode, cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}

// buildDeps opens the event store and wires the LLM provider into the
// planner, assembler and assessment engine. Apify and Document AI are
// optional: without credentials, lessons carry no images or videos and
// PDFs fall back to pdftotext. quiet discards all log output.
func buildDeps(ctx context.Context, cmd *cobra.Command, quiet bool) (*deps, error) {
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if quiet {
		log = zap.NewNop()
	}
	if err := cfg.RequireLLM(); err != nil {
		return nil, err
	}

	d := &deps{cfg: cfg, log: log}
	d.closers = append(d.closers, func() error { _ = log.Sync(); return nil })

	dbPath, err := resolveDBPath(cmd, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	d.store = st
	d.closers = append(d.closers, st.Close)

	provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), log)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("init LLM provider: %w", err)
	}

	var (
		images lesson.ImageResolver
		videos lesson.VideoFinder
	)
	if cfg.Apify.Enabled() {
		client, err := apify.NewClient(apify.Config{
			Token:   cfg.Apify.Token,
			BaseURL: cfg.Apify.BaseURL,
			Timeout: cfg.Apify.Timeout,
		}, log)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("init apify client: %w", err)
		}
		images = apify.NewCachedResolver(apify.NewImageResolver(client, cfg.Apify.ImageActor, log), cfg.Apify.CacheTTL)
		videos = apify.NewVideoFinder(client, cfg.Apify.VideoActor)
	} else {
		log.Info("APIFY_TOKEN not set; lessons will have no images or videos")
	}

	d.planner = planner.New(provider, planner.Config{
		MaxTokens:       cfg.Lesson.MaxTokens,
		Temperature:     cfg.Lesson.Temperature,
		SourceCharLimit: cfg.Lesson.SourceCharLimit,
	})
	assembler := lesson.NewAssembler(provider, images, lesson.Config{
		MaxTokens:       cfg.Lesson.MaxTokens,
		Temperature:     cfg.Lesson.Temperature,
		SourceCharLimit: cfg.Lesson.SourceCharLimit,
	})
	d.lessons = lesson.NewService(d.planner, assembler, videos)
	d.assessor = assessment.NewEngine(provider, assessment.Config{
		MaxTokens:   cfg.Lesson.MaxTokens,
		Temperature: cfg.Lesson.Temperature,
	})

	d.extractor = document.Chain{document.PlainText{}}
	if cfg.DocumentAI.Enabled() {
		dai, err := document.NewDocumentAI(ctx, document.DocumentAIConfig{
			ProjectID:   cfg.DocumentAI.ProjectID,
			Location:    cfg.DocumentAI.Location,
			ProcessorID: cfg.DocumentAI.ProcessorID,
		}, log)
		if err != nil {
			log.Warn("document ai unavailable, using pdftotext only", zap.Error(err))
		} else {
			d.extractor = append(d.extractor, dai)
			d.closers = append(d.closers, dai.Close)
		}
	}
	if p := document.NewPDFToText(log); p != nil {
		d.extractor = append(d.extractor, p)
	}

	return d, nil
}

// Close releases resources in reverse order of acquisition.
func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		_ = d.closers[i]()
	}
}
