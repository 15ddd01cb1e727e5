// Package config loads the process-wide configuration from the environment
// and an optional .env file. The result is built once at startup and passed
// to constructors; nothing mutates it afterwards.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/abhisek/teachme/internal/llm"
)

// Config holds the application configuration
type Config struct {
	Log        LogConfig        `envPrefix:"LOG_"`
	LLM        llm.Config       `envPrefix:"LLM_"`
	Lesson     LessonConfig     `envPrefix:"LESSON_"`
	Apify      ApifyConfig      `envPrefix:"APIFY_"`
	DocumentAI DocumentAIConfig `envPrefix:"DOCUMENTAI_"`
	Server     ServerConfig

	// DBPath is the SQLite event store location. Empty selects the XDG
	// data directory.
	DBPath string `env:"DB_PATH"`
}

type LogConfig struct {
	Mode  string `env:"MODE" envDefault:"dev"`
	Level string `env:"LEVEL"`
}

// LessonConfig holds generation parameters shared by the planner, the
// fragment generator and the assessment engine.
type LessonConfig struct {
	MaxTokens       int     `env:"MAX_TOKENS" envDefault:"9000"`
	Temperature     float64 `env:"TEMPERATURE" envDefault:"0.7"`
	SourceCharLimit int     `env:"SOURCE_CHAR_LIMIT" envDefault:"8000"`
}

type ApifyConfig struct {
	Token      string        `env:"TOKEN"`
	BaseURL    string        `env:"BASE_URL" envDefault:"https://api.apify.com"`
	ImageActor string        `env:"IMAGE_ACTOR" envDefault:"tnudF2IxzORPhg4r8"`
	VideoActor string        `env:"VIDEO_ACTOR" envDefault:"h7sDV53CddomktSi5"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"60s"`
	CacheTTL   time.Duration `env:"CACHE_TTL" envDefault:"1h"`
}

// Enabled reports whether image and video lookups can run.
func (c ApifyConfig) Enabled() bool {
	return c.Token != ""
}

type DocumentAIConfig struct {
	ProjectID   string `env:"PROJECT_ID"`
	Location    string `env:"LOCATION" envDefault:"us"`
	ProcessorID string `env:"PROCESSOR_ID"`
}

// Enabled reports whether a Document AI processor is configured.
func (c DocumentAIConfig) Enabled() bool {
	return c.ProjectID != "" && c.ProcessorID != ""
}

type ServerConfig struct {
	Addr           string        `env:"SERVER_ADDR" envDefault:":8080"`
	UploadMaxBytes int64         `env:"UPLOAD_MAX_BYTES" envDefault:"10485760"`
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" envDefault:"5m"`
}

// Load reads envFile (if present) and then the environment. A missing
// .env file is not an error. When no LLM_* key is set the vendors' own key
// variables are probed.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.LLM.Validate() != nil && os.Getenv("LLM_PROVIDER") == "" {
		if discovered, ok := llm.Discover(cfg.LLM); ok {
			cfg.LLM = discovered
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks value ranges. Missing LLM credentials are reported by
// RequireLLM so that commands which never call a model still run.
func (c *Config) Validate() error {
	var problems []string

	if c.Lesson.MaxTokens < 1 {
		problems = append(problems, fmt.Sprintf("LESSON_MAX_TOKENS must be positive, got %d", c.Lesson.MaxTokens))
	}
	if c.Lesson.Temperature < 0 || c.Lesson.Temperature > 2 {
		problems = append(problems, fmt.Sprintf("LESSON_TEMPERATURE must be between 0 and 2, got %g", c.Lesson.Temperature))
	}
	if c.Lesson.SourceCharLimit < 1 {
		problems = append(problems, fmt.Sprintf("LESSON_SOURCE_CHAR_LIMIT must be positive, got %d", c.Lesson.SourceCharLimit))
	}
	if c.Server.UploadMaxBytes < 1 {
		problems = append(problems, fmt.Sprintf("UPLOAD_MAX_BYTES must be positive, got %d", c.Server.UploadMaxBytes))
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// RequireLLM reports whether the selected LLM provider is usable.
func (c *Config) RequireLLM() error {
	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("%w\n\nSet LLM_PROVIDER and its API key, or export GEMINI_API_KEY / OPENAI_API_KEY / ANTHROPIC_API_KEY / OPENROUTER_API_KEY", err)
	}
	return nil
}
