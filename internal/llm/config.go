package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration. It is populated once at
// startup (see internal/config) and never mutated afterwards.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "openai", "anthropic", "openrouter", "mock"
	Provider string `env:"PROVIDER" envDefault:"gemini"`

	Gemini     GeminiConfig     `envPrefix:"GEMINI_"`
	OpenAI     OpenAIConfig     `envPrefix:"OPENAI_"`
	Anthropic  AnthropicConfig  `envPrefix:"ANTHROPIC_"`
	OpenRouter OpenRouterConfig `envPrefix:"OPENROUTER_"`
	Retry      RetryConfig      `envPrefix:"RETRY_"`

	// Timeout is the maximum duration for a single LLM request
	// (including retries). Zero disables the deadline.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"90s"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL" envDefault:"gemini-flash"`

	// BaseURL overrides the API endpoint. Optional.
	BaseURL string `env:"BASE_URL"`

	// TopP and TopK mirror the sampling parameters lessons were tuned with.
	TopP float32 `env:"TOP_P" envDefault:"1"`
	TopK float32 `env:"TOP_K" envDefault:"1"`

	// SafetyThreshold applies to every harm category. Empty keeps the
	// model default.
	SafetyThreshold string `env:"SAFETY_THRESHOLD" envDefault:"BLOCK_MEDIUM_AND_ABOVE"`
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL" envDefault:"gpt-4o-mini"`
	BaseURL string `env:"BASE_URL"` // Optional. Override for compatible APIs.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL" envDefault:"claude-haiku"`
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `env:"API_KEY"`
	Model   string `env:"MODEL" envDefault:"google/gemini-2.0-flash-exp"`
	BaseURL string `env:"BASE_URL"`
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	Attempts  uint          `env:"ATTEMPTS" envDefault:"3"`
	Delay     time.Duration `env:"DELAY" envDefault:"1s"`
	MaxDelay  time.Duration `env:"MAX_DELAY" envDefault:"10s"`
	MaxJitter time.Duration `env:"MAX_JITTER" envDefault:"250ms"`
}

// DefaultConfig returns the same values the env tags default to. Used by
// tests and by callers that do not read the environment.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Gemini: GeminiConfig{
			Model:           "gemini-flash",
			TopP:            1,
			TopK:            1,
			SafetyThreshold: "BLOCK_MEDIUM_AND_ABOVE",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.0-flash-exp",
		},
		Retry: RetryConfig{
			Attempts:  3,
			Delay:     1 * time.Second,
			MaxDelay:  10 * time.Second,
			MaxJitter: 250 * time.Millisecond,
		},
		Timeout: 90 * time.Second,
	}
}

// Discover probes the vendors' standard API key env vars in priority order
// (Gemini → OpenAI → Anthropic → OpenRouter) and returns a copy of base
// pointed at the first provider whose key is found. Returns (base, false)
// if none is found.
func Discover(base Config) (Config, bool) {
	cfg := base

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GOOGLE_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return base, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("LLM_GEMINI_API_KEY is required for the gemini provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("LLM_OPENAI_API_KEY is required for the openai provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("LLM_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("LLM_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
