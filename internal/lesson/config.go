package lesson

// Config holds fragment generation settings.
type Config struct {
	MaxTokens       int
	Temperature     float64
	SourceCharLimit int
}

// DefaultConfig returns the generation parameters lessons were tuned with.
func DefaultConfig() Config {
	return Config{
		MaxTokens:       9000,
		Temperature:     0.7,
		SourceCharLimit: 8000,
	}
}
