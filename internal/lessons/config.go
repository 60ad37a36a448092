package lessons

// Config holds lesson generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	TopP        float64

	// MaxInsights caps how many insights are embedded in the prompt.
	MaxInsights int
}

// DefaultConfig returns sensible defaults for lesson generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   4000,
		Temperature: 0.7,
		TopP:        0.9,
		MaxInsights: 3,
	}
}
