package llm

import "fmt"

const defaultGroqBaseURL = "https://api.groq.com/openai/v1"

// groqModels maps friendly names to Groq model IDs.
var groqModels = map[string]string{
	"llama-3.3-70b": "llama-3.3-70b-versatile",
	"llama-3.1-8b":  "llama-3.1-8b-instant",
}

// NewGroqProvider creates a provider for Groq's OpenAI-compatible endpoint.
// Groq models do not accept strict json_schema output, so requests use
// json_object mode and rely on local schema validation.
func NewGroqProvider(cfg GroqConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq API key is required: %w", ErrNoCredential)
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}
	return newOpenAICompatible(OpenAIConfig{
		APIKey:         cfg.APIKey,
		Model:          cfg.Model,
		BaseURL:        baseURL,
		JSONObjectMode: true,
	}, groqModels)
}
