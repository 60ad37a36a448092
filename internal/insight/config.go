package insight

import (
	"os"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.qloo.com/v1"

// Config holds the Qloo client configuration. An empty APIKey is valid and
// makes every call answer from the built-in fallback data.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults and no key.
func DefaultConfig() Config {
	return Config{
		BaseURL: defaultBaseURL,
		Timeout: 15 * time.Second,
	}
}

// ConfigFromEnv reads ESSENCE_QLOO_API_KEY (falling back to QLOO_API_KEY)
// and ESSENCE_QLOO_BASE_URL.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.APIKey = strings.TrimSpace(os.Getenv("ESSENCE_QLOO_API_KEY"))
	if cfg.APIKey == "" {
		cfg.APIKey = strings.TrimSpace(os.Getenv("QLOO_API_KEY"))
	}
	if u := strings.TrimSpace(os.Getenv("ESSENCE_QLOO_BASE_URL")); u != "" {
		cfg.BaseURL = u
	}
	if d := os.Getenv("ESSENCE_QLOO_TIMEOUT"); d != "" {
		if v, err := time.ParseDuration(d); err == nil {
			cfg.Timeout = v
		}
	}
	return cfg
}
