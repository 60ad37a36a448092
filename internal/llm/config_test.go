package llm

import (
	"errors"
	"testing"
	"time"
)

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"ESSENCE_LLM_PROVIDER", "ESSENCE_LLM_TIMEOUT",
		"ESSENCE_GROQ_API_KEY", "GROQ_API_KEY", "ESSENCE_GROQ_MODEL", "ESSENCE_GROQ_BASE_URL",
		"ESSENCE_OPENAI_API_KEY", "OPENAI_API_KEY", "ESSENCE_OPENAI_MODEL", "ESSENCE_OPENAI_BASE_URL",
		"ESSENCE_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY", "ESSENCE_ANTHROPIC_MODEL",
		"ESSENCE_GEMINI_API_KEY", "GEMINI_API_KEY", "ESSENCE_GEMINI_MODEL",
	} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != "groq" {
		t.Fatalf("expected groq default provider, got %q", cfg.Provider)
	}
	if resolveModel(cfg.Groq.Model, groqModels) != "llama-3.3-70b-versatile" {
		t.Fatalf("unexpected default groq model %q", cfg.Groq.Model)
	}
	if cfg.Timeout != 60*time.Second {
		t.Fatalf("expected 60s timeout, got %s", cfg.Timeout)
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("GROQ_API_KEY", "gsk-plain")
	t.Setenv("ESSENCE_LLM_TIMEOUT", "5s")
	t.Setenv("ESSENCE_OPENAI_MODEL", "gpt-4o")

	cfg := ConfigFromEnv()
	if cfg.Groq.APIKey != "gsk-plain" {
		t.Fatalf("expected GROQ_API_KEY fallback, got %q", cfg.Groq.APIKey)
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %s", cfg.Timeout)
	}
	if cfg.OpenAI.Model != "gpt-4o" {
		t.Fatalf("expected gpt-4o, got %q", cfg.OpenAI.Model)
	}

	t.Setenv("ESSENCE_GROQ_API_KEY", "gsk-prefixed")
	if got := ConfigFromEnv().Groq.APIKey; got != "gsk-prefixed" {
		t.Fatalf("expected prefixed key to win, got %q", got)
	}
}

func TestDiscoverConfig(t *testing.T) {
	clearLLMEnv(t)
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no provider without keys")
	}

	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != "anthropic" {
		t.Fatalf("expected anthropic, got %q (ok=%v)", cfg.Provider, ok)
	}

	t.Setenv("GROQ_API_KEY", "gsk")
	cfg, ok = DiscoverConfig()
	if !ok || cfg.Provider != "groq" {
		t.Fatalf("expected groq to take priority, got %q", cfg.Provider)
	}
}

func TestValidate_MissingKeyIsNoCredential(t *testing.T) {
	err := Config{Provider: "groq"}.Validate()
	if !errors.Is(err, ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential, got %v", err)
	}
}
