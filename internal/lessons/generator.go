// Package lessons generates the text content of a cultural lesson with an
// LLM and falls back to deterministic mock content whenever generation
// fails.
package lessons

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/essence/internal/insight"
	"github.com/abhisek/essence/internal/llm"
	"github.com/abhisek/essence/internal/logger"
)

// Generator produces lesson content for a topic.
type Generator struct {
	provider   llm.Provider
	cfg        Config
	validators []Validator
	log        *logger.Logger
}

// NewGenerator creates a Generator. A nil provider means no credential is
// configured and every call returns MockContent.
func NewGenerator(provider llm.Provider, cfg Config, log *logger.Logger) *Generator {
	if log == nil {
		log = logger.Nop()
	}
	return &Generator{
		provider:   provider,
		cfg:        cfg,
		validators: DefaultValidators(),
		log:        log.With("adapter", "lessons"),
	}
}

// Generate returns lesson content for topic, using up to cfg.MaxInsights
// insights as prompt context. It never fails: any error yields
// MockContent(topic) with Live=false.
func (g *Generator) Generate(ctx context.Context, topic string, insights []insight.Insight) Content {
	content, err := g.generate(ctx, topic, insights)
	if err != nil {
		reason := err.Error()
		if errors.Is(err, llm.ErrNoCredential) {
			reason = "no_credential"
		}
		g.log.Warn("using fallback data", "topic", topic, "reason", reason, "kind", llm.FailureKind(err))
		return MockContent(topic)
	}
	return *content
}

func (g *Generator) generate(ctx context.Context, topic string, insights []insight.Insight) (*Content, error) {
	if g.provider == nil {
		return nil, llm.ErrNoCredential
	}

	if g.cfg.MaxInsights > 0 && len(insights) > g.cfg.MaxInsights {
		insights = insights[:g.cfg.MaxInsights]
	}

	ctx = llm.WithTopic(llm.WithPurpose(ctx, "lesson"), topic)

	req := llm.Request{
		System: lessonSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildLessonUserMessage(topic, insights)},
		},
		Schema:      LessonSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
		TopP:        g.cfg.TopP,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("lesson generation: %w", err)
	}

	var out Content
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse lesson response: %w", err)
	}

	for _, v := range g.validators {
		if verr := v.Validate(&out); verr != nil {
			return nil, verr
		}
	}

	if out.Title == "" {
		out.Title = topic
	}
	out.Live = true
	return &out, nil
}
