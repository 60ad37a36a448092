package cmd

import (
	"context"
	"os"

	"github.com/abhisek/essence/internal/images"
	"github.com/abhisek/essence/internal/insight"
	"github.com/abhisek/essence/internal/lessons"
	"github.com/abhisek/essence/internal/llm"
	"github.com/abhisek/essence/internal/logger"
	"github.com/abhisek/essence/internal/mosaic"
	"github.com/abhisek/essence/internal/store"
)

// newTextProvider picks the LLM provider. ESSENCE_LLM_PROVIDER selects one
// explicitly; otherwise the first provider with a key wins. No provider
// means lessons use fallback content.
func newTextProvider(ctx context.Context, eventRepo store.EventRepo, log *logger.Logger) llm.Provider {
	cfg := llm.ConfigFromEnv()
	if os.Getenv("ESSENCE_LLM_PROVIDER") == "" {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			log.Warn("no LLM API key found, lessons will use fallback content")
			return nil
		}
		cfg = discovered
	}

	p, err := llm.NewProvider(ctx, cfg, eventRepo, log)
	if err != nil {
		log.Warn("LLM provider unavailable, lessons will use fallback content",
			"provider", cfg.Provider, "error", err)
		return nil
	}
	log.Info("LLM provider ready", "provider", cfg.Provider, "model", p.ModelID())
	return p
}

// newOrchestrator wires the three adapters from the environment. Lesson
// generations are recorded as events.
func newOrchestrator(ctx context.Context, st *store.Store, log *logger.Logger) *mosaic.Orchestrator {
	provider := newTextProvider(ctx, st.EventRepo(), log)

	ins := insight.New(insight.ConfigFromEnv(), log)
	if !ins.Live() {
		log.Warn("no insight API key found, using built-in insights")
	}
	img := images.New(images.ConfigFromEnv(), log)

	return mosaic.New(
		ins,
		lessons.NewGenerator(provider, lessons.DefaultConfig(), log),
		img,
		log,
		mosaic.OnGenerated(mosaic.RecordEvents(st.EventRepo(), log)),
	)
}
