// Package achievements derives badges from quiz outcomes and score history.
package achievements

import (
	"context"

	"github.com/abhisek/essence/internal/logger"
	"github.com/abhisek/essence/internal/scores"
	"github.com/abhisek/essence/internal/store"
)

// StatsLoader loads a user's aggregate stats.
type StatsLoader interface {
	LoadStats(ctx context.Context, identityID string) (scores.Stats, error)
}

// Service checks achievements against stored history.
type Service struct {
	rules     Rules
	stats     StatsLoader
	eventRepo store.EventRepo
	log       *logger.Logger
}

// NewService creates a Service. eventRepo and log may be nil.
func NewService(rules Rules, stats StatsLoader, eventRepo store.EventRepo, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{rules: rules, stats: stats, eventRepo: eventRepo, log: log.With("component", "achievements")}
}

// Rules returns the thresholds in use.
func (s *Service) Rules() Rules {
	return s.rules
}

// Check evaluates outcome for the user. The outcome must already be saved
// so that stats include it. Any error yields an empty list.
func (s *Service) Check(ctx context.Context, identityID string, o Outcome) []Achievement {
	stats, err := s.stats.LoadStats(ctx, identityID)
	if err != nil {
		s.log.Warn("achievement check failed", "user_id", identityID, "error", err)
		return []Achievement{}
	}

	unlocked := Evaluate(s.rules, o, stats)
	s.persist(ctx, identityID, o, unlocked)
	return unlocked
}

func (s *Service) persist(ctx context.Context, identityID string, o Outcome, unlocked []Achievement) {
	if s.eventRepo == nil {
		return
	}
	for _, a := range unlocked {
		err := s.eventRepo.AppendAchievementEvent(ctx, store.AchievementEventData{
			UserID:      identityID,
			Achievement: string(a.Type),
			Topic:       o.Topic,
			ScoreID:     o.ScoreID,
		})
		if err != nil {
			s.log.Warn("failed to record achievement event", "type", a.Type, "error", err)
		}
	}
}
