// Package scores records quiz outcomes and serves leaderboards and per-user
// statistics.
package scores

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/essence/internal/logger"
	"github.com/abhisek/essence/internal/store"
)

const (
	// DefaultLeaderboardSize is used when a leaderboard is requested with n <= 0.
	DefaultLeaderboardSize = 10

	// RecentScoresLimit caps UserScores.
	RecentScoresLimit = 20
)

// ErrInvalidScore is returned by SaveScore for impossible outcomes.
var ErrInvalidScore = errors.New("invalid score")

// Stats aggregates a user's score history.
type Stats struct {
	TotalQuizzes   int `json:"totalQuizzes"`
	AverageScore   int `json:"averageScore"`
	BestScore      int `json:"bestScore"`
	TotalTimeSpent int `json:"totalTimeSpent"`
	TopicsStudied  int `json:"topicsStudied"`
}

// Percentage returns round(correct/total*100) clamped to [0,100], with
// halves rounded up. A zero total yields 0.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	p := int(math.Floor(float64(correct)*100/float64(total) + 0.5))
	return max(0, min(100, p))
}

// SortLeaderboard orders records by percentage descending, then time spent
// ascending. The sort is stable so equal records keep their input order.
func SortLeaderboard(recs []store.ScoreRecord) {
	slices.SortStableFunc(recs, func(a, b store.ScoreRecord) int {
		if c := cmp.Compare(b.Percentage, a.Percentage); c != 0 {
			return c
		}
		return cmp.Compare(a.TimeSpent, b.TimeSpent)
	})
}

// ComputeStats folds records into Stats. No records yields the zero Stats.
func ComputeStats(recs []store.ScoreRecord) Stats {
	if len(recs) == 0 {
		return Stats{}
	}
	var (
		s      Stats
		sum    int
		topics = make(map[string]struct{})
	)
	for _, r := range recs {
		sum += r.Percentage
		s.BestScore = max(s.BestScore, r.Percentage)
		s.TotalTimeSpent += r.TimeSpent
		topics[r.Topic] = struct{}{}
	}
	s.TotalQuizzes = len(recs)
	s.AverageScore = int(math.Floor(float64(sum)/float64(len(recs)) + 0.5))
	s.TopicsStudied = len(topics)
	return s
}

// Service reads and writes score records.
type Service struct {
	repo store.ScoreRepo
	log  *logger.Logger
	now  func() time.Time
}

// NewService creates a Service. log may be nil.
func NewService(repo store.ScoreRepo, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{repo: repo, log: log.With("component", "scores"), now: time.Now}
}

// SaveScore appends a score record and returns its ID. Unlike the read
// paths, write failures are returned to the caller.
func (s *Service) SaveScore(ctx context.Context, identityID, displayName, topic string, correct, total, elapsedSeconds int) (string, error) {
	if identityID == "" {
		return "", fmt.Errorf("%w: identity is required", ErrInvalidScore)
	}
	if total <= 0 || correct < 0 || correct > total || elapsedSeconds < 0 {
		return "", fmt.Errorf("%w: %d/%d in %ds", ErrInvalidScore, correct, total, elapsedSeconds)
	}

	rec := store.ScoreRecord{
		ID:             uuid.NewString(),
		UserID:         identityID,
		UserName:       displayName,
		Topic:          topic,
		Score:          correct,
		TotalQuestions: total,
		Percentage:     Percentage(correct, total),
		TimeSpent:      elapsedSeconds,
		Timestamp:      s.now().UTC(),
	}
	if err := s.repo.Insert(ctx, rec); err != nil {
		return "", fmt.Errorf("save score: %w", err)
	}
	s.log.Info("score saved", "id", rec.ID, "user_id", identityID, "topic", topic, "percentage", rec.Percentage)
	return rec.ID, nil
}

// UserScores returns the user's most recent records, newest first. Read
// failures yield an empty list.
func (s *Service) UserScores(ctx context.Context, identityID string) []store.ScoreRecord {
	recs, err := s.repo.ByUser(ctx, identityID, RecentScoresLimit)
	if err != nil {
		s.log.Error("fetch user scores failed", "user_id", identityID, "error", err)
		return []store.ScoreRecord{}
	}
	return nonNil(recs)
}

// GlobalLeaderboard returns the top n records across all topics.
func (s *Service) GlobalLeaderboard(ctx context.Context, n int) []store.ScoreRecord {
	return s.leaderboard(ctx, "", n)
}

// TopicLeaderboard returns the top n records for topic.
func (s *Service) TopicLeaderboard(ctx context.Context, topic string, n int) []store.ScoreRecord {
	if topic == "" {
		return []store.ScoreRecord{}
	}
	return s.leaderboard(ctx, topic, n)
}

func (s *Service) leaderboard(ctx context.Context, topic string, n int) []store.ScoreRecord {
	if n <= 0 {
		n = DefaultLeaderboardSize
	}
	recs, err := s.repo.Ranked(ctx, topic, n)
	if err != nil {
		s.log.Error("fetch leaderboard failed", "topic", topic, "error", err)
		return []store.ScoreRecord{}
	}
	return nonNil(recs)
}

// UserStats returns aggregate stats over all of the user's records. Read
// failures yield zeroed Stats.
func (s *Service) UserStats(ctx context.Context, identityID string) Stats {
	st, err := s.LoadStats(ctx, identityID)
	if err != nil {
		s.log.Error("fetch user stats failed", "user_id", identityID, "error", err)
		return Stats{}
	}
	return st
}

// LoadStats is UserStats with the read error exposed.
func (s *Service) LoadStats(ctx context.Context, identityID string) (Stats, error) {
	recs, err := s.repo.ByUser(ctx, identityID, 0)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(recs), nil
}

func nonNil(recs []store.ScoreRecord) []store.ScoreRecord {
	if recs == nil {
		return []store.ScoreRecord{}
	}
	return recs
}
