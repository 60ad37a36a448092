package session

import (
	"context"

	"github.com/abhisek/essence/internal/achievements"
	"github.com/abhisek/essence/internal/scores"
)

// Recorded is what a Recorder returns after persisting a finished quiz.
type Recorded struct {
	ScoreID      string
	Achievements []achievements.Achievement
	Stats        *scores.Stats
}

// Recorder persists a finished quiz for a learner.
type Recorder interface {
	Record(ctx context.Context, l Learner, topic string, correct, total, elapsedSeconds int) (Recorded, error)
}

// ScoreRecorder saves the score, then checks achievements and refreshes
// stats against the history that now includes it.
type ScoreRecorder struct {
	scores       *scores.Service
	achievements *achievements.Service
}

// NewScoreRecorder creates a ScoreRecorder. ach may be nil to skip
// achievement checks.
func NewScoreRecorder(sc *scores.Service, ach *achievements.Service) *ScoreRecorder {
	return &ScoreRecorder{scores: sc, achievements: ach}
}

// Record only fails when the score write fails. Achievement and stats
// lookups degrade to empty values.
func (r *ScoreRecorder) Record(ctx context.Context, l Learner, topic string, correct, total, elapsedSeconds int) (Recorded, error) {
	id, err := r.scores.SaveScore(ctx, l.ID, l.Name, topic, correct, total, elapsedSeconds)
	if err != nil {
		return Recorded{}, err
	}

	rec := Recorded{ScoreID: id, Achievements: []achievements.Achievement{}}
	if r.achievements != nil {
		rec.Achievements = r.achievements.Check(ctx, l.ID, achievements.Outcome{
			ScoreID:        id,
			Topic:          topic,
			Percentage:     scores.Percentage(correct, total),
			ElapsedSeconds: elapsedSeconds,
		})
	}
	stats := r.scores.UserStats(ctx, l.ID)
	rec.Stats = &stats
	return rec, nil
}
