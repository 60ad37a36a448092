package achievements

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/essence/internal/scores"
	"github.com/abhisek/essence/internal/store"
)

func types(as []Achievement) []Type {
	out := []Type{}
	for _, a := range as {
		out = append(out, a.Type)
	}
	return out
}

func TestEvaluate(t *testing.T) {
	rules := DefaultRules()
	tests := []struct {
		name    string
		outcome Outcome
		stats   scores.Stats
		want    []Type
	}{
		{"nothing", Outcome{Percentage: 50, ElapsedSeconds: 200}, scores.Stats{TotalQuizzes: 1, TopicsStudied: 1}, []Type{}},
		{"perfect and fast", Outcome{Percentage: 100, ElapsedSeconds: 45}, scores.Stats{TotalQuizzes: 1, TopicsStudied: 1}, []Type{PerfectScore, SpeedDemon}},
		{"perfect but slow", Outcome{Percentage: 100, ElapsedSeconds: 60}, scores.Stats{}, []Type{PerfectScore}},
		{"fast at 80", Outcome{Percentage: 80, ElapsedSeconds: 59}, scores.Stats{}, []Type{SpeedDemon}},
		{"fast at 79", Outcome{Percentage: 79, ElapsedSeconds: 10}, scores.Stats{}, []Type{}},
		{"tenth quiz", Outcome{Percentage: 50, ElapsedSeconds: 120}, scores.Stats{TotalQuizzes: 10, TopicsStudied: 2}, []Type{QuizMaster}},
		{"five topics", Outcome{Percentage: 50, ElapsedSeconds: 120}, scores.Stats{TotalQuizzes: 5, TopicsStudied: 5}, []Type{CulturalExplorer}},
		{"all four", Outcome{Percentage: 100, ElapsedSeconds: 30}, scores.Stats{TotalQuizzes: 12, TopicsStudied: 7}, AllTypes()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(rules, tt.outcome, tt.stats)
			assert.Equal(t, tt.want, types(got))
			assert.Equal(t, got, Evaluate(rules, tt.outcome, tt.stats), "evaluation is pure")
		})
	}
}

func TestEvaluate_CustomRules(t *testing.T) {
	r := DefaultRules()
	r.SpeedSeconds = 120
	r.SpeedMinPercentage = 90
	got := Evaluate(r, Outcome{Percentage: 88, ElapsedSeconds: 100}, scores.Stats{})
	assert.Empty(t, got)
	got = Evaluate(r, Outcome{Percentage: 90, ElapsedSeconds: 100}, scores.Stats{})
	assert.Equal(t, []Type{SpeedDemon}, types(got))
}

func TestBadge(t *testing.T) {
	b := PerfectScore.Badge()
	assert.Equal(t, Achievement{Type: PerfectScore, Title: "Perfect Scholar!", Description: "Scored 100% on a quiz", Icon: "🏆"}, b)
	for _, typ := range AllTypes() {
		assert.NotEqual(t, "✦", typ.Icon())
		assert.NotEmpty(t, typ.Description())
	}
}

func newStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestCheck_PerfectFastRun(t *testing.T) {
	st := newStore(t)
	sc := scores.NewService(st.ScoreRepo(), nil)
	svc := NewService(DefaultRules(), sc, st.EventRepo(), nil)
	ctx := context.Background()

	id, err := sc.SaveScore(ctx, "u1", "Aiko", "Origami", 8, 8, 45)
	require.NoError(t, err)

	got := svc.Check(ctx, "u1", Outcome{ScoreID: id, Topic: "Origami", Percentage: 100, ElapsedSeconds: 45})
	assert.Equal(t, []Type{PerfectScore, SpeedDemon}, types(got))

	events, err := st.EventRepo().QueryAchievementEvents(ctx, "u1", store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, id, events[0].ScoreID)
}

func TestCheck_TenthQuizUnlocksQuizMaster(t *testing.T) {
	st := newStore(t)
	sc := scores.NewService(st.ScoreRepo(), nil)
	svc := NewService(DefaultRules(), sc, nil, nil)
	ctx := context.Background()

	for i := 0; i < 9; i++ {
		_, err := sc.SaveScore(ctx, "u1", "Aiko", "Origami", 4, 8, 300)
		require.NoError(t, err)
		got := svc.Check(ctx, "u1", Outcome{Topic: "Origami", Percentage: 50, ElapsedSeconds: 300})
		assert.NotContains(t, types(got), QuizMaster)
	}

	_, err := sc.SaveScore(ctx, "u1", "Aiko", "Origami", 4, 8, 300)
	require.NoError(t, err)
	assert.Equal(t, 10, sc.UserStats(ctx, "u1").TotalQuizzes)

	got := svc.Check(ctx, "u1", Outcome{Topic: "Origami", Percentage: 50, ElapsedSeconds: 300})
	assert.Equal(t, []Type{QuizMaster}, types(got))
}

type brokenStats struct{}

func (brokenStats) LoadStats(context.Context, string) (scores.Stats, error) {
	return scores.Stats{}, errors.New("unavailable")
}

func TestCheck_ErrorYieldsEmpty(t *testing.T) {
	svc := NewService(DefaultRules(), brokenStats{}, nil, nil)
	got := svc.Check(context.Background(), "u1", Outcome{Percentage: 100, ElapsedSeconds: 10})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
