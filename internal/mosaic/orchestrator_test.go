package mosaic

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/essence/internal/images"
	"github.com/abhisek/essence/internal/insight"
	"github.com/abhisek/essence/internal/lessons"
	"github.com/abhisek/essence/internal/logger"
	"github.com/abhisek/essence/internal/store"
)

type fakeInsights struct {
	result insight.Result
	panics bool
}

func (f *fakeInsights) Fetch(_ context.Context, topic string) insight.Result {
	if f.panics {
		panic("insight exploded")
	}
	return f.result
}

func (f *fakeInsights) Recommended(_ context.Context, topic string) []insight.Topic {
	return []insight.Topic{{Title: topic + " next"}}
}

func (f *fakeInsights) Trending(context.Context) []insight.Topic {
	return insight.DefaultTrending()
}

type fakeText struct {
	gotInsights []insight.Insight
	live        bool
}

func (f *fakeText) Generate(_ context.Context, topic string, ins []insight.Insight) lessons.Content {
	f.gotInsights = ins
	c := lessons.MockContent(topic)
	c.Live = f.live
	return c
}

type fakeImages struct {
	result images.Result
	called bool
}

func (f *fakeImages) Fetch(_ context.Context, topic string, count int) images.Result {
	f.called = true
	return f.result
}

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestGenerateLesson_MergesSources(t *testing.T) {
	ins := &fakeInsights{result: insight.Result{
		Insights: append(insight.MockInsights("Origami"), insight.Insight{Name: "Fourth"}),
		Live:     true,
	}}
	text := &fakeText{live: true}
	img := &fakeImages{result: images.Result{
		Images: []images.Image{{ID: "1_0", URL: "https://img/1.jpg"}},
		Live:   true,
	}}

	o := New(ins, text, img, nil, WithClock(func() time.Time { return fixedNow }))
	l := o.GenerateLesson(context.Background(), "Origami")

	require.NotNil(t, l)
	assert.Equal(t, "Origami", l.Topic)
	assert.Len(t, l.Quiz, lessons.QuizLength)
	assert.Len(t, l.Flashcards, lessons.FlashcardCount)
	assert.Len(t, l.CulturalInsights, 3)
	assert.Len(t, text.gotInsights, 3, "text generation receives the top three insights")
	assert.Equal(t, "https://img/1.jpg", l.HeroImage)
	assert.Equal(t, Sources{Insight: true, TextGeneration: true, Images: true}, l.Metadata.Sources)
	assert.False(t, l.Metadata.Fallback)
	assert.Equal(t, fixedNow, l.Metadata.GeneratedAt)
}

func TestGenerateLesson_NoImagesUsesDefaultHero(t *testing.T) {
	o := New(&fakeInsights{}, &fakeText{}, &fakeImages{}, nil)
	l := o.GenerateLesson(context.Background(), "Batik")
	assert.Equal(t, DefaultHeroImage, l.HeroImage)
	assert.Equal(t, Sources{}, l.Metadata.Sources)
}

func TestGenerateLesson_PanicYieldsFallback(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	img := &fakeImages{}
	o := New(&fakeInsights{panics: true}, &fakeText{}, img, logger.FromZap(zap.New(core)),
		WithClock(func() time.Time { return fixedNow }))

	var l *Lesson
	require.NotPanics(t, func() { l = o.GenerateLesson(context.Background(), "Kabuki") })

	require.NotNil(t, l)
	assert.True(t, l.Metadata.Fallback)
	assert.Equal(t, Sources{}, l.Metadata.Sources)
	assert.Equal(t, DefaultHeroImage, l.HeroImage)
	assert.Equal(t, images.MockImages("Kabuki"), l.Images)
	assert.Len(t, l.Quiz, lessons.QuizLength)
	assert.False(t, img.called)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestGenerateLesson_WithRealAdaptersWithoutCredentials(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.FromZap(zap.New(core))

	o := New(
		insight.New(insight.DefaultConfig(), log),
		lessons.NewGenerator(nil, lessons.DefaultConfig(), log),
		images.New(images.DefaultConfig(), log),
		log,
	)

	l := o.GenerateLesson(context.Background(), "Origami")

	assert.Contains(t, l.Summary, "Origami")
	assert.Contains(t, l.StudyGuide.KeyFacts[0], "Origami")
	assert.Contains(t, l.Flashcards[0].Term, "Origami")
	assert.Len(t, l.Flashcards, 5)
	assert.Len(t, l.Quiz, 8)

	counts := map[lessons.Difficulty]int{}
	for _, q := range l.Quiz {
		counts[q.Difficulty]++
	}
	assert.Equal(t, map[lessons.Difficulty]int{lessons.Easy: 3, lessons.Medium: 3, lessons.Hard: 2}, counts)
	assert.Equal(t, Sources{}, l.Metadata.Sources)
	assert.False(t, l.Metadata.Fallback)

	adapters := map[string]bool{}
	for _, e := range logs.FilterMessage("using fallback data").All() {
		adapters[e.ContextMap()["adapter"].(string)] = true
	}
	assert.Equal(t, map[string]bool{"insight": true, "lessons": true, "images": true}, adapters)
}

func TestLessonJSON(t *testing.T) {
	l := FallbackLesson("Tango", fixedNow)
	b, err := json.Marshal(l)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	for _, key := range []string{"topic", "title", "summary", "studyGuide", "flashcards", "quiz", "images", "heroImage", "culturalInsights", "metadata"} {
		assert.Contains(t, m, key)
	}
	assert.NotContains(t, m, "Live")
	meta := m["metadata"].(map[string]any)
	assert.Equal(t, true, meta["fallback"])
}

func TestTopicDelegation(t *testing.T) {
	o := New(&fakeInsights{}, &fakeText{}, &fakeImages{}, nil)
	assert.Equal(t, "Origami next", o.RecommendedTopics(context.Background(), "Origami")[0].Title)
	assert.Len(t, o.TrendingTopics(context.Background()), 8)
}

func TestCourses(t *testing.T) {
	courses := Courses()
	require.Len(t, courses, 4)
	assert.Equal(t, "Japanese Tea Ceremony", courses[0].Title)
	assert.Equal(t, "/indian.svg", courses[3].Image)
}

func TestRecordEvents(t *testing.T) {
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	o := New(&fakeInsights{result: insight.Result{Live: true}}, &fakeText{}, &fakeImages{}, nil,
		OnGenerated(RecordEvents(st.EventRepo(), nil)))
	o.GenerateLesson(context.Background(), "Haka")

	events, err := st.EventRepo().QueryLessonEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Haka", events[0].Topic)
	assert.True(t, events[0].InsightLive)
	assert.False(t, events[0].TextLive)
	assert.False(t, events[0].Fallback)
}
