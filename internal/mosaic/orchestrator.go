// Package mosaic assembles complete lessons from the insight, text
// generation and image adapters.
package mosaic

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/essence/internal/images"
	"github.com/abhisek/essence/internal/insight"
	"github.com/abhisek/essence/internal/lessons"
	"github.com/abhisek/essence/internal/logger"
	"github.com/abhisek/essence/internal/store"
)

// ImageCount is how many image searches a lesson uses.
const ImageCount = 3

// InsightSource provides cultural insights and topic suggestions.
type InsightSource interface {
	Fetch(ctx context.Context, topic string) insight.Result
	Recommended(ctx context.Context, topic string) []insight.Topic
	Trending(ctx context.Context) []insight.Topic
}

// TextSource produces lesson content.
type TextSource interface {
	Generate(ctx context.Context, topic string, insights []insight.Insight) lessons.Content
}

// ImageSource finds lesson images.
type ImageSource interface {
	Fetch(ctx context.Context, topic string, count int) images.Result
}

// GeneratedFunc is called after every lesson with the time it took.
type GeneratedFunc func(ctx context.Context, l *Lesson, took time.Duration)

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// OnGenerated registers a hook run after each lesson.
func OnGenerated(fn GeneratedFunc) Option {
	return func(o *Orchestrator) { o.onGenerated = fn }
}

// Orchestrator runs the lesson pipeline.
type Orchestrator struct {
	insights    InsightSource
	text        TextSource
	images      ImageSource
	log         *logger.Logger
	now         func() time.Time
	onGenerated GeneratedFunc
}

// New creates an Orchestrator. log may be nil.
func New(ins InsightSource, text TextSource, img ImageSource, log *logger.Logger, opts ...Option) *Orchestrator {
	if log == nil {
		log = logger.Nop()
	}
	o := &Orchestrator{
		insights: ins,
		text:     text,
		images:   img,
		log:      log,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// GenerateLesson builds a lesson for topic: insights first, then text
// (prompted with the top insights), then images. It always returns a
// lesson; a panic in any stage yields FallbackLesson.
func (o *Orchestrator) GenerateLesson(ctx context.Context, topic string) (lesson *Lesson) {
	start := o.now()

	defer func() {
		if r := recover(); r != nil {
			o.log.Error("lesson pipeline failed, serving fallback lesson", "topic", topic, "panic", fmt.Sprint(r))
			lesson = FallbackLesson(topic, o.now())
		}
		if o.onGenerated != nil {
			o.onGenerated(ctx, lesson, o.now().Sub(start))
		}
	}()

	ins := o.insights.Fetch(ctx, topic)
	top := ins.Top(3)

	content := o.text.Generate(ctx, topic, top)

	imgs := o.images.Fetch(ctx, topic, ImageCount)

	hero := DefaultHeroImage
	if len(imgs.Images) > 0 {
		hero = imgs.Images[0].URL
	}

	lesson = &Lesson{
		Topic:            topic,
		Content:          content,
		Images:           imgs.Images,
		HeroImage:        hero,
		CulturalInsights: top,
		Metadata: Metadata{
			GeneratedAt: o.now().UTC(),
			Sources: Sources{
				Insight:        ins.Live,
				TextGeneration: content.Live,
				Images:         imgs.Live,
			},
		},
	}

	o.log.Info("lesson generated", "topic", topic,
		"insight_live", ins.Live, "text_live", content.Live, "images_live", imgs.Live)
	return lesson
}

// RecommendedTopics returns topics related to topic.
func (o *Orchestrator) RecommendedTopics(ctx context.Context, topic string) []insight.Topic {
	return o.insights.Recommended(ctx, topic)
}

// TrendingTopics returns currently trending topics.
func (o *Orchestrator) TrendingTopics(ctx context.Context) []insight.Topic {
	return o.insights.Trending(ctx)
}

// FallbackLesson is a lesson built entirely from mock data.
func FallbackLesson(topic string, now time.Time) *Lesson {
	return &Lesson{
		Topic:            topic,
		Content:          lessons.MockContent(topic),
		Images:           images.MockImages(topic),
		HeroImage:        DefaultHeroImage,
		CulturalInsights: insight.MockInsights(topic),
		Metadata: Metadata{
			GeneratedAt: now.UTC(),
			Fallback:    true,
		},
	}
}

// RecordEvents returns a GeneratedFunc that appends a lesson event to repo.
// Recording failures are logged and otherwise ignored.
func RecordEvents(repo store.EventRepo, log *logger.Logger) GeneratedFunc {
	if log == nil {
		log = logger.Nop()
	}
	return func(ctx context.Context, l *Lesson, took time.Duration) {
		err := repo.AppendLessonEvent(ctx, store.LessonEventData{
			Topic:       l.Topic,
			InsightLive: l.Metadata.Sources.Insight,
			TextLive:    l.Metadata.Sources.TextGeneration,
			ImagesLive:  l.Metadata.Sources.Images,
			Fallback:    l.Metadata.Fallback,
			LatencyMs:   took.Milliseconds(),
		})
		if err != nil {
			log.Warn("failed to record lesson event", "topic", l.Topic, "error", err)
		}
	}
}
