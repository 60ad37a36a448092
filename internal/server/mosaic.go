package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/essence/internal/insight"
	"github.com/abhisek/essence/internal/mosaic"
	"github.com/abhisek/essence/internal/session"
)

// Mosaics builds lessons and topic suggestions.
type Mosaics interface {
	GenerateLesson(ctx context.Context, topic string) *mosaic.Lesson
	RecommendedTopics(ctx context.Context, topic string) []insight.Topic
	TrendingTopics(ctx context.Context) []insight.Topic
}

// MosaicHandler serves courses, topic suggestions and lesson generation.
type MosaicHandler struct {
	mosaics  Mosaics
	sessions *session.Registry
	recorder session.Recorder
	opts     []session.Option
}

func NewMosaicHandler(m Mosaics, sessions *session.Registry, rec session.Recorder, opts ...session.Option) *MosaicHandler {
	return &MosaicHandler{mosaics: m, sessions: sessions, recorder: rec, opts: opts}
}

func (h *MosaicHandler) Courses(c *gin.Context) {
	RespondOK(c, gin.H{"courses": mosaic.Courses()})
}

func (h *MosaicHandler) Recommended(c *gin.Context) {
	topic := strings.TrimSpace(c.Query("topic"))
	if topic == "" {
		badRequest(c, errors.New("topic is required"))
		return
	}
	RespondOK(c, gin.H{"topics": h.mosaics.RecommendedTopics(c.Request.Context(), topic)})
}

func (h *MosaicHandler) Trending(c *gin.Context) {
	RespondOK(c, gin.H{"topics": h.mosaics.TrendingTopics(c.Request.Context())})
}

type createMosaicRequest struct {
	Topic string `json:"topic" binding:"required"`
}

// Create generates a lesson and opens a quiz session for it. Signed-in
// callers own the session and have their results recorded.
func (h *MosaicHandler) Create(c *gin.Context) {
	var req createMosaicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		badRequest(c, errors.New("topic is required"))
		return
	}

	lesson := h.mosaics.GenerateLesson(c.Request.Context(), topic)

	var learner *session.Learner
	if id := currentIdentity(c); id != nil {
		learner = &session.Learner{ID: id.ID, Name: id.Name()}
	}
	s := session.New(lesson, learner, h.recorder, h.opts...)
	h.sessions.Add(s)
	c.JSON(http.StatusCreated, gin.H{"session": s.Snapshot()})
}
