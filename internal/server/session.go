package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/essence/internal/session"
)

// SessionHandler drives quiz sessions held in the registry.
type SessionHandler struct {
	sessions *session.Registry
}

func NewSessionHandler(sessions *session.Registry) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// lookup returns the session for :id. Sessions owned by a learner are
// hidden from everyone else.
func (h *SessionHandler) lookup(c *gin.Context) (*session.Session, bool) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return nil, false
	}
	if owner := s.Learner(); owner != nil {
		if id := currentIdentity(c); id == nil || id.ID != owner.ID {
			respondErr(c, session.ErrNotFound)
			return nil, false
		}
	}
	return s, true
}

func (h *SessionHandler) Get(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	RespondOK(c, gin.H{"session": s.Snapshot()})
}

func (h *SessionHandler) Study(c *gin.Context) {
	h.transition(c, (*session.Session).StartStudy)
}

func (h *SessionHandler) Quiz(c *gin.Context) {
	h.transition(c, (*session.Session).StartQuiz)
}

func (h *SessionHandler) transition(c *gin.Context, fn func(*session.Session) error) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	if err := fn(s); err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"session": s.Snapshot()})
}

type answerRequest struct {
	Answer string `json:"answer"`
}

func (h *SessionHandler) Answer(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := s.SubmitAnswer(req.Answer)
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"result": res, "session": s.Snapshot()})
}

// Advance finishes the score write even if the client goes away.
func (h *SessionHandler) Advance(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	if err := s.Advance(context.WithoutCancel(c.Request.Context())); err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"session": s.Snapshot()})
}

type restartRequest struct {
	KeepLesson bool `json:"keepLesson"`
}

func (h *SessionHandler) Restart(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	var req restartRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	s.Restart(req.KeepLesson)
	RespondOK(c, gin.H{"session": s.Snapshot()})
}

func (h *SessionHandler) Delete(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	if err := h.sessions.Delete(s.ID()); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
