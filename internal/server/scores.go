package server

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/essence/internal/scores"
)

// maxLeaderboardLimit caps the ?limit= query parameter.
const maxLeaderboardLimit = 100

// ScoreHandler serves leaderboards and per-user history.
type ScoreHandler struct {
	scores *scores.Service
}

func NewScoreHandler(sc *scores.Service) *ScoreHandler {
	return &ScoreHandler{scores: sc}
}

func (h *ScoreHandler) Global(c *gin.Context) {
	RespondOK(c, gin.H{"scores": h.scores.GlobalLeaderboard(c.Request.Context(), limitParam(c))})
}

func (h *ScoreHandler) Topic(c *gin.Context) {
	recs := h.scores.TopicLeaderboard(c.Request.Context(), c.Param("topic"), limitParam(c))
	RespondOK(c, gin.H{"topic": c.Param("topic"), "scores": recs})
}

func (h *ScoreHandler) Mine(c *gin.Context) {
	RespondOK(c, gin.H{"scores": h.scores.UserScores(c.Request.Context(), currentIdentity(c).ID)})
}

func (h *ScoreHandler) Stats(c *gin.Context) {
	RespondOK(c, gin.H{"stats": h.scores.UserStats(c.Request.Context(), currentIdentity(c).ID)})
}

// limitParam returns ?limit= clamped to [1, maxLeaderboardLimit], or 0 for
// the service default when absent or malformed.
func limitParam(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("limit"))
	if err != nil || n <= 0 {
		return 0
	}
	return min(n, maxLeaderboardLimit)
}
