package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/essence/internal/achievements"
	"github.com/abhisek/essence/internal/identity"
	"github.com/abhisek/essence/internal/insight"
	"github.com/abhisek/essence/internal/mosaic"
	"github.com/abhisek/essence/internal/scores"
	"github.com/abhisek/essence/internal/session"
	"github.com/abhisek/essence/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeMosaics struct{}

func (fakeMosaics) GenerateLesson(_ context.Context, topic string) *mosaic.Lesson {
	return mosaic.FallbackLesson(topic, time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC))
}

func (fakeMosaics) RecommendedTopics(_ context.Context, topic string) []insight.Topic {
	return []insight.Topic{{Title: "Explore " + topic, Confidence: 0.8}}
}

func (fakeMosaics) TrendingTopics(context.Context) []insight.Topic {
	return insight.DefaultTrending()
}

type testEnv struct {
	handler http.Handler
	scores  *scores.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cfg := identity.DefaultConfig()
	cfg.Secret = []byte("test-secret")
	ids, err := identity.New(st.UserRepo(), st.ProfileRepo(), cfg, nil)
	require.NoError(t, err)

	sc := scores.NewService(st.ScoreRepo(), nil)
	ach := achievements.NewService(achievements.DefaultRules(), sc, st.EventRepo(), nil)

	srv := New(DefaultConfig(), Deps{
		Identity: ids,
		Mosaics:  fakeMosaics{},
		Scores:   sc,
		Recorder: session.NewScoreRecorder(sc, ach),
		Sessions: session.NewRegistry(0),
	})
	return &testEnv{handler: srv.Handler(), scores: sc}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func (e *testEnv) signUpAndIn(t *testing.T, email string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{"email": email, "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = e.do(t, http.MethodPost, "/api/auth/signin", "", gin.H{"email": email, "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var sess identity.Session
	decode(t, w, &sess)
	return sess.Token
}

type snapshotResponse struct {
	Session struct {
		ID             string `json:"id"`
		Phase          string `json:"phase"`
		QuestionIndex  int    `json:"currentQuestionIndex"`
		CorrectAnswers int    `json:"correctAnswers"`
		Percentage     int    `json:"percentage"`
		ScoreID        string `json:"scoreId"`
		Notice         string `json:"notice"`
		Achievements   []struct {
			Type string `json:"type"`
		} `json:"achievements"`
		Lesson *struct {
			Quiz []struct {
				CorrectAnswer string `json:"correctAnswer"`
			} `json:"quiz"`
		} `json:"lesson"`
	} `json:"session"`
}

func TestHealthz(t *testing.T) {
	e := newTestEnv(t)
	w := e.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUnknownRoute(t *testing.T) {
	e := newTestEnv(t)
	w := e.do(t, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	var env ErrorEnvelope
	decode(t, w, &env)
	assert.Equal(t, "not_found", env.Error.Code)
}

func TestAuthFlow(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{"email": "ada@example.com", "password": "123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	token := e.signUpAndIn(t, "ada@example.com")

	w = e.do(t, http.MethodPost, "/api/auth/signup", "", gin.H{"email": "ada@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusConflict, w.Code)
	var env ErrorEnvelope
	decode(t, w, &env)
	assert.Equal(t, "email_in_use", env.Error.Code)

	w = e.do(t, http.MethodPost, "/api/auth/signin", "", gin.H{"email": "ada@example.com", "password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.do(t, http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		Identity identity.Identity `json:"identity"`
	}
	decode(t, w, &me)
	assert.Equal(t, "ada@example.com", me.Identity.Email)

	w = e.do(t, http.MethodPatch, "/api/me", token, gin.H{"displayName": "Ada"})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &me)
	assert.Equal(t, "Ada", me.Identity.DisplayName)

	w = e.do(t, http.MethodPost, "/api/auth/signout", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = e.do(t, http.MethodGet, "/api/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	e := newTestEnv(t)
	for _, path := range []string{"/api/me", "/api/me/scores", "/api/me/stats", "/api/profile"} {
		w := e.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestProfileStore(t *testing.T) {
	e := newTestEnv(t)
	token := e.signUpAndIn(t, "ada@example.com")

	w := e.do(t, http.MethodPut, "/api/profile", token, gin.H{"displayName": "Ada", "photoURL": "data:image/png;base64,AAAA"})
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(t, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var p identity.Profile
	decode(t, w, &p)
	assert.Equal(t, identity.Profile{DisplayName: "Ada", PhotoURL: "data:image/png;base64,AAAA"}, p)
}

func TestCoursesAndTopics(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodGet, "/api/courses", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var courses struct {
		Courses []mosaic.Course `json:"courses"`
	}
	decode(t, w, &courses)
	assert.Len(t, courses.Courses, 4)

	w = e.do(t, http.MethodGet, "/api/topics/recommended", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(t, http.MethodGet, "/api/topics/recommended?topic=Jazz", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var topics struct {
		Topics []insight.Topic `json:"topics"`
	}
	decode(t, w, &topics)
	require.Len(t, topics.Topics, 1)
	assert.Equal(t, "Explore Jazz", topics.Topics[0].Title)

	w = e.do(t, http.MethodGet, "/api/topics/trending", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &topics)
	assert.Len(t, topics.Topics, 8)
}

func TestAnonymousQuizFlow(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(t, http.MethodPost, "/api/mosaics", "", gin.H{"topic": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(t, http.MethodPost, "/api/mosaics", "", gin.H{"topic": "Origami"})
	require.Equal(t, http.StatusCreated, w.Code)
	var snap snapshotResponse
	decode(t, w, &snap)
	id := snap.Session.ID
	require.NotEmpty(t, id)
	assert.Equal(t, "overview", snap.Session.Phase)

	base := "/api/sessions/" + id
	w = e.do(t, http.MethodPost, base+"/answer", "", gin.H{"answer": "x"})
	assert.Equal(t, http.StatusConflict, w.Code)

	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, base+"/study", "", nil).Code)
	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, base+"/quiz", "", nil).Code)

	quiz := snap.Session.Lesson.Quiz
	for _, q := range quiz {
		w = e.do(t, http.MethodPost, base+"/answer", "", gin.H{"answer": q.CorrectAnswer})
		require.Equal(t, http.StatusOK, w.Code)
		w = e.do(t, http.MethodPost, base+"/advance", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	decode(t, w, &snap)
	assert.Equal(t, "results", snap.Session.Phase)
	assert.Equal(t, 100, snap.Session.Percentage)
	assert.Empty(t, snap.Session.ScoreID)

	w = e.do(t, http.MethodPost, base+"/restart", "", gin.H{"keepLesson": true})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &snap)
	assert.Equal(t, "overview", snap.Session.Phase)
	assert.Equal(t, 0, snap.Session.CorrectAnswers)
	assert.NotNil(t, snap.Session.Lesson)

	assert.Equal(t, http.StatusNoContent, e.do(t, http.MethodDelete, base, "", nil).Code)
	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodGet, base, "", nil).Code)
}

func TestSignedInQuizIsRecorded(t *testing.T) {
	e := newTestEnv(t)
	token := e.signUpAndIn(t, "ada@example.com")

	w := e.do(t, http.MethodPost, "/api/mosaics", token, gin.H{"topic": "Kabuki"})
	require.Equal(t, http.StatusCreated, w.Code)
	var snap snapshotResponse
	decode(t, w, &snap)
	base := "/api/sessions/" + snap.Session.ID

	// Owned sessions are invisible to others.
	assert.Equal(t, http.StatusNotFound, e.do(t, http.MethodGet, base, "", nil).Code)

	require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, base+"/quiz", token, nil).Code)
	for _, q := range snap.Session.Lesson.Quiz {
		require.Equal(t, http.StatusOK, e.do(t, http.MethodPost, base+"/answer", token, gin.H{"answer": q.CorrectAnswer}).Code)
		w = e.do(t, http.MethodPost, base+"/advance", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	decode(t, w, &snap)
	assert.Equal(t, "results", snap.Session.Phase)
	assert.NotEmpty(t, snap.Session.ScoreID)
	assert.Empty(t, snap.Session.Notice)

	var types []string
	for _, a := range snap.Session.Achievements {
		types = append(types, a.Type)
	}
	assert.Contains(t, types, "perfect_score")

	w = e.do(t, http.MethodGet, "/api/me/scores", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine struct {
		Scores []store.ScoreRecord `json:"scores"`
	}
	decode(t, w, &mine)
	require.Len(t, mine.Scores, 1)
	assert.Equal(t, "ada@example.com", mine.Scores[0].UserName)

	w = e.do(t, http.MethodGet, "/api/me/stats", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats struct {
		Stats scores.Stats `json:"stats"`
	}
	decode(t, w, &stats)
	assert.Equal(t, 1, stats.Stats.TotalQuizzes)
	assert.Equal(t, 100, stats.Stats.BestScore)

	w = e.do(t, http.MethodGet, "/api/leaderboard/Kabuki?limit=5", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &mine)
	assert.Len(t, mine.Scores, 1)
}

func TestLeaderboardOrdering(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	_, err := e.scores.SaveScore(ctx, "u1", "slow", "Tango", 8, 8, 90)
	require.NoError(t, err)
	_, err = e.scores.SaveScore(ctx, "u2", "fast", "Tango", 8, 8, 40)
	require.NoError(t, err)
	_, err = e.scores.SaveScore(ctx, "u3", "low", "Haka", 4, 8, 10)
	require.NoError(t, err)

	w := e.do(t, http.MethodGet, "/api/leaderboard", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var board struct {
		Scores []store.ScoreRecord `json:"scores"`
	}
	decode(t, w, &board)
	require.Len(t, board.Scores, 3)
	assert.Equal(t, "fast", board.Scores[0].UserName)
	assert.Equal(t, "slow", board.Scores[1].UserName)
	assert.Equal(t, "low", board.Scores[2].UserName)

	w = e.do(t, http.MethodGet, "/api/leaderboard?limit=1", "", nil)
	decode(t, w, &board)
	assert.Len(t, board.Scores, 1)
}

func TestCORSPreflight(t *testing.T) {
	e := newTestEnv(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/courses", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
