// Package server exposes lessons, quiz sessions, scores and accounts over
// a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/essence/internal/identity"
	"github.com/abhisek/essence/internal/logger"
	"github.com/abhisek/essence/internal/scores"
	"github.com/abhisek/essence/internal/session"
)

// Config holds listener settings.
type Config struct {
	Addr          string
	AllowOrigins  []string
	SweepInterval time.Duration
	ShutdownGrace time.Duration
}

// DefaultConfig listens on :8080 and allows any origin.
func DefaultConfig() Config {
	return Config{
		Addr:          ":8080",
		SweepInterval: 5 * time.Minute,
		ShutdownGrace: 10 * time.Second,
	}
}

// ConfigFromEnv reads ESSENCE_ADDR and ESSENCE_CORS_ORIGINS (comma separated).
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if a := strings.TrimSpace(os.Getenv("ESSENCE_ADDR")); a != "" {
		cfg.Addr = a
	}
	for _, o := range strings.Split(os.Getenv("ESSENCE_CORS_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, o)
		}
	}
	return cfg
}

// Deps are the services behind the routes.
type Deps struct {
	Identity *identity.Service
	Mosaics  Mosaics
	Scores   *scores.Service
	Recorder session.Recorder
	Sessions *session.Registry
	Log      *logger.Logger

	// SessionOptions are applied to every quiz session.
	SessionOptions []session.Option
}

// Server is the HTTP API.
type Server struct {
	cfg      Config
	engine   *gin.Engine
	sessions *session.Registry
	log      *logger.Logger
}

// New wires the routes.
func New(cfg Config, d Deps) *Server {
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.Sessions == nil {
		d.Sessions = session.NewRegistry(0)
	}
	log := d.Log.With("component", "server")
	return &Server{
		cfg:      cfg,
		engine:   newRouter(cfg, d, log),
		sessions: d.Sessions,
		log:      log,
	}
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func newRouter(cfg Config, d Deps, log *logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(CORS(cfg.AllowOrigins))

	auth := NewAuthHandler(d.Identity)
	mosaics := NewMosaicHandler(d.Mosaics, d.Sessions, d.Recorder, d.SessionOptions...)
	quiz := NewSessionHandler(d.Sessions)
	board := NewScoreHandler(d.Scores)

	r.GET("/healthz", func(c *gin.Context) {
		RespondOK(c, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/auth/signup", auth.SignUp)
		api.POST("/auth/signin", auth.SignIn)

		api.GET("/courses", mosaics.Courses)
		api.GET("/topics/recommended", mosaics.Recommended)
		api.GET("/topics/trending", mosaics.Trending)

		api.GET("/leaderboard", board.Global)
		api.GET("/leaderboard/:topic", board.Topic)
	}

	optional := api.Group("")
	optional.Use(OptionalAuth(d.Identity))
	{
		optional.POST("/mosaics", mosaics.Create)

		optional.GET("/sessions/:id", quiz.Get)
		optional.POST("/sessions/:id/study", quiz.Study)
		optional.POST("/sessions/:id/quiz", quiz.Quiz)
		optional.POST("/sessions/:id/answer", quiz.Answer)
		optional.POST("/sessions/:id/advance", quiz.Advance)
		optional.POST("/sessions/:id/restart", quiz.Restart)
		optional.DELETE("/sessions/:id", quiz.Delete)
	}

	protected := api.Group("")
	protected.Use(RequireAuth(d.Identity))
	{
		protected.POST("/auth/signout", auth.SignOut)
		protected.GET("/me", auth.Me)
		protected.PATCH("/me", auth.UpdateMe)
		protected.GET("/me/scores", board.Mine)
		protected.GET("/me/stats", board.Stats)
		protected.GET("/profile", auth.GetProfile)
		protected.PUT("/profile", auth.PutProfile)
	}

	r.NoRoute(func(c *gin.Context) {
		RespondError(c, http.StatusNotFound, "not_found", errors.New("route not found"))
	})
	return r
}

// Run serves until ctx is done, then shuts down gracefully. Idle quiz
// sessions are swept while running.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	if s.cfg.SweepInterval > 0 {
		go s.sessions.Run(sweepCtx, s.cfg.SweepInterval)
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	grace := s.cfg.ShutdownGrace
	if grace <= 0 {
		grace = DefaultConfig().ShutdownGrace
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
