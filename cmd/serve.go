package cmd

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/abhisek/essence/internal/achievements"
	"github.com/abhisek/essence/internal/identity"
	"github.com/abhisek/essence/internal/scores"
	"github.com/abhisek/essence/internal/server"
	"github.com/abhisek/essence/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	addServeFlags(serveCmd)
}

func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().String("addr", "", "Listen address (overrides ESSENCE_ADDR, default :8080)")
	cmd.Flags().Duration("session-ttl", session.DefaultIdleTTL, "Drop quiz sessions idle for this long")
}

// runServe opens the store, builds the services, and serves until SIGINT
// or SIGTERM.
func runServe(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	mode, _ := cmd.Flags().GetString("log-mode")
	if strings.HasPrefix(strings.ToLower(mode), "prod") {
		gin.SetMode(gin.ReleaseMode)
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	ids, err := identity.New(st.UserRepo(), st.ProfileRepo(), identity.ConfigFromEnv(), log)
	if err != nil {
		return fmt.Errorf("init identity: %w", err)
	}
	sc := scores.NewService(st.ScoreRepo(), log)
	ach := achievements.NewService(achievements.DefaultRules(), sc, st.EventRepo(), log)

	cfg := server.ConfigFromEnv()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}
	ttl, _ := cmd.Flags().GetDuration("session-ttl")

	srv := server.New(cfg, server.Deps{
		Identity:       ids,
		Mosaics:        newOrchestrator(ctx, st, log),
		Scores:         sc,
		Recorder:       session.NewScoreRecorder(sc, ach),
		Sessions:       session.NewRegistry(ttl),
		Log:            log,
		SessionOptions: []session.Option{session.WithLogger(log)},
	})
	return srv.Run(ctx)
}
