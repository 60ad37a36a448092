package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/essence/internal/logger"
	"github.com/abhisek/essence/internal/scores"
	"github.com/abhisek/essence/internal/store"
	"github.com/abhisek/essence/internal/ui/theme"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the global or per-topic leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		n, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		svc := scores.NewService(st.ScoreRepo(), logger.Nop())
		var recs []store.ScoreRecord
		title := "Global Leaderboard"
		if topic != "" {
			recs = svc.TopicLeaderboard(cmd.Context(), topic, n)
			title = topic + " Leaderboard"
		} else {
			recs = svc.GlobalLeaderboard(cmd.Context(), n)
		}

		fmt.Println(theme.Title.Render(title))
		if len(recs) == 0 {
			fmt.Println(theme.Hint.Render("No scores recorded yet."))
			return nil
		}
		fmt.Println(renderScores(recs, topic == ""))
		return nil
	},
}

// renderScores draws a ranked table. The topic column is shown for
// cross-topic boards only.
func renderScores(recs []store.ScoreRecord, withTopic bool) string {
	headers := []string{"#", "Name"}
	if withTopic {
		headers = append(headers, "Topic")
	}
	headers = append(headers, "Score", "%", "Time")

	t := theme.Table(headers...)
	for i, r := range recs {
		row := []string{fmt.Sprint(i + 1), r.UserName}
		if withTopic {
			row = append(row, r.Topic)
		}
		row = append(row,
			fmt.Sprintf("%d/%d", r.Score, r.TotalQuestions),
			theme.ScoreStyle(r.Percentage).Render(fmt.Sprintf("%d%%", r.Percentage)),
			formatSeconds(r.TimeSpent),
		)
		t.Row(row...)
	}
	return t.Render()
}

func formatSeconds(s int) string {
	if s < 60 {
		return fmt.Sprintf("%ds", s)
	}
	return fmt.Sprintf("%dm%02ds", s/60, s%60)
}

func init() {
	leaderboardCmd.Flags().StringP("topic", "t", "", "Only show scores for this topic")
	leaderboardCmd.Flags().IntP("limit", "n", scores.DefaultLeaderboardSize, "Number of entries")
}
