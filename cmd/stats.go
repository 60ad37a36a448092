package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/essence/internal/achievements"
	"github.com/abhisek/essence/internal/scores"
	"github.com/abhisek/essence/internal/store"
	"github.com/abhisek/essence/internal/ui/components"
	"github.com/abhisek/essence/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats <identity-id>",
	Short: "Show quiz statistics and badges for a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		svc := scores.NewService(st.ScoreRepo(), nil)
		stats, err := svc.LoadStats(ctx, id)
		if err != nil {
			return fmt.Errorf("load stats: %w", err)
		}

		fmt.Println(theme.Title.Render("Learning Stats"))
		if stats.TotalQuizzes == 0 {
			fmt.Println(theme.Hint.Render("No quizzes recorded for " + id + "."))
			return nil
		}

		rows := [][2]string{
			{"Quizzes", fmt.Sprint(stats.TotalQuizzes)},
			{"Time spent", formatSeconds(stats.TotalTimeSpent)},
			{"Topics", fmt.Sprint(stats.TopicsStudied)},
		}
		for _, r := range rows {
			fmt.Printf("%s %s\n", theme.Label.Render(fmt.Sprintf("%-11s", r[0])), theme.Value.Render(r[1]))
		}
		fmt.Println(components.NewScoreBar(fmt.Sprintf("%-10s", "Average"), stats.AverageScore, 48).View())
		fmt.Println(components.NewScoreBar(fmt.Sprintf("%-10s", "Best"), stats.BestScore, 48).View())

		events, err := st.EventRepo().QueryAchievementEvents(ctx, id, store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query achievements: %w", err)
		}
		earned := map[achievements.Type]int{}
		for _, e := range events {
			earned[achievements.Type(e.Achievement)]++
		}
		if len(earned) > 0 {
			fmt.Println()
			fmt.Println(theme.Label.Render("Badges"))
			for _, t := range achievements.AllTypes() {
				if c := earned[t]; c > 0 {
					fmt.Printf("  %s %s ×%d\n", t.Icon(), theme.Badge.Render(t.Title()), c)
				}
			}
		}

		recent := svc.UserScores(ctx, id)
		if len(recent) > 0 {
			fmt.Println()
			fmt.Println(theme.Label.Render("Recent quizzes"))
			fmt.Println(renderScores(recent, true))
		}
		return nil
	},
}
