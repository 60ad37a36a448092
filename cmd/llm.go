package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/essence/internal/llm"
	"github.com/abhisek/essence/internal/store"
	"github.com/abhisek/essence/internal/ui/theme"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded LLM requests and lesson generations",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println(theme.Hint.Render("No LLM events found."))
			return nil
		}

		t := theme.Table("ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		for _, e := range events {
			if purpose != "" && e.Purpose != purpose {
				continue
			}
			ok := theme.Good.Render("✓")
			if !e.Success {
				ok = theme.Bad.Render("✗")
			}
			t.Row(
				fmt.Sprint(e.ID),
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				truncate(e.Model, 28),
				fmt.Sprint(e.InputTokens),
				fmt.Sprint(e.OutputTokens),
				fmt.Sprint(e.LatencyMs),
				ok,
			)
		}
		fmt.Println(t.Render())
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View full request/response for an LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		field := func(name, value string) {
			fmt.Printf("%s %s\n", theme.Label.Render(fmt.Sprintf("%-9s", name+":")), value)
		}
		field("ID", fmt.Sprint(e.ID))
		field("Time", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		field("Provider", e.Provider)
		field("Model", e.Model)
		field("Purpose", e.Purpose)
		field("Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens))
		field("Latency", fmt.Sprintf("%dms", e.LatencyMs))
		field("Success", fmt.Sprint(e.Success))
		if e.ErrorMessage != "" {
			field("Error", theme.Bad.Render(e.ErrorMessage))
		}

		sep := theme.Hint.Render(strings.Repeat("─", 60))
		for _, part := range []struct{ title, body string }{
			{"REQUEST", e.RequestBody},
			{"RESPONSE", e.ResponseBody},
		} {
			fmt.Println()
			fmt.Println(sep)
			fmt.Println(theme.Title.Render(part.title))
			fmt.Println(sep)
			if part.body == "" {
				fmt.Println(theme.Hint.Render("(not captured)"))
				continue
			}
			fmt.Println(part.body)
		}
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		usage, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(usage) == 0 {
			fmt.Println(theme.Hint.Render("No LLM usage recorded yet."))
			return nil
		}

		fmt.Println(theme.Title.Render("Usage by Purpose"))
		t := theme.Table("Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
		var totalCalls, totalIn, totalOut int
		for _, u := range usage {
			t.Row(u.Purpose, fmt.Sprint(u.Calls), fmt.Sprint(u.InputTokens), fmt.Sprint(u.OutputTokens),
				fmt.Sprint(u.InputTokens+u.OutputTokens), fmt.Sprint(u.AvgLatencyMs))
			totalCalls += u.Calls
			totalIn += u.InputTokens
			totalOut += u.OutputTokens
		}
		t.Row("TOTAL", fmt.Sprint(totalCalls), fmt.Sprint(totalIn), fmt.Sprint(totalOut), fmt.Sprint(totalIn+totalOut), "")
		fmt.Println(t.Render())

		return printCostByModel(ctx, s.EventRepo())
	},
}

func printCostByModel(ctx context.Context, repo store.EventRepo) error {
	modelUsage, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		return fmt.Errorf("query model usage: %w", err)
	}
	if len(modelUsage) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println(theme.Title.Render("Estimated Cost (USD)"))
	t := theme.Table("Model", "Calls", "Input", "Output", "Cost")

	var totalCost float64
	var unknownModels []string
	for _, mu := range modelUsage {
		cost := llm.LookupCost(mu.Model)
		if cost == nil {
			unknownModels = append(unknownModels, mu.Model)
			t.Row(truncate(mu.Model, 32), fmt.Sprint(mu.Calls), fmt.Sprint(mu.InputTokens), fmt.Sprint(mu.OutputTokens), "?")
			continue
		}
		c := cost.Cost(mu.InputTokens, mu.OutputTokens)
		totalCost += c
		t.Row(truncate(mu.Model, 32), fmt.Sprint(mu.Calls), fmt.Sprint(mu.InputTokens), fmt.Sprint(mu.OutputTokens), formatCost(c))
	}
	label := "TOTAL"
	if len(unknownModels) > 0 {
		label = "TOTAL (partial)"
	}
	t.Row(label, "", "", "", formatCost(totalCost))
	fmt.Println(t.Render())

	if len(unknownModels) > 0 {
		fmt.Println(theme.Hint.Render("Pricing unavailable for: " + strings.Join(unknownModels, ", ")))
	}
	return nil
}

var llmLessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "List recent lesson generations and which sources were live",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLessonEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query lesson events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println(theme.Hint.Render("No lessons generated yet."))
			return nil
		}

		t := theme.Table("Timestamp", "Topic", "Insight", "Text", "Images", "Ms")
		for _, e := range events {
			topic := truncate(e.Topic, 32)
			if e.Fallback {
				topic += theme.Bad.Render(" (fallback)")
			}
			t.Row(
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				topic,
				liveLabel(e.InsightLive),
				liveLabel(e.TextLive),
				liveLabel(e.ImagesLive),
				fmt.Sprint(e.LatencyMs),
			)
		}
		fmt.Println(t.Render())
		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. lesson)")
	llmLessonsCmd.Flags().IntP("limit", "n", 20, "Number of events to show")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
	llmCmd.AddCommand(llmLessonsCmd)
}
