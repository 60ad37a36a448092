package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/essence/internal/ui/theme"
)

var lessonCmd = &cobra.Command{
	Use:   "lesson <topic>",
	Short: "Generate a lesson for a topic and print it",
	Long: "Runs the full lesson pipeline (insights, text generation, images) once and\n" +
		"prints the result. Useful for checking credentials and prompt output.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := strings.TrimSpace(strings.Join(args, " "))
		if topic == "" {
			return fmt.Errorf("topic must not be empty")
		}
		asJSON, _ := cmd.Flags().GetBool("json")

		log, err := newLogger(cmd)
		if err != nil {
			return err
		}
		defer log.Sync()

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		l := newOrchestrator(cmd.Context(), st, log).GenerateLesson(cmd.Context(), topic)

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(l)
		}

		fmt.Println(theme.Title.Render(l.Title))
		fmt.Println(theme.Subtitle.Render(l.Summary))
		fmt.Println()

		src := l.Metadata.Sources
		fmt.Printf("%s insight=%s text=%s images=%s\n",
			theme.Label.Render("Sources:"), liveLabel(src.Insight), liveLabel(src.TextGeneration), liveLabel(src.Images))
		fmt.Println()

		fmt.Println(theme.Label.Render("Key facts"))
		for _, f := range l.StudyGuide.KeyFacts {
			fmt.Println("  • " + f)
		}
		fmt.Println()

		t := theme.Table("Term", "Definition")
		for _, fc := range l.Flashcards {
			t.Row(fc.Term, fc.Definition)
		}
		fmt.Println(t.Render())
		fmt.Println()

		q := theme.Table("#", "Difficulty", "Question", "Answer")
		for i, qq := range l.Quiz {
			q.Row(fmt.Sprint(i+1), string(qq.Difficulty), qq.Question, qq.CorrectAnswer)
		}
		fmt.Println(q.Render())
		return nil
	},
}

func liveLabel(live bool) string {
	if live {
		return theme.Good.Render("live")
	}
	return theme.Hint.Render("fallback")
}

func init() {
	lessonCmd.Flags().Bool("json", false, "Print the lesson as JSON")
}
