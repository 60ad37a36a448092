package achievements

import "github.com/abhisek/essence/internal/scores"

// Rules holds the unlock thresholds.
type Rules struct {
	PerfectPercentage  int // PerfectScore at exactly this percentage
	SpeedSeconds       int // SpeedDemon when elapsed is strictly below this
	SpeedMinPercentage int // ...and percentage is at least this
	MasterQuizzes      int // QuizMaster at this many recorded quizzes
	ExplorerTopics     int // CulturalExplorer at this many distinct topics
}

// DefaultRules returns the standard thresholds.
func DefaultRules() Rules {
	return Rules{
		PerfectPercentage:  100,
		SpeedSeconds:       60,
		SpeedMinPercentage: 80,
		MasterQuizzes:      10,
		ExplorerTopics:     5,
	}
}

// Outcome is the result of one completed quiz.
type Outcome struct {
	ScoreID        string
	Topic          string
	Percentage     int
	ElapsedSeconds int
}

// Evaluate returns the achievements unlocked by outcome given the user's
// stats, which already include outcome. Each rule is independent. The
// result depends only on its inputs and is ordered as AllTypes.
func Evaluate(r Rules, o Outcome, stats scores.Stats) []Achievement {
	out := []Achievement{}
	if o.Percentage == r.PerfectPercentage {
		out = append(out, PerfectScore.Badge())
	}
	if o.ElapsedSeconds < r.SpeedSeconds && o.Percentage >= r.SpeedMinPercentage {
		out = append(out, SpeedDemon.Badge())
	}
	if stats.TotalQuizzes >= r.MasterQuizzes {
		out = append(out, QuizMaster.Badge())
	}
	if stats.TopicsStudied >= r.ExplorerTopics {
		out = append(out, CulturalExplorer.Badge())
	}
	return out
}
