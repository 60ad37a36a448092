package achievements

// Type identifies an achievement.
type Type string

const (
	PerfectScore     Type = "perfect_score"
	SpeedDemon       Type = "speed_demon"
	QuizMaster       Type = "quiz_master"
	CulturalExplorer Type = "cultural_explorer"
)

// AllTypes returns all achievement types in display order.
func AllTypes() []Type {
	return []Type{PerfectScore, SpeedDemon, QuizMaster, CulturalExplorer}
}

// Title returns the badge title.
func (t Type) Title() string {
	switch t {
	case PerfectScore:
		return "Perfect Scholar!"
	case SpeedDemon:
		return "Speed Demon!"
	case QuizMaster:
		return "Quiz Master!"
	case CulturalExplorer:
		return "Cultural Explorer!"
	default:
		return string(t)
	}
}

// Description explains how the badge is earned.
func (t Type) Description() string {
	switch t {
	case PerfectScore:
		return "Scored 100% on a quiz"
	case SpeedDemon:
		return "Completed quiz in under 1 minute with 80%+ score"
	case QuizMaster:
		return "Completed 10 quizzes"
	case CulturalExplorer:
		return "Studied 5 different cultural topics"
	default:
		return ""
	}
}

// Icon returns the display icon for the badge.
func (t Type) Icon() string {
	switch t {
	case PerfectScore:
		return "🏆"
	case SpeedDemon:
		return "⚡"
	case QuizMaster:
		return "🎓"
	case CulturalExplorer:
		return "🌍"
	default:
		return "✦"
	}
}

// Achievement is an unlocked badge as shown to the learner.
type Achievement struct {
	Type        Type   `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Badge returns the Achievement for t.
func (t Type) Badge() Achievement {
	return Achievement{Type: t, Title: t.Title(), Description: t.Description(), Icon: t.Icon()}
}
