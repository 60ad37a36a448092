package lessons

// Quiz and flashcard shape every lesson must have, whether generated or
// mocked.
const (
	QuizLength     = 8
	FlashcardCount = 5
	OptionCount    = 4
)

// Difficulty grades a quiz question.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// DifficultySplit is the number of questions each lesson has per
// difficulty.
var DifficultySplit = map[Difficulty]int{
	Easy:   3,
	Medium: 3,
	Hard:   2,
}

// Content is the text portion of a lesson: summary, study guide,
// flashcards and quiz.
type Content struct {
	Title      string     `json:"title"`
	Summary    string     `json:"summary"`
	StudyGuide StudyGuide `json:"studyGuide"`
	Flashcards []Term     `json:"flashcards"`
	Quiz       []Question `json:"quiz"`

	// Live is true when the content came from the model rather than the
	// mock generator.
	Live bool `json:"-"`
}

// StudyGuide holds the reading material shown before the quiz.
type StudyGuide struct {
	KeyFacts []string        `json:"keyFacts"`
	KeyTerms []Term          `json:"keyTerms"`
	Timeline []TimelineEntry `json:"timeline"`
}

// Term is a term/definition pair, used for key terms and flashcards.
type Term struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
}

// TimelineEntry is one period in the topic's history.
type TimelineEntry struct {
	Period string `json:"period"`
	Event  string `json:"event"`
}

// Question is a multiple-choice quiz question.
type Question struct {
	Question      string     `json:"question"`
	Options       []string   `json:"options"`
	CorrectAnswer string     `json:"correctAnswer"`
	Explanation   string     `json:"explanation"`
	Difficulty    Difficulty `json:"difficulty"`
}

// IsCorrect reports whether answer matches the correct answer exactly.
func (q Question) IsCorrect(answer string) bool {
	return answer == q.CorrectAnswer
}
