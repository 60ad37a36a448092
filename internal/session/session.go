package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/essence/internal/achievements"
	"github.com/abhisek/essence/internal/logger"
	"github.com/abhisek/essence/internal/mosaic"
	"github.com/abhisek/essence/internal/scores"
)

// saveFailedNotice is shown on the results screen when the score could not
// be recorded.
const saveFailedNotice = "Your score could not be saved. Please try again later."

// Option configures a Session.
type Option func(*Session)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithLogger sets the logger used for recording failures.
func WithLogger(log *logger.Logger) Option {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// Session is the quiz state machine for one lesson. All methods are safe
// for concurrent use.
type Session struct {
	mu sync.Mutex

	id       string
	lesson   *mosaic.Lesson
	learner  *Learner
	recorder Recorder
	now      func() time.Time
	log      *logger.Logger

	phase   Phase
	index   int
	answers []AnswerResult
	correct int

	startedAt    time.Time
	elapsed      int
	scoreID      string
	achievements []achievements.Achievement
	stats        *scores.Stats
	notice       string
}

// New creates a session in the overview phase. learner and rec may be nil,
// in which case results are not recorded.
func New(lesson *mosaic.Lesson, learner *Learner, rec Recorder, opts ...Option) *Session {
	s := &Session{
		lesson:   lesson,
		learner:  learner,
		recorder: rec,
		now:      time.Now,
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.reset()
	return s
}

// ID returns the registry key, empty for sessions created outside a Registry.
func (s *Session) ID() string {
	return s.id
}

// Learner returns the session owner, or nil for anonymous sessions.
func (s *Session) Learner() *Learner {
	return s.learner
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// StartStudy moves from overview to study.
func (s *Session) StartStudy() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseOverview {
		return invalidTransition("start study", s.phase)
	}
	if s.lesson == nil {
		return ErrNoLesson
	}
	s.phase = PhaseStudy
	return nil
}

// StartQuiz moves from overview or study to the first question and starts
// the clock.
func (s *Session) StartQuiz() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseOverview && s.phase != PhaseStudy {
		return invalidTransition("start quiz", s.phase)
	}
	if s.lesson == nil || len(s.lesson.Quiz) == 0 {
		return ErrNoLesson
	}
	s.phase = PhaseQuiz
	s.index = 0
	s.answers = make([]AnswerResult, len(s.lesson.Quiz))
	s.startedAt = s.now()
	return nil
}

// SubmitAnswer locks an answer for the current question. Once locked,
// further submissions return the locked result unchanged.
func (s *Session) SubmitAnswer(answer string) (AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseQuiz {
		return AnswerResult{}, invalidTransition("submit answer", s.phase)
	}

	cur := &s.answers[s.index]
	if cur.Locked {
		return *cur, nil
	}

	q := s.lesson.Quiz[s.index]
	*cur = AnswerResult{Answer: answer, Locked: true, Correct: q.IsCorrect(answer)}
	if cur.Correct {
		s.correct++
	} else {
		cur.Explanation = q.Explanation
	}
	return *cur, nil
}

// Advance moves to the next question, or from the last question to results.
// An unanswered question counts as wrong. Entering results records the
// outcome for a known learner; recording problems only set the notice.
func (s *Session) Advance(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseQuiz {
		return invalidTransition("advance", s.phase)
	}
	if s.index < len(s.lesson.Quiz)-1 {
		s.index++
		return nil
	}
	s.finish(ctx)
	return nil
}

func (s *Session) finish(ctx context.Context) {
	s.phase = PhaseResults
	s.elapsed = int(s.now().Sub(s.startedAt) / time.Second)
	s.achievements = []achievements.Achievement{}

	if s.learner == nil || s.recorder == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("recording quiz result panicked", "session_id", s.id, "panic", fmt.Sprint(r))
			s.notice = saveFailedNotice
		}
	}()

	rec, err := s.recorder.Record(ctx, *s.learner, s.lesson.Topic, s.correct, len(s.lesson.Quiz), s.elapsed)
	if err != nil {
		s.log.Warn("failed to record quiz result",
			"session_id", s.id, "user_id", s.learner.ID, "topic", s.lesson.Topic, "error", err)
		s.notice = saveFailedNotice
		return
	}
	s.scoreID = rec.ScoreID
	if rec.Achievements != nil {
		s.achievements = rec.Achievements
	}
	s.stats = rec.Stats
}

// Restart returns to overview and clears all quiz progress. The lesson is
// discarded unless keepLesson is set.
func (s *Session) Restart(keepLesson bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !keepLesson {
		s.lesson = nil
	}
	s.reset()
}

func (s *Session) reset() {
	s.phase = PhaseOverview
	s.index = 0
	s.answers = nil
	s.correct = 0
	s.startedAt = time.Time{}
	s.elapsed = 0
	s.scoreID = ""
	s.achievements = nil
	s.stats = nil
	s.notice = ""
}

// Snapshot is a point-in-time view of a session.
type Snapshot struct {
	ID             string                     `json:"id,omitempty"`
	Phase          Phase                      `json:"phase"`
	Lesson         *mosaic.Lesson             `json:"lesson"`
	QuestionIndex  int                        `json:"currentQuestionIndex"`
	TotalQuestions int                        `json:"totalQuestions"`
	CorrectAnswers int                        `json:"correctAnswers"`
	Current        *AnswerResult              `json:"currentAnswer,omitempty"`
	Percentage     int                        `json:"percentage"`
	ElapsedSeconds int                        `json:"elapsedSeconds"`
	ScoreID        string                     `json:"scoreId,omitempty"`
	Achievements   []achievements.Achievement `json:"achievements,omitempty"`
	Stats          *scores.Stats              `json:"stats,omitempty"`
	Notice         string                     `json:"notice,omitempty"`
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:             s.id,
		Phase:          s.phase,
		Lesson:         s.lesson,
		QuestionIndex:  s.index,
		CorrectAnswers: s.correct,
		ElapsedSeconds: s.elapsed,
		ScoreID:        s.scoreID,
		Achievements:   s.achievements,
		Stats:          s.stats,
		Notice:         s.notice,
	}
	if s.lesson != nil {
		snap.TotalQuestions = len(s.lesson.Quiz)
	}
	if s.phase == PhaseQuiz && s.answers[s.index].Locked {
		cur := s.answers[s.index]
		snap.Current = &cur
	}
	if s.phase == PhaseResults {
		snap.Percentage = scores.Percentage(s.correct, snap.TotalQuestions)
	}
	return snap
}
