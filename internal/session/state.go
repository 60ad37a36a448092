// Package session drives one learner through a lesson: overview, optional
// study, an eight-question quiz, and results.
package session

import (
	"errors"
	"fmt"
)

// Phase is the current step of a quiz session.
type Phase int

const (
	PhaseOverview Phase = iota // Lesson summary, nothing started
	PhaseStudy                 // Study guide and flashcards
	PhaseQuiz                  // Answering questions
	PhaseResults               // Final score and achievements
)

var phaseNames = [...]string{"overview", "study", "quiz", "results"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

var (
	// ErrInvalidTransition is returned when an action is not allowed in the
	// current phase.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrNoLesson is returned when starting a session whose lesson is empty or
	// was discarded on restart.
	ErrNoLesson = errors.New("session has no lesson")

	// ErrNotFound is returned by Registry lookups for unknown or expired IDs.
	ErrNotFound = errors.New("session not found")
)

func invalidTransition(action string, from Phase) error {
	return fmt.Errorf("%s from %s: %w", action, from, ErrInvalidTransition)
}

// Learner identifies who is taking the quiz. Anonymous sessions have none
// and are never recorded.
type Learner struct {
	ID   string
	Name string
}

// AnswerResult is the locked outcome of one question.
type AnswerResult struct {
	Answer  string `json:"answer"`
	Correct bool   `json:"correct"`
	Locked  bool   `json:"locked"`

	// Explanation is only exposed for a wrong answer.
	Explanation string `json:"explanation,omitempty"`
}
