package lessons

import (
	"fmt"
	"strings"
)

// Validator checks generated lesson content before it reaches a learner.
// Implementations are stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in logs, e.g. "shape".
	Name() string

	// Validate returns nil if the content passes.
	Validate(c *Content) *ValidationError
}

// ValidationError describes why content failed validation.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// DefaultValidators returns the validators every generated lesson must pass.
func DefaultValidators() []Validator {
	return []Validator{
		&ShapeValidator{},
		&DifficultyValidator{},
		&QuestionValidator{},
	}
}

// ShapeValidator checks the fixed quiz and flashcard counts and that the
// summary is present.
type ShapeValidator struct{}

func (v *ShapeValidator) Name() string { return "shape" }

func (v *ShapeValidator) Validate(c *Content) *ValidationError {
	switch {
	case strings.TrimSpace(c.Summary) == "":
		return &ValidationError{Validator: v.Name(), Message: "summary is empty"}
	case len(c.Quiz) != QuizLength:
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("quiz has %d questions, want %d", len(c.Quiz), QuizLength)}
	case len(c.Flashcards) != FlashcardCount:
		return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("lesson has %d flashcards, want %d", len(c.Flashcards), FlashcardCount)}
	}
	return nil
}

// DifficultyValidator checks the per-difficulty question counts.
type DifficultyValidator struct{}

func (v *DifficultyValidator) Name() string { return "difficulty" }

func (v *DifficultyValidator) Validate(c *Content) *ValidationError {
	counts := make(map[Difficulty]int, len(DifficultySplit))
	for _, q := range c.Quiz {
		if _, ok := DifficultySplit[q.Difficulty]; !ok {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("unknown difficulty %q", q.Difficulty)}
		}
		counts[q.Difficulty]++
	}
	for d, want := range DifficultySplit {
		if counts[d] != want {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("%d %s questions, want %d", counts[d], d, want)}
		}
	}
	return nil
}

// QuestionValidator checks each question has text, four distinct options
// and a correct answer taken from the options.
type QuestionValidator struct{}

func (v *QuestionValidator) Name() string { return "question" }

func (v *QuestionValidator) Validate(c *Content) *ValidationError {
	for i, q := range c.Quiz {
		if strings.TrimSpace(q.Question) == "" {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("question %d has no text", i+1)}
		}
		if len(q.Options) != OptionCount {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("question %d has %d options, want %d", i+1, len(q.Options), OptionCount)}
		}
		seen := make(map[string]bool, len(q.Options))
		found := false
		for _, opt := range q.Options {
			if seen[opt] {
				return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("question %d repeats option %q", i+1, opt)}
			}
			seen[opt] = true
			if opt == q.CorrectAnswer {
				found = true
			}
		}
		if !found {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("question %d correct answer is not among its options", i+1)}
		}
	}
	return nil
}
