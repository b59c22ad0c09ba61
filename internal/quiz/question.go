package quiz

import (
	"context"
	"fmt"
)

// Question is a single multiple-choice question ready for display.
type Question struct {
	// Prompt is the question text shown to the player.
	Prompt string `json:"prompt"`

	// Answers holds the options in display order. At least two.
	Answers []string `json:"answers"`

	// CorrectIndex is the index into Answers of the right option.
	CorrectIndex int `json:"correct_index"`
}

// Validate checks the structural invariants of a question.
func (q Question) Validate() error {
	if q.Prompt == "" {
		return fmt.Errorf("question prompt is empty")
	}
	if len(q.Answers) < 2 {
		return fmt.Errorf("question %q has %d answers, need at least 2", q.Prompt, len(q.Answers))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Answers) {
		return fmt.Errorf("question %q: correct index %d out of range [0,%d)", q.Prompt, q.CorrectIndex, len(q.Answers))
	}
	return nil
}

// Source supplies the ordered question sequence for a level.
//
// Implementations report transport failures as *NetworkError and bad
// payloads as *MalformedDataError. The engine treats any other error as a
// network failure.
type Source interface {
	FetchQuestions(ctx context.Context, level int) ([]Question, error)
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc func(ctx context.Context, level int) ([]Question, error)

func (f SourceFunc) FetchQuestions(ctx context.Context, level int) ([]Question, error) {
	return f(ctx, level)
}
