package quiz

import "fmt"

// State is the current phase of the quiz progression.
type State int

const (
	StateLoading           State = iota // Waiting for the question sequence
	StateAwaitingSelection              // Showing a question, no answer submitted yet
	StateAnswerRevealed                 // Showing whether the submitted answer was right
	StateCompleted                      // Sequence exhausted, summary available
	StateLoadFailed                     // Fetch failed, Cause holds the reason
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAwaitingSelection:
		return "awaiting-selection"
	case StateAnswerRevealed:
		return "answer-revealed"
	case StateCompleted:
		return "completed"
	case StateLoadFailed:
		return "load-failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// NoChoice marks an absent pending or revealed answer index.
const NoChoice = -1

// Session is the single active attempt at a level. Owned by the Engine.
type Session struct {
	// ID identifies this attempt in logs.
	ID string

	Level     int
	Questions []Question

	// Index is the position of the current question, len(Questions) once done.
	Index int

	// Correct is the number of correctly answered questions so far.
	Correct int
}

// Snapshot is the read-only view of the engine handed to renderers.
type Snapshot struct {
	State     State
	SessionID string
	Level     int

	// QuestionIndex is zero-based; QuestionCount is 0 until loaded.
	QuestionIndex int
	QuestionCount int

	// Question is nil unless a question is on screen.
	Question *Question

	// Pending is the selected-but-unsubmitted answer, NoChoice if none.
	Pending int

	// Revealed is the correct answer index shown after submit, NoChoice otherwise.
	Revealed int

	// Chosen is the submitted answer during reveal, NoChoice otherwise.
	Chosen int

	// LastCorrect reports whether the submitted answer was right.
	LastCorrect bool

	Correct int

	// Cause is the human-readable failure reason in StateLoadFailed.
	Cause string
}

// HasPending reports whether an answer is selected and can be submitted.
func (s Snapshot) HasPending() bool {
	return s.Pending != NoChoice
}

// Result is the final score of a completed session.
type Result struct {
	Level   int
	Correct int
	Total   int
}

func (r Result) String() string {
	return fmt.Sprintf("You got %d out of %d correct answers.", r.Correct, r.Total)
}

// Accuracy returns Correct/Total, 0 for an empty sequence.
func (r Result) Accuracy() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total)
}
