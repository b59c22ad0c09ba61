package quiz

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Engine is the quiz progression state machine.
//
// It is not safe for concurrent use. All transitions are expected to run on
// a single event loop; fetching happens outside the engine through Load.
type Engine struct {
	source    Source
	observers []func(Snapshot)
	newID     func() string

	state   State
	session *Session

	// generation tags the latest load request. Results from older
	// requests are dropped by Complete.
	generation uint64

	pending     int
	chosen      int
	lastCorrect bool
	cause       string
}

// Option configures an Engine.
type Option func(*Engine)

// WithObserver registers fn to be called with a snapshot after every transition.
func WithObserver(fn func(Snapshot)) Option {
	return func(e *Engine) {
		e.observers = append(e.observers, fn)
	}
}

// WithIDGenerator overrides how session IDs are minted.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		e.newID = fn
	}
}

// NewEngine creates an engine backed by src. No level is loaded until Start.
func NewEngine(src Source, opts ...Option) *Engine {
	e := &Engine{
		source:  src,
		newID:   uuid.NewString,
		state:   StateLoading,
		pending: NoChoice,
		chosen:  NoChoice,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load is an in-flight request for a level's question sequence.
type Load struct {
	Generation uint64
	Level      int
	source     Source
}

// Run fetches the questions. It touches only the source and is safe to
// call from any goroutine.
func (l *Load) Run(ctx context.Context) LoadResult {
	qs, err := l.source.FetchQuestions(ctx, l.Level)
	return LoadResult{
		Generation: l.Generation,
		Level:      l.Level,
		Questions:  qs,
		Err:        err,
	}
}

// LoadResult is the completion event of a Load.
type LoadResult struct {
	Generation uint64
	Level      int
	Questions  []Question
	Err        error
}

// Start begins a new session at level and returns the load to execute.
// Any in-flight load is superseded.
func (e *Engine) Start(level int) (*Load, error) {
	if level < 1 {
		return nil, &ContractViolation{
			Op:     "start",
			State:  e.state,
			Reason: fmt.Sprintf("level %d is not positive", level),
		}
	}

	e.generation++
	e.session = &Session{ID: e.newID(), Level: level}
	e.state = StateLoading
	e.cause = ""
	e.clearChoice()
	e.notify()

	return &Load{Generation: e.generation, Level: level, source: e.source}, nil
}

// Restart discards progress and reloads the current level.
func (e *Engine) Restart() (*Load, error) {
	if e.session == nil {
		return nil, &ContractViolation{Op: "restart", State: e.state, Reason: "no level started"}
	}
	return e.Start(e.session.Level)
}

// AdvanceLevel moves to the next level and loads it.
func (e *Engine) AdvanceLevel() (*Load, error) {
	if e.session == nil {
		return nil, &ContractViolation{Op: "advance-level", State: e.state, Reason: "no level started"}
	}
	return e.Start(e.session.Level + 1)
}

// Complete applies a load result. It returns false when the result belongs
// to a superseded request and was discarded.
func (e *Engine) Complete(res LoadResult) bool {
	if res.Generation != e.generation || e.state != StateLoading || e.session == nil {
		return false
	}

	if res.Err != nil {
		e.fail(res.Err)
		return true
	}

	for i, q := range res.Questions {
		if err := q.Validate(); err != nil {
			e.fail(&MalformedDataError{
				Level:  res.Level,
				Reason: fmt.Sprintf("question %d", i+1),
				Err:    err,
			})
			return true
		}
	}

	e.session.Questions = slices.Clone(res.Questions)
	e.session.Index = 0
	e.session.Correct = 0
	e.clearChoice()
	if len(e.session.Questions) == 0 {
		e.state = StateCompleted
	} else {
		e.state = StateAwaitingSelection
	}
	e.notify()
	return true
}

// SelectAnswer records index as the pending choice for the current
// question, replacing any earlier selection.
func (e *Engine) SelectAnswer(index int) error {
	if e.state != StateAwaitingSelection {
		return &ContractViolation{Op: "select-answer", State: e.state}
	}
	q := e.current()
	if index < 0 || index >= len(q.Answers) {
		return &ContractViolation{
			Op:     "select-answer",
			State:  e.state,
			Reason: fmt.Sprintf("index %d out of range [0,%d)", index, len(q.Answers)),
		}
	}
	e.pending = index
	e.notify()
	return nil
}

// Submit checks the pending choice against the current question.
func (e *Engine) Submit() error {
	if e.state != StateAwaitingSelection {
		return &ContractViolation{Op: "submit", State: e.state}
	}
	if e.pending == NoChoice {
		return &ContractViolation{Op: "submit", State: e.state, Reason: "no answer selected"}
	}

	q := e.current()
	e.chosen = e.pending
	e.pending = NoChoice
	e.lastCorrect = e.chosen == q.CorrectIndex
	if e.lastCorrect {
		e.session.Correct++
	}
	e.state = StateAnswerRevealed
	e.notify()
	return nil
}

// AdvanceQuestion moves past a revealed answer.
func (e *Engine) AdvanceQuestion() error {
	if e.state != StateAnswerRevealed {
		return &ContractViolation{Op: "advance-question", State: e.state}
	}

	e.session.Index++
	e.clearChoice()
	if e.session.Index < len(e.session.Questions) {
		e.state = StateAwaitingSelection
	} else {
		e.state = StateCompleted
	}
	e.notify()
	return nil
}

// State returns the current state.
func (e *Engine) State() State {
	return e.state
}

// Level returns the level of the active session, 0 before the first Start.
func (e *Engine) Level() int {
	if e.session == nil {
		return 0
	}
	return e.session.Level
}

// Generation returns the tag of the most recent load request.
func (e *Engine) Generation() uint64 {
	return e.generation
}

// Result returns the final score. ok is false unless the session is completed.
func (e *Engine) Result() (Result, bool) {
	if e.state != StateCompleted || e.session == nil {
		return Result{}, false
	}
	return Result{
		Level:   e.session.Level,
		Correct: e.session.Correct,
		Total:   len(e.session.Questions),
	}, true
}

// Snapshot returns a copy of the state for rendering.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		State:    e.state,
		Pending:  e.pending,
		Revealed: NoChoice,
		Chosen:   NoChoice,
		Cause:    e.cause,
	}
	if e.session == nil {
		return snap
	}

	snap.SessionID = e.session.ID
	snap.Level = e.session.Level
	snap.QuestionIndex = e.session.Index
	snap.QuestionCount = len(e.session.Questions)
	snap.Correct = e.session.Correct

	switch e.state {
	case StateAwaitingSelection, StateAnswerRevealed:
		q := e.current()
		q.Answers = slices.Clone(q.Answers)
		snap.Question = &q
	}
	if e.state == StateAnswerRevealed {
		snap.Revealed = snap.Question.CorrectIndex
		snap.Chosen = e.chosen
		snap.LastCorrect = e.lastCorrect
	}
	return snap
}

func (e *Engine) current() Question {
	return e.session.Questions[e.session.Index]
}

func (e *Engine) clearChoice() {
	e.pending = NoChoice
	e.chosen = NoChoice
	e.lastCorrect = false
}

func (e *Engine) fail(err error) {
	var netErr *NetworkError
	var dataErr *MalformedDataError
	if !errors.As(err, &netErr) && !errors.As(err, &dataErr) {
		err = &NetworkError{Level: e.session.Level, Err: err}
	}
	e.state = StateLoadFailed
	e.cause = err.Error()
	e.clearChoice()
	e.notify()
}

func (e *Engine) notify() {
	if len(e.observers) == 0 {
		return
	}
	snap := e.Snapshot()
	for _, fn := range e.observers {
		fn(snap)
	}
}
