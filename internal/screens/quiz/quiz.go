// Package quiz is the screen that drives a quiz engine: it runs loads,
// forwards answer keys, owns the reveal delay and hands off to the summary.
package quiz

import (
	"context"
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	qz "github.com/abhisek/levelquiz/internal/quiz"
	"github.com/abhisek/levelquiz/internal/router"
	"github.com/abhisek/levelquiz/internal/screen"
	"github.com/abhisek/levelquiz/internal/screens/summary"
	"github.com/abhisek/levelquiz/internal/ui/layout"
)

// DefaultAdvanceDelay is how long a revealed answer stays on screen.
const DefaultAdvanceDelay = 2 * time.Second

// Options configures a QuizScreen.
type Options struct {
	StartLevel int

	// AdvanceDelay defaults to DefaultAdvanceDelay when not positive.
	AdvanceDelay time.Duration

	Logger *zap.Logger
	Keys   *KeyMap
}

// QuizScreen implements screen.Screen around a *qz.Engine.
type QuizScreen struct {
	ctx    context.Context
	engine *qz.Engine
	log    *zap.Logger
	keys   KeyMap

	startLevel int
	delay      time.Duration

	// token identifies the pending advance timer. Bumping it cancels the timer.
	token uint64
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.StatusProvider = (*QuizScreen)(nil)

// New creates the screen. Loads run with ctx, so cancelling it aborts
// in-flight fetches.
func New(ctx context.Context, engine *qz.Engine, opts Options) *QuizScreen {
	s := &QuizScreen{
		ctx:        ctx,
		engine:     engine,
		log:        opts.Logger,
		keys:       DefaultKeys,
		startLevel: opts.StartLevel,
		delay:      opts.AdvanceDelay,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if opts.Keys != nil {
		s.keys = *opts.Keys
	}
	if s.startLevel < 1 {
		s.startLevel = 1
	}
	if s.delay <= 0 {
		s.delay = DefaultAdvanceDelay
	}
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	load, err := s.engine.Start(s.startLevel)
	if err != nil {
		s.log.Error("start quiz", zap.Error(err))
		return nil
	}
	return s.run(load)
}

func (s *QuizScreen) Title() string {
	snap := s.engine.Snapshot()
	switch {
	case snap.Level == 0:
		return "Quiz"
	case snap.Question != nil:
		return fmt.Sprintf("Level %d > Question %d", snap.Level, snap.QuestionIndex+1)
	default:
		return fmt.Sprintf("Level %d", snap.Level)
	}
}

func (s *QuizScreen) Status() layout.Status {
	snap := s.engine.Snapshot()
	return layout.Status{Level: snap.Level, Correct: snap.Correct}
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	switch s.engine.State() {
	case qz.StateAwaitingSelection:
		return []layout.KeyHint{
			{Key: "↑↓/1-9", Description: "Select"},
			{Key: "Enter", Description: "Check Answer"},
			{Key: "r", Description: "Restart"},
			{Key: "q", Description: "Quit"},
		}
	case qz.StateAnswerRevealed:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "q", Description: "Quit"},
		}
	case qz.StateCompleted:
		return []layout.KeyHint{
			{Key: "r", Description: "Retake"},
			{Key: "n", Description: "Next level"},
			{Key: "q", Description: "Quit"},
		}
	case qz.StateLoadFailed:
		return []layout.KeyHint{
			{Key: "r", Description: "Retry"},
			{Key: "q", Description: "Quit"},
		}
	}
	return []layout.KeyHint{{Key: "q", Description: "Quit"}}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadDoneMsg:
		return s, s.handleLoad(msg.Result)
	case advanceMsg:
		return s, s.handleAdvance(msg)
	case summary.RetakeMsg:
		return s, s.restart()
	case summary.NextLevelMsg:
		return s, s.nextLevel()
	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	state := s.engine.State()

	switch {
	case key.Matches(msg, s.keys.Quit):
		return tea.Quit
	case key.Matches(msg, s.keys.Restart):
		return s.restart()
	case key.Matches(msg, s.keys.Next):
		if state == qz.StateCompleted {
			return s.nextLevel()
		}
		return nil
	}

	switch state {
	case qz.StateAwaitingSelection:
		return s.handleSelectionKey(msg)
	case qz.StateAnswerRevealed:
		if key.Matches(msg, s.keys.Submit) {
			s.cancelAdvance()
			return s.advance()
		}
	}
	return nil
}

func (s *QuizScreen) handleSelectionKey(msg tea.KeyMsg) tea.Cmd {
	snap := s.engine.Snapshot()
	n := len(snap.Question.Answers)

	switch {
	case key.Matches(msg, s.keys.Up):
		s.selectAnswer(max(snap.Pending-1, 0))
	case key.Matches(msg, s.keys.Down):
		s.selectAnswer(min(snap.Pending+1, n-1))
	case key.Matches(msg, s.keys.Pick):
		s.selectAnswer(int(msg.String()[0] - '1'))
	case key.Matches(msg, s.keys.Submit):
		if !snap.HasPending() {
			return nil
		}
		if err := s.engine.Submit(); err != nil {
			s.log.Debug("submit rejected", zap.Error(err))
			return nil
		}
		return s.scheduleAdvance()
	}
	return nil
}

func (s *QuizScreen) selectAnswer(i int) {
	if err := s.engine.SelectAnswer(i); err != nil {
		s.log.Debug("selection rejected", zap.Int("index", i), zap.Error(err))
	}
}

func (s *QuizScreen) handleLoad(res qz.LoadResult) tea.Cmd {
	if !s.engine.Complete(res) {
		s.log.Debug("discarded stale load",
			zap.Uint64("generation", res.Generation),
			zap.Uint64("current", s.engine.Generation()))
		return nil
	}
	return s.summaryIfDone()
}

func (s *QuizScreen) handleAdvance(msg advanceMsg) tea.Cmd {
	if msg.Token != s.token || s.engine.State() != qz.StateAnswerRevealed {
		return nil
	}
	return s.advance()
}

func (s *QuizScreen) advance() tea.Cmd {
	if err := s.engine.AdvanceQuestion(); err != nil {
		s.log.Debug("advance rejected", zap.Error(err))
		return nil
	}
	return s.summaryIfDone()
}

func (s *QuizScreen) summaryIfDone() tea.Cmd {
	result, ok := s.engine.Result()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: summary.New(result)}
	}
}

func (s *QuizScreen) restart() tea.Cmd {
	s.cancelAdvance()
	load, err := s.engine.Restart()
	if err != nil {
		s.log.Debug("restart rejected", zap.Error(err))
		return nil
	}
	return s.run(load)
}

func (s *QuizScreen) nextLevel() tea.Cmd {
	s.cancelAdvance()
	load, err := s.engine.AdvanceLevel()
	if err != nil {
		s.log.Debug("advance level rejected", zap.Error(err))
		return nil
	}
	return s.run(load)
}

// run executes load off the update loop.
func (s *QuizScreen) run(load *qz.Load) tea.Cmd {
	ctx := s.ctx
	return func() tea.Msg {
		return loadDoneMsg{Result: load.Run(ctx)}
	}
}

func (s *QuizScreen) scheduleAdvance() tea.Cmd {
	s.token++
	token := s.token
	return tea.Tick(s.delay, func(time.Time) tea.Msg {
		return advanceMsg{Token: token}
	})
}

func (s *QuizScreen) cancelAdvance() {
	s.token++
}
