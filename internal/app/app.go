package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/levelquiz/internal/metrics"
	qz "github.com/abhisek/levelquiz/internal/quiz"
	"github.com/abhisek/levelquiz/internal/router"
	"github.com/abhisek/levelquiz/internal/screen"
	"github.com/abhisek/levelquiz/internal/screens/quiz"
	"github.com/abhisek/levelquiz/internal/ui/layout"
)

// Options holds the dependencies of the TUI.
type Options struct {
	Source       qz.Source
	StartLevel   int
	AdvanceDelay time.Duration

	// Logger and Metrics may be nil.
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

func newAppModel(ctx context.Context, opts Options) AppModel {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := qz.NewEngine(opts.Source,
		qz.WithObserver(logTransitions(log.Named("engine"))),
		qz.WithObserver(opts.Metrics.Observer()),
	)
	quizScreen := quiz.New(ctx, engine, quiz.Options{
		StartLevel:   opts.StartLevel,
		AdvanceDelay: opts.AdvanceDelay,
		Logger:       log.Named("quiz"),
	})
	return AppModel{router: router.New(quizScreen)}
}

// logTransitions writes a debug line per engine transition.
func logTransitions(log *zap.Logger) func(qz.Snapshot) {
	return func(s qz.Snapshot) {
		log.Debug("transition",
			zap.Stringer("state", s.State),
			zap.String("session", s.SessionID),
			zap.Int("level", s.Level),
			zap.Int("question", s.QuestionIndex),
			zap.Int("correct", s.Correct),
		)
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	return m, m.router.Update(msg)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()

	var status layout.Status
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}
	header := layout.RenderHeader(active.Title(), status, m.width)

	var hints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		hints = hp.KeyHints()
	}
	if m.router.Depth() > 1 {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	footer := layout.RenderFooter(hints, m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(ctx, opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
