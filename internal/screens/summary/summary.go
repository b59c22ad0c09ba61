package summary

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/levelquiz/internal/quiz"
	"github.com/abhisek/levelquiz/internal/router"
	"github.com/abhisek/levelquiz/internal/screen"
	"github.com/abhisek/levelquiz/internal/ui/components"
	"github.com/abhisek/levelquiz/internal/ui/layout"
	"github.com/abhisek/levelquiz/internal/ui/theme"
)

// RetakeMsg asks the quiz screen to restart the level just finished.
type RetakeMsg struct{}

// NextLevelMsg asks the quiz screen to load the following level.
type NextLevelMsg struct{}

// Heading is shown above the score.
const Heading = "You have successfully completed the quiz."

var (
	retakeKey = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retake"))
	nextKey   = key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next level"))
)

// SummaryScreen shows the final score of a level.
type SummaryScreen struct {
	result qz.Result
	menu   components.Menu
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.StatusProvider = (*SummaryScreen)(nil)

func New(result qz.Result) *SummaryScreen {
	return &SummaryScreen{
		result: result,
		menu: components.NewMenu([]components.MenuItem{
			{Label: "Retake Quiz", Action: leaveWith(RetakeMsg{})},
			{Label: "Go to Next Level", Action: leaveWith(NextLevelMsg{})},
		}),
	}
}

// leaveWith pops the summary and hands msg to the screen underneath.
func leaveWith(msg tea.Msg) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return router.PopScreenMsg{Then: msg} }
	}
}

func (s *SummaryScreen) Init() tea.Cmd { return nil }

func (s *SummaryScreen) Title() string {
	return fmt.Sprintf("Level %d > Summary", s.result.Level)
}

func (s *SummaryScreen) Status() layout.Status {
	return layout.Status{Level: s.result.Level, Correct: s.result.Correct}
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Choose"},
		{Key: "r", Description: "Retake"},
		{Key: "n", Description: "Next level"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(kmsg, retakeKey):
			return s, leaveWith(RetakeMsg{})()
		case key.Matches(kmsg, nextKey):
			return s, leaveWith(NextLevelMsg{})()
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render(Heading))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Text).Render(s.result.String()))
	b.WriteString("\n")
	if s.result.Total > 0 {
		b.WriteString(center.Foreground(theme.TextDim).Render(
			fmt.Sprintf("Accuracy: %.0f%%", s.result.Accuracy()*100)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.menu.View()))
	return b.String()
}
