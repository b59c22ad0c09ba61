package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	qz "github.com/abhisek/levelquiz/internal/quiz"
	"github.com/abhisek/levelquiz/internal/screens/summary"
	"github.com/abhisek/levelquiz/internal/ui/components"
	"github.com/abhisek/levelquiz/internal/ui/theme"
)

// FailureMessage is shown when a level could not be loaded.
const FailureMessage = "Failed to load quiz data. Please try again later."

func (s *QuizScreen) View(width, height int) string {
	snap := s.engine.Snapshot()
	switch snap.State {
	case qz.StateAwaitingSelection, qz.StateAnswerRevealed:
		return renderQuestion(snap, width)
	case qz.StateCompleted:
		return renderCompleted(snap, width)
	case qz.StateLoadFailed:
		return renderFailed(snap.Cause, width)
	}
	return renderLoading(snap.Level, width)
}

func renderLoading(level, width int) string {
	msg := "Loading quiz..."
	if level > 0 {
		msg = fmt.Sprintf("Loading level %d...", level)
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n" + msg)
}

func renderFailed(cause string, width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center.Foreground(theme.Error).Bold(true).Render(FailureMessage))
	b.WriteString("\n\n")
	if cause != "" {
		b.WriteString(center.Foreground(theme.TextDim).Render(cause))
		b.WriteString("\n\n")
	}
	b.WriteString(center.Inherit(theme.Hint).Render("Press r to retry or q to quit."))
	return b.String()
}

func renderQuestion(snap qz.Snapshot, width int) string {
	inner := min(width-4, 72)

	var b strings.Builder
	b.WriteString(components.Progress{Done: snap.QuestionIndex, Total: snap.QuestionCount, Width: inner}.View())
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(inner).Foreground(theme.Text).Bold(true).Render(snap.Question.Prompt))
	b.WriteString("\n\n")
	b.WriteString(components.NewAnswerList(snap).View())
	b.WriteString("\n")

	if snap.State == qz.StateAnswerRevealed {
		if snap.LastCorrect {
			b.WriteString(theme.Correct.Render("Correct!"))
		} else {
			b.WriteString(theme.Incorrect.Render("Wrong. ") +
				theme.Body.Render("The answer was "+snap.Question.Answers[snap.Revealed]+"."))
		}
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Next question shortly, or press Enter."))
	} else {
		b.WriteString(components.NewButton("Check Answer", snap.HasPending()).View())
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Card.Width(inner+6).Render(b.String()))
}

func renderCompleted(snap qz.Snapshot, width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	result := qz.Result{Level: snap.Level, Correct: snap.Correct, Total: snap.QuestionCount}

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render(summary.Heading))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Text).Render(result.String()))
	b.WriteString("\n\n")
	b.WriteString(center.Inherit(theme.Hint).Render("Press r to retake or n for the next level."))
	return b.String()
}
