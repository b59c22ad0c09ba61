package components

import (
	"fmt"
	"strings"

	"github.com/abhisek/levelquiz/internal/quiz"
	"github.com/abhisek/levelquiz/internal/ui/theme"
)

// Result labels appended to answers after a submit.
const (
	CorrectLabel = " - Correct"
	WrongLabel   = " - Wrong"
)

// AnswerList renders the answer options of the current question.
type AnswerList struct {
	Answers []string

	// Pending is highlighted while awaiting selection.
	Pending int

	// Revealed and Chosen are set once the answer has been checked.
	Revealed int
	Chosen   int
}

// NewAnswerList builds the list from an engine snapshot. It is empty when
// no question is on screen.
func NewAnswerList(s quiz.Snapshot) AnswerList {
	l := AnswerList{Pending: s.Pending, Revealed: s.Revealed, Chosen: s.Chosen}
	if s.Question != nil {
		l.Answers = s.Question.Answers
	}
	return l
}

func (l AnswerList) revealed() bool {
	return l.Revealed != quiz.NoChoice
}

// Label returns the text for answer i including any result suffix.
func (l AnswerList) Label(i int) string {
	text := fmt.Sprintf("%d. %s", i+1, l.Answers[i])
	if !l.revealed() {
		return text
	}
	switch {
	case i == l.Chosen && i == l.Revealed:
		return text + CorrectLabel
	case i == l.Chosen:
		return text + WrongLabel
	case i == l.Revealed:
		return text + CorrectLabel
	}
	return text
}

func (l AnswerList) View() string {
	var b strings.Builder
	for i := range l.Answers {
		prefix := "  "
		if !l.revealed() && i == l.Pending {
			prefix = "▸ "
		}
		line := prefix + l.Label(i)

		style := theme.Unselected
		switch {
		case l.revealed() && i == l.Revealed:
			style = theme.Correct
		case l.revealed() && i == l.Chosen:
			style = theme.Incorrect
		case l.revealed():
			style = theme.Disabled
		case i == l.Pending:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
