package components

import (
	"github.com/abhisek/levelquiz/internal/ui/theme"
)

// Button is a render-only push button. Key handling stays with the screen.
type Button struct {
	Label  string
	Active bool
}

func NewButton(label string, active bool) Button {
	return Button{Label: label, Active: active}
}

func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}
