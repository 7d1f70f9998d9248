package components

import (
	"github.com/realtoken/questline/internal/ui/theme"
)

// Button renders a call-to-action label. Activation is handled by the
// owning screen; this only draws the active/inactive states.
type Button struct {
	Label  string
	Active bool
}

// NewButton creates a new button.
func NewButton(label string, active bool) Button {
	return Button{Label: label, Active: active}
}

// View renders the button.
func (b Button) View() string {
	label := " ▸ " + b.Label + " "
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}
