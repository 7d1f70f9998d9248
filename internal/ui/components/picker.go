package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/realtoken/questline/internal/ui/theme"
)

// MarkState is the per-option verdict rendered after a submission.
type MarkState int

const (
	MarkNone MarkState = iota
	MarkCorrect
	MarkWrong
	MarkAccepted // sequence option already locked into progress
)

// PickerOption is one selectable answer.
type PickerOption struct {
	ID    string
	Label string
	Mark  MarkState
}

// Picker is a vertical option selector shared by quiz and sequence
// steps. The screen owns submission: after Update, Picked reports the
// option chosen on enter, and the screen clears it once handled.
type Picker struct {
	Options []PickerOption
	Cursor  int
	Locked  bool

	picked string
}

// NewPicker creates a picker over the given options.
func NewPicker(options []PickerOption) Picker {
	return Picker{Options: options}
}

// Update handles keyboard navigation and selection.
func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	if p.Locked {
		return p, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if p.Cursor > 0 {
			p.Cursor--
		}
	case "down", "j":
		if p.Cursor < len(p.Options)-1 {
			p.Cursor++
		}
	case "enter":
		if p.Cursor >= 0 && p.Cursor < len(p.Options) {
			p.picked = p.Options[p.Cursor].ID
		}
	}

	return p, nil
}

// Picked returns the option ID chosen with enter, or "".
func (p Picker) Picked() string {
	return p.picked
}

// ClearPicked resets the pending pick after the screen has consumed it.
func (p *Picker) ClearPicked() {
	p.picked = ""
}

// SetMark records a verdict on the option with the given ID.
func (p *Picker) SetMark(id string, mark MarkState) {
	for i := range p.Options {
		if p.Options[i].ID == id {
			p.Options[i].Mark = mark
			return
		}
	}
}

// ClearMarks resets all option verdicts.
func (p *Picker) ClearMarks() {
	for i := range p.Options {
		p.Options[i].Mark = MarkNone
	}
}

// View renders the picker.
func (p Picker) View() string {
	var s string
	for i, opt := range p.Options {
		prefix := "  "
		if i == p.Cursor && !p.Locked {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s", prefix, opt.Label)

		switch opt.Mark {
		case MarkCorrect:
			s += theme.Correct.Render(line+"  ✓") + "\n"
		case MarkWrong:
			s += theme.Incorrect.Render(line+"  ✗") + "\n"
		case MarkAccepted:
			s += theme.Correct.Render(line+"  •") + "\n"
		default:
			if i == p.Cursor && !p.Locked {
				s += theme.Selected.Render(line) + "\n"
			} else {
				s += theme.Unselected.Render(line) + "\n"
			}
		}
	}
	return s
}
