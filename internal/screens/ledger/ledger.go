package ledger

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/realtoken/questline/internal/rewards"
	"github.com/realtoken/questline/internal/screen"
	"github.com/realtoken/questline/internal/ui/components"
	"github.com/realtoken/questline/internal/ui/layout"
	"github.com/realtoken/questline/internal/ui/theme"
)

const pageSize = 10

// LedgerScreen lists the reward history, most recent first.
type LedgerScreen struct {
	ledger *rewards.Ledger
	offset int
}

var _ screen.Screen = (*LedgerScreen)(nil)
var _ screen.KeyHintProvider = (*LedgerScreen)(nil)

// New creates the reward history screen.
func New(ledger *rewards.Ledger) *LedgerScreen {
	return &LedgerScreen{ledger: ledger}
}

func (l *LedgerScreen) Init() tea.Cmd {
	return nil
}

func (l *LedgerScreen) Title() string {
	return "Reward History"
}

func (l *LedgerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (l *LedgerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}

	total := len(l.ledger.GetSummary().History)
	switch kmsg.String() {
	case "up", "k":
		if l.offset > 0 {
			l.offset--
		}
	case "down", "j":
		if l.offset+pageSize < total {
			l.offset++
		}
	}
	return l, nil
}

func (l *LedgerScreen) View(width, height int) string {
	summary := l.ledger.GetSummary()
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Reward.Render(fmt.Sprintf("Balance: %.4f REAL", summary.TotalTokens)))
	b.WriteString(theme.Hint.Render(fmt.Sprintf("   (%.4f REAL per XP)", summary.ConversionRate)))
	b.WriteString("\n\n")

	if len(summary.History) == 0 {
		b.WriteString(theme.Hint.Render("No rewards yet. Complete a quest!"))
	} else {
		end := l.offset + pageSize
		if end > len(summary.History) {
			end = len(summary.History)
		}
		for _, entry := range summary.History[l.offset:end] {
			b.WriteString(renderEntry(entry))
			b.WriteString("\n")
		}
		if len(summary.History) > pageSize {
			b.WriteString("\n")
			b.WriteString(theme.Hint.Render(fmt.Sprintf("%d-%d of %d", l.offset+1, end, len(summary.History))))
		}
	}

	return layout.Center(components.Card(b.String(), cw), width, height)
}

func renderEntry(entry rewards.Entry) string {
	when := time.UnixMilli(entry.Timestamp).Local().Format("Jan 02 15:04")

	label := entry.Meta.Label
	if label == "" {
		label = entry.Meta.Reason
	}
	if label == "" {
		label = "reward"
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		theme.Hint.Render(when),
		theme.Body.Render("  "+label),
		theme.Reward.Render(fmt.Sprintf("  +%.4f REAL", entry.Tokens)),
		theme.Hint.Render(fmt.Sprintf("  (%.0f XP)", entry.Points)),
	)
}
