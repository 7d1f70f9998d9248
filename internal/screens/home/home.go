package home

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/realtoken/questline/internal/content"
	"github.com/realtoken/questline/internal/flow"
	"github.com/realtoken/questline/internal/progression"
	"github.com/realtoken/questline/internal/rewards"
	"github.com/realtoken/questline/internal/router"
	"github.com/realtoken/questline/internal/screen"
	"github.com/realtoken/questline/internal/screens/ledger"
	"github.com/realtoken/questline/internal/screens/quest"
	"github.com/realtoken/questline/internal/ui/components"
	"github.com/realtoken/questline/internal/ui/layout"
	"github.com/realtoken/questline/internal/ui/theme"
)

// Options carries the home screen's dependencies.
type Options struct {
	Engine      *flow.Engine
	Progression *progression.Manager
	Ledger      *rewards.Ledger
	Logger      *zap.Logger
	Language    string
	Clock       func() time.Time
}

// HomeScreen lists available quests, surfaces today's daily challenge
// and shows progression stats.
type HomeScreen struct {
	opts  Options
	clock func() time.Time

	loading bool
	spin    components.Spinner
	menu    components.Menu
	daily   *content.DailyChallenge
	errMsg  string
}

var _ screen.Screen = (*HomeScreen)(nil)

type contentLoadedMsg struct {
	payload *content.Payload
}

type contentFailedMsg struct {
	err error
}

// New creates the home screen. Content is fetched asynchronously on
// Init; a spinner is shown until it arrives.
func New(opts Options) *HomeScreen {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	return &HomeScreen{
		opts:    opts,
		clock:   clock,
		loading: true,
		spin:    components.NewSpinner("Summoning quests..."),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return tea.Batch(h.spin.Init(), h.loadContent())
}

func (h *HomeScreen) loadContent() tea.Cmd {
	return func() tea.Msg {
		payload, err := h.opts.Engine.LoadLanguage(context.Background(), h.opts.Language)
		if err != nil {
			return contentFailedMsg{err: err}
		}
		return contentLoadedMsg{payload: payload}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case contentLoadedMsg:
		h.loading = false
		h.daily = h.opts.Engine.DailyChallenge(h.clock())
		h.menu = components.NewMenu(h.buildMenu())
		return h, nil

	case contentFailedMsg:
		h.loading = false
		h.errMsg = msg.err.Error()
		h.opts.Logger.Warn("content load failed", zap.Error(msg.err))
		return h, nil
	}

	if h.loading {
		var cmd tea.Cmd
		h.spin, cmd = h.spin.Update(msg)
		return h, cmd
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// buildMenu assembles the daily challenge, the quest catalog, the
// reward history and the exit entry.
func (h *HomeScreen) buildMenu() []components.MenuItem {
	completions := h.opts.Progression.GetState().QuestCompletions

	var items []components.MenuItem

	if h.daily != nil {
		daily := h.daily
		items = append(items, components.MenuItem{
			Label:       "DAILY: " + daily.Quest.Title,
			Description: fmt.Sprintf("Bonus +%.0f XP and a streak day", daily.BonusPoints),
			Badge:       "★",
			Action: func() tea.Cmd {
				return h.startQuest(daily.Quest.ID, flow.Context{
					IsDaily:     true,
					BonusPoints: daily.BonusPoints,
					Date:        h.clock(),
				})
			},
		})
	}

	for _, q := range h.opts.Engine.Quests() {
		q := q
		badge := fmt.Sprintf("+%.0f XP", q.RewardPoints)
		if n := completions[q.ID]; n > 0 {
			badge = fmt.Sprintf("✓ %d  %s", n, badge)
		}
		items = append(items, components.MenuItem{
			Label:       q.Title,
			Description: q.Summary,
			Badge:       badge,
			Action: func() tea.Cmd {
				return h.startQuest(q.ID, flow.Context{})
			},
		})
	}

	items = append(items,
		components.MenuItem{Label: "REWARD HISTORY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: ledger.New(h.opts.Ledger)}
			}
		}},
		components.MenuItem{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)

	return items
}

func (h *HomeScreen) startQuest(questID string, questContext flow.Context) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{
			Screen: quest.New(quest.Options{
				Engine:  h.opts.Engine,
				Logger:  h.opts.Logger,
				QuestID: questID,
				Context: questContext,
			}),
		}
	}
}

func (h *HomeScreen) View(width, height int) string {
	if h.loading {
		return layout.Center(h.spin.View(), width, height)
	}
	if h.errMsg != "" {
		msg := theme.Incorrect.Render("Could not load quest content") + "\n\n" +
			theme.Hint.Render(h.errMsg)
		return layout.Center(msg, width, height)
	}

	cw := components.ContentWidth(width)
	compact := layout.IsCompact(width, height+8)

	var sections []string

	sections = append(sections, theme.Title.Width(cw).Render("◈ QUESTLINE ◈"))
	if !compact {
		sections = append(sections, theme.Subtitle.Width(cw).Render("Learn. Quest. Earn REAL."))
	}

	sections = append(sections, h.renderStats(cw))

	if h.daily != nil {
		banner := theme.Reward.Render("Today's challenge: ") +
			theme.Body.Render(h.daily.Quest.Title) +
			theme.Hint.Render(fmt.Sprintf("  +%.0f XP", h.daily.BonusPoints))
		sections = append(sections, components.Banner(banner, cw))
	}

	sections = append(sections, components.Card(h.menu.View(), cw))

	content := strings.Join(sections, "\n\n")
	return layout.Center(content, width, height)
}

func (h *HomeScreen) renderStats(cw int) string {
	state := h.opts.Progression.GetState()
	summary := h.opts.Ledger.GetSummary()

	threshold := progression.NextLevelThreshold(state.Level)
	base := threshold - progression.LevelStep
	percent := 0.0
	if threshold > base {
		percent = (state.XP - base) / (threshold - base)
	}

	bar := components.NewProgressBar(
		fmt.Sprintf("Level %d", state.Level),
		percent,
		fmt.Sprintf("%.0f/%.0f XP", state.XP, threshold),
		cw-8,
	)

	line := lipgloss.JoinHorizontal(lipgloss.Top,
		theme.Body.Render(fmt.Sprintf("★ %d day streak", state.Streak)),
		theme.Hint.Render("    "),
		theme.Reward.Render(fmt.Sprintf("◈ %.4f REAL", summary.TotalTokens)),
	)

	return components.Card(bar.View()+"\n\n"+line, cw)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
