package quest

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/realtoken/questline/internal/flow"
	"github.com/realtoken/questline/internal/router"
	"github.com/realtoken/questline/internal/screen"
	"github.com/realtoken/questline/internal/ui/components"
	"github.com/realtoken/questline/internal/ui/layout"
	"github.com/realtoken/questline/internal/ui/theme"
)

// Options carries the quest screen's dependencies.
type Options struct {
	Engine  *flow.Engine
	Logger  *zap.Logger
	QuestID string
	Context flow.Context
}

// QuestScreen plays a single quest attempt: story pages, quiz answers
// and sequence picks, ending in a completion summary.
type QuestScreen struct {
	opts Options

	step    *flow.StepDescriptor
	picker  components.Picker
	button  components.Button
	pending *flow.StepDescriptor // set when awaiting a keypress before advancing

	feedback   string
	feedbackOK bool
	rewardLine string
	progress   int
	errMsg     string
}

var _ screen.Screen = (*QuestScreen)(nil)
var _ screen.KeyHintProvider = (*QuestScreen)(nil)

type questStartedMsg struct {
	step *flow.StepDescriptor
	err  error
}

// New creates a quest screen for the given quest.
func New(opts Options) *QuestScreen {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &QuestScreen{opts: opts}
}

func (q *QuestScreen) Init() tea.Cmd {
	return func() tea.Msg {
		step, err := q.opts.Engine.StartQuest(q.opts.QuestID, q.opts.Context)
		return questStartedMsg{step: step, err: err}
	}
}

func (q *QuestScreen) Title() string {
	return "Quest"
}

func (q *QuestScreen) KeyHints() []layout.KeyHint {
	if q.step == nil {
		return nil
	}
	switch q.step.Kind {
	case flow.DescriptorStory, flow.DescriptorComplete:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Esc", Description: "Back"},
		}
	default:
		if q.pending != nil {
			return []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
		}
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Abandon"},
		}
	}
}

func (q *QuestScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questStartedMsg:
		if msg.err != nil {
			q.errMsg = msg.err.Error()
			q.opts.Logger.Warn("quest start failed",
				zap.String("quest", q.opts.QuestID), zap.Error(msg.err))
			return q, nil
		}
		q.setStep(msg.step)
		return q, nil

	case tea.KeyMsg:
		return q.handleKey(msg)
	}

	return q, nil
}

func (q *QuestScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if q.errMsg != "" {
		return q, popCmd()
	}
	if q.step == nil {
		return q, nil
	}

	// A resolved submission waits for one keypress before advancing.
	if q.pending != nil {
		if msg.String() == "enter" {
			next := q.pending
			q.pending = nil
			q.setStep(next)
		}
		return q, nil
	}

	switch q.step.Kind {
	case flow.DescriptorStory:
		if msg.String() == "enter" {
			q.setStep(q.opts.Engine.Continue())
		}
		return q, nil

	case flow.DescriptorQuiz:
		return q.updateQuiz(msg)

	case flow.DescriptorSequence:
		return q.updateSequence(msg)

	case flow.DescriptorComplete:
		if msg.String() == "enter" {
			return q, popCmd()
		}
		return q, nil
	}

	return q, nil
}

func (q *QuestScreen) updateQuiz(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	q.picker, cmd = q.picker.Update(msg)

	picked := q.picker.Picked()
	if picked == "" {
		return q, cmd
	}
	q.picker.ClearPicked()

	result, err := q.opts.Engine.Answer(picked)
	if err != nil {
		q.errMsg = err.Error()
		return q, nil
	}

	switch result.Status {
	case flow.StatusIncorrect:
		q.picker.SetMark(picked, components.MarkWrong)
		q.feedback = result.Feedback
		q.feedbackOK = false
		if !q.step.Quiz.AllowRetry {
			// Step stays unanswered; move past it without a reward.
			q.picker.Locked = true
			q.pending = q.opts.Engine.Continue()
		}

	case flow.StatusCorrect:
		q.picker.SetMark(picked, components.MarkCorrect)
		q.picker.Locked = true
		q.feedback = result.Feedback
		q.feedbackOK = true
		q.rewardLine = rewardLine(result.Reward)
		q.pending = result.NextStep
	}

	return q, nil
}

func (q *QuestScreen) updateSequence(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	q.picker, cmd = q.picker.Update(msg)

	picked := q.picker.Picked()
	if picked == "" {
		return q, cmd
	}
	q.picker.ClearPicked()

	result, err := q.opts.Engine.SubmitSequence(picked)
	if err != nil {
		q.errMsg = err.Error()
		return q, nil
	}

	switch result.Status {
	case flow.StatusRepeat:
		q.feedback = "Already placed."
		q.feedbackOK = false

	case flow.StatusProgress:
		q.picker.SetMark(picked, components.MarkAccepted)
		q.feedback = result.Message
		q.feedbackOK = true
		q.progress = len(result.Progress)

	case flow.StatusReset:
		q.picker.ClearMarks()
		q.feedback = result.Message
		q.feedbackOK = false
		q.progress = 0

	case flow.StatusComplete:
		q.picker.SetMark(picked, components.MarkAccepted)
		q.picker.Locked = true
		q.feedback = result.Message
		q.feedbackOK = true
		q.progress = len(q.picker.Options)
		q.rewardLine = rewardLine(result.Reward)
		q.pending = result.NextStep
	}

	return q, nil
}

// setStep installs a new descriptor and resets per-step UI state.
func (q *QuestScreen) setStep(step *flow.StepDescriptor) {
	q.step = step
	q.feedback = ""
	q.rewardLine = ""
	q.progress = 0
	if step == nil {
		return
	}

	switch step.Kind {
	case flow.DescriptorStory:
		cta := step.Story.CTA
		if cta == "" {
			cta = "Continue"
		}
		q.button = components.NewButton(cta, true)

	case flow.DescriptorQuiz:
		options := make([]components.PickerOption, len(step.Quiz.Options))
		for i, opt := range step.Quiz.Options {
			options[i] = components.PickerOption{ID: opt.ID, Label: opt.Label}
		}
		q.picker = components.NewPicker(options)

	case flow.DescriptorSequence:
		options := make([]components.PickerOption, len(step.Sequence.Options))
		for i, opt := range step.Sequence.Options {
			options[i] = components.PickerOption{ID: opt.ID, Label: opt.Label}
		}
		q.picker = components.NewPicker(options)
	}
}

func (q *QuestScreen) View(width, height int) string {
	if q.errMsg != "" {
		msg := theme.Incorrect.Render("Something went wrong") + "\n\n" +
			theme.Hint.Render(q.errMsg) + "\n\n" +
			theme.Hint.Render("Press any key to go back")
		return layout.Center(msg, width, height)
	}
	if q.step == nil {
		return layout.Center(theme.Hint.Render("Preparing quest..."), width, height)
	}

	cw := components.ContentWidth(width)

	var body string
	switch q.step.Kind {
	case flow.DescriptorStory:
		body = q.viewStory(cw)
	case flow.DescriptorQuiz:
		body = q.viewQuiz(cw)
	case flow.DescriptorSequence:
		body = q.viewSequence(cw)
	case flow.DescriptorComplete:
		body = q.viewCompletion(cw)
	}

	return layout.Center(body, width, height)
}

func (q *QuestScreen) viewStory(cw int) string {
	story := q.step.Story

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw - 8).Render(story.Headline))
	b.WriteString("\n\n")
	for _, line := range story.Body {
		b.WriteString(theme.Body.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(q.button.View())

	return components.Card(b.String(), cw)
}

func (q *QuestScreen) viewQuiz(cw int) string {
	quiz := q.step.Quiz

	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Render(quiz.Question))
	b.WriteString("\n")
	for _, line := range quiz.Context {
		b.WriteString(theme.Hint.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(q.picker.View())
	b.WriteString(q.viewFeedback())

	return components.Card(b.String(), cw)
}

func (q *QuestScreen) viewSequence(cw int) string {
	seq := q.step.Sequence

	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Render(seq.Prompt))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Placed %d of %d", q.progress, len(q.picker.Options))))
	b.WriteString("\n\n")
	b.WriteString(q.picker.View())
	b.WriteString(q.viewFeedback())

	return components.Card(b.String(), cw)
}

func (q *QuestScreen) viewFeedback() string {
	if q.feedback == "" && q.rewardLine == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	if q.feedback != "" {
		if q.feedbackOK {
			b.WriteString(theme.Correct.Render(q.feedback))
		} else {
			b.WriteString(theme.Incorrect.Render(q.feedback))
		}
		b.WriteString("\n")
	}
	if q.rewardLine != "" {
		b.WriteString(theme.Reward.Render(q.rewardLine))
		b.WriteString("\n")
	}
	if q.pending != nil {
		b.WriteString(theme.Hint.Render("Press enter to continue"))
		b.WriteString("\n")
	}
	return b.String()
}

func (q *QuestScreen) viewCompletion(cw int) string {
	done := q.step.Completion

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw - 8).Render("QUEST COMPLETE"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(done.Quest.Title))
	b.WriteString("\n")
	if done.Message != "" {
		b.WriteString(theme.Hint.Render(done.Message))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if reward := done.QuestReward; reward != nil && reward.Awarded {
		b.WriteString(theme.Reward.Render(fmt.Sprintf("+%.0f XP", reward.Points)))
		if reward.Ledger != nil && reward.Ledger.Recorded {
			b.WriteString(theme.Reward.Render(fmt.Sprintf("   +%.4f REAL", reward.Ledger.Tokens)))
		}
		b.WriteString("\n")
		if reward.LeveledUp {
			b.WriteString(theme.Correct.Render(fmt.Sprintf("Level up! Now level %d", reward.Level)))
			b.WriteString("\n")
		}
		b.WriteString(theme.Hint.Render(fmt.Sprintf("Completed %d time(s)", reward.Completions)))
		b.WriteString("\n")
	}

	if daily := done.DailyResult; daily != nil && daily.Awarded {
		b.WriteString("\n")
		b.WriteString(theme.Reward.Render(fmt.Sprintf("Daily bonus +%.0f XP", daily.Points)))
		if daily.Ledger != nil && daily.Ledger.Recorded {
			b.WriteString(theme.Reward.Render(fmt.Sprintf("   +%.4f REAL", daily.Ledger.Tokens)))
		}
		b.WriteString("\n")
		b.WriteString(theme.Correct.Render(fmt.Sprintf("★ %d day streak", daily.Streak)))
		b.WriteString("\n")
	}

	return components.Card(b.String(), cw)
}

func rewardLine(reward *flow.Reward) string {
	if reward == nil || !reward.Awarded {
		return ""
	}
	line := fmt.Sprintf("+%.0f XP", reward.Points)
	if reward.Ledger != nil && reward.Ledger.Recorded {
		line += fmt.Sprintf("   +%.4f REAL", reward.Ledger.Tokens)
	}
	if reward.LeveledUp {
		line += fmt.Sprintf("   Level %d!", reward.Level)
	}
	return line
}

func popCmd() tea.Cmd {
	return func() tea.Msg { return router.PopScreenMsg{} }
}
