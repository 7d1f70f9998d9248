package flow

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/realtoken/questline/internal/content"
	"github.com/realtoken/questline/internal/progression"
	"github.com/realtoken/questline/internal/rewards"
)

// ContentSource is the slice of the content repository the engine needs.
type ContentSource interface {
	LoadLanguage(ctx context.Context, language string) (*content.Payload, error)
	DailyChallenge(language string, date time.Time) *content.DailyChallenge
}

// Context carries per-attempt quest context, most importantly whether the
// attempt counts as the daily challenge.
type Context struct {
	IsDaily     bool
	BonusPoints float64
	DateKey     string
	Date        time.Time
}

// Phase is the engine's coarse state: idle, or inside a quest attempt.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInStep
)

type sequenceState struct {
	expected []string
	progress []string
	selected map[string]bool
}

// Engine sequences a user through a quest's steps, validates answers and
// pushes award effects into the progression manager and reward ledger.
// One engine serves one logical user session, driven synchronously by
// discrete view actions.
type Engine struct {
	source      ContentSource
	progression *progression.Manager
	ledger      *rewards.Ledger
	random      func() float64
	clock       func() time.Time

	language      string
	payload       *content.Payload
	activeQuest   *content.Quest
	activeModule  *content.Module
	activeContext Context
	stepIndex     int
	sequence      *sequenceState
	awardedSteps  map[string]bool
}

// Options configures an Engine. Random defaults to math/rand/v2 and Clock
// to time.Now; both are injectable for deterministic tests.
type Options struct {
	Content     ContentSource
	Progression *progression.Manager
	Ledger      *rewards.Ledger
	Random      func() float64
	Clock       func() time.Time
}

// NewEngine creates an idle engine.
func NewEngine(opts Options) *Engine {
	e := &Engine{
		source:       opts.Content,
		progression:  opts.Progression,
		ledger:       opts.Ledger,
		random:       opts.Random,
		clock:        opts.Clock,
		awardedSteps: make(map[string]bool),
	}
	if e.random == nil {
		e.random = rand.Float64
	}
	if e.clock == nil {
		e.clock = time.Now
	}
	return e
}

// Phase reports whether a quest attempt is active.
func (e *Engine) Phase() Phase {
	if e.activeModule == nil {
		return PhaseIdle
	}
	return PhaseInStep
}

// LoadLanguage loads content for language and resets any active attempt.
// Callers must await this before starting a quest.
func (e *Engine) LoadLanguage(ctx context.Context, language string) (*content.Payload, error) {
	payload, err := e.source.LoadLanguage(ctx, language)
	if err != nil {
		return nil, err
	}
	e.language = language
	e.payload = payload
	e.resetActiveState()
	return payload, nil
}

// Quests returns the loaded quest list.
func (e *Engine) Quests() []content.Quest {
	if e.payload == nil {
		return nil
	}
	return e.payload.Quests
}

// DailyChallenge resolves the daily challenge for date from the loaded
// language.
func (e *Engine) DailyChallenge(date time.Time) *content.DailyChallenge {
	if e.payload == nil {
		return nil
	}
	return e.source.DailyChallenge(e.language, date)
}

// StartQuest begins an attempt at questID and returns the descriptor for
// its first step, or a completion summary for a zero-step module.
func (e *Engine) StartQuest(questID string, questContext Context) (*StepDescriptor, error) {
	if e.payload == nil {
		return nil, ErrContentNotLoaded
	}
	quest := e.payload.Quest(questID)
	if quest == nil {
		return nil, &QuestNotFoundError{QuestID: questID}
	}
	module := e.payload.Module(quest.ModuleID)
	if module == nil {
		return nil, &ModuleNotFoundError{ModuleID: quest.ModuleID, QuestID: questID}
	}

	e.activeQuest = quest
	e.activeModule = module
	e.activeContext = questContext
	e.stepIndex = 0
	e.sequence = nil
	e.awardedSteps = make(map[string]bool)

	return e.buildDescriptor(e.currentStep()), nil
}

// Continue advances past the current step (meaningful for story steps)
// and returns the next descriptor. Returns nil when no attempt is active.
func (e *Engine) Continue() *StepDescriptor {
	if e.activeModule == nil {
		return nil
	}
	e.stepIndex++
	return e.buildDescriptor(e.currentStep())
}

// Answer submits a quiz option. Incorrect answers keep the step active so
// the user can retry; correct answers award the step once per attempt and
// advance.
func (e *Engine) Answer(optionID string) (*AnswerResult, error) {
	step := e.currentStep()
	if step == nil || step.Kind != content.StepQuiz {
		return nil, &InvalidStepError{Expected: content.StepQuiz, Actual: stepKind(step)}
	}

	var option *content.QuizOption
	for i := range step.Quiz.Options {
		if step.Quiz.Options[i].ID == optionID {
			option = &step.Quiz.Options[i]
			break
		}
	}
	if option == nil {
		return &AnswerResult{Status: StatusInvalid}, nil
	}

	if !option.Correct {
		return &AnswerResult{Status: StatusIncorrect, Feedback: option.Feedback}, nil
	}

	var reward *Reward
	if !e.awardedSteps[step.ID] {
		e.awardedSteps[step.ID] = true
		points := option.Points
		if step.Quiz.Points != nil {
			points = *step.Quiz.Points
		}
		reward = e.applyReward(points, progression.Meta{
			Reason:  "quizStep",
			StepID:  step.ID,
			QuestID: e.activeQuest.ID,
			Label:   quizRewardLabel(step.Quiz, option),
		})
	}

	e.stepIndex++
	return &AnswerResult{
		Status:   StatusCorrect,
		Feedback: option.Feedback,
		Reward:   reward,
		NextStep: e.buildDescriptor(e.currentStep()),
	}, nil
}

// SubmitSequence submits one pick in a sequence challenge. Picks must
// follow the target order exactly: a repeat of an accepted pick is a
// no-op, and any out-of-order pick resets progress to empty.
func (e *Engine) SubmitSequence(optionID string) (*SequenceResult, error) {
	step := e.currentStep()
	if step == nil || step.Kind != content.StepSequence {
		return nil, &InvalidStepError{Expected: content.StepSequence, Actual: stepKind(step)}
	}

	if e.sequence == nil {
		e.sequence = newSequenceState(step.Sequence)
	}
	seq := e.sequence

	if seq.selected[optionID] {
		return &SequenceResult{Status: StatusRepeat, Progress: seq.snapshot()}, nil
	}

	expectedID := ""
	if len(seq.progress) < len(seq.expected) {
		expectedID = seq.expected[len(seq.progress)]
	}

	if optionID != expectedID {
		seq.progress = nil
		seq.selected = make(map[string]bool)
		return &SequenceResult{
			Status:   StatusReset,
			Message:  step.Sequence.ResetMessage,
			Progress: []string{},
		}, nil
	}

	seq.progress = append(seq.progress, optionID)
	seq.selected[optionID] = true

	if len(seq.progress) < len(seq.expected) {
		return &SequenceResult{
			Status:   StatusProgress,
			Message:  step.Sequence.ProgressMessage,
			Progress: seq.snapshot(),
		}, nil
	}

	var reward *Reward
	if !e.awardedSteps[step.ID] {
		e.awardedSteps[step.ID] = true
		label := step.Sequence.RewardLabel
		if label == "" {
			label = step.Sequence.Prompt
		}
		reward = e.applyReward(step.Sequence.Points, progression.Meta{
			Reason:  "sequenceStep",
			StepID:  step.ID,
			QuestID: e.activeQuest.ID,
			Label:   label,
		})
	}

	e.stepIndex++
	return &SequenceResult{
		Status:   StatusComplete,
		Message:  step.Sequence.SuccessMessage,
		Reward:   reward,
		NextStep: e.buildDescriptor(e.currentStep()),
	}, nil
}

// CurrentStep returns the active step, or nil between attempts.
func (e *Engine) CurrentStep() *content.Step {
	return e.currentStep()
}

func (e *Engine) currentStep() *content.Step {
	if e.activeModule == nil || e.stepIndex < 0 || e.stepIndex >= len(e.activeModule.Steps) {
		return nil
	}
	return &e.activeModule.Steps[e.stepIndex]
}

func stepKind(step *content.Step) content.StepKind {
	if step == nil {
		return ""
	}
	return step.Kind
}

func quizRewardLabel(quiz *content.QuizStep, option *content.QuizOption) string {
	if option.RewardLabel != "" {
		return option.RewardLabel
	}
	if quiz.RewardLabel != "" {
		return quiz.RewardLabel
	}
	return quiz.Question
}

func newSequenceState(step *content.SequenceStep) *sequenceState {
	expected := make([]string, len(step.Sequence))
	for i, item := range step.Sequence {
		expected[i] = item.ID
	}
	return &sequenceState{expected: expected, selected: make(map[string]bool)}
}

func (s *sequenceState) snapshot() []string {
	out := make([]string, len(s.progress))
	copy(out, s.progress)
	return out
}

// buildDescriptor converts the step into its view descriptor. A nil step
// means the attempt ran past the last step and triggers completion.
func (e *Engine) buildDescriptor(step *content.Step) *StepDescriptor {
	if step == nil {
		return e.completeQuest()
	}

	switch step.Kind {
	case content.StepStory:
		headline := step.Story.Headline
		if headline == "" {
			headline = e.activeModule.Title
		}
		return &StepDescriptor{Kind: DescriptorStory, Story: &StoryDescriptor{
			ID:       step.ID,
			Headline: headline,
			Body:     step.Story.Body,
			CTA:      step.Story.CTA,
		}}

	case content.StepQuiz:
		options := make([]content.QuizOption, len(step.Quiz.Options))
		copy(options, step.Quiz.Options)
		return &StepDescriptor{Kind: DescriptorQuiz, Quiz: &QuizDescriptor{
			ID:          step.ID,
			Question:    step.Quiz.Question,
			Context:     step.Quiz.Context,
			Options:     options,
			AllowRetry:  step.Quiz.AllowRetry,
			Points:      step.Quiz.Points,
			RewardLabel: step.Quiz.RewardLabel,
		}}

	case content.StepSequence:
		e.sequence = newSequenceState(step.Sequence)
		return &StepDescriptor{Kind: DescriptorSequence, Sequence: &SequenceDescriptor{
			ID:              step.ID,
			Prompt:          step.Sequence.Prompt,
			Options:         Shuffle(step.Sequence.Options, e.random),
			Points:          step.Sequence.Points,
			RewardLabel:     step.Sequence.RewardLabel,
			SuccessMessage:  step.Sequence.SuccessMessage,
			ProgressMessage: step.Sequence.ProgressMessage,
			ResetMessage:    step.Sequence.ResetMessage,
		}}
	}

	return nil
}

// completeQuest closes the attempt: quest-level reward, optional daily
// bonus, then back to idle.
func (e *Engine) completeQuest() *StepDescriptor {
	if e.activeQuest == nil {
		return nil
	}

	completion := &Completion{
		Quest:       *e.activeQuest,
		Message:     e.activeModule.Completion.Message,
		QuestReward: e.applyQuestReward(e.activeQuest),
		DailyResult: e.applyDailyBonus(e.activeQuest.ID, e.activeContext),
	}
	e.resetActiveState()

	return &StepDescriptor{Kind: DescriptorComplete, Completion: completion}
}

// applyReward awards points through the progression manager and, when the
// award succeeds, mirrors it into the ledger.
func (e *Engine) applyReward(points float64, meta progression.Meta) *Reward {
	if e.progression == nil {
		return nil
	}
	result := e.progression.AwardPoints(points, meta)
	reward := &Reward{AwardResult: result}
	if result.Awarded && e.ledger != nil {
		meta.Level = result.Level
		meta.XP = result.XP
		ledgerResult := e.ledger.RegisterReward(points, meta)
		reward.Ledger = &ledgerResult
	}
	return reward
}

func (e *Engine) applyQuestReward(quest *content.Quest) *QuestReward {
	if e.progression == nil {
		return nil
	}
	meta := progression.Meta{
		Reason:  "questCompletion",
		QuestID: quest.ID,
		Label:   quest.RewardLabel,
	}
	result := e.progression.RegisterQuestCompletion(quest.ID, quest.RewardPoints, meta)
	reward := &QuestReward{QuestCompletionResult: result}
	if result.Awarded && e.ledger != nil {
		meta.Level = result.Level
		meta.XP = result.XP
		ledgerResult := e.ledger.RegisterReward(quest.RewardPoints, meta)
		reward.Ledger = &ledgerResult
	}
	return reward
}

func (e *Engine) applyDailyBonus(questID string, questContext Context) *DailyReward {
	if e.progression == nil || !questContext.IsDaily {
		return nil
	}

	dateKey := questContext.DateKey
	if dateKey == "" {
		date := questContext.Date
		if date.IsZero() {
			date = e.clock()
		}
		dateKey = progression.DateKey(date)
	}

	result := e.progression.CompleteDailyChallenge(progression.DailyInput{
		DateKey:     dateKey,
		QuestID:     questID,
		BonusPoints: questContext.BonusPoints,
	})
	reward := &DailyReward{DailyResult: result}
	if result.Awarded && e.ledger != nil {
		ledgerResult := e.ledger.RegisterReward(questContext.BonusPoints, progression.Meta{
			Reason:  "dailyBonus",
			QuestID: questID,
			DateKey: dateKey,
			Streak:  result.Streak,
			Level:   result.Level,
			XP:      result.XP,
		})
		reward.Ledger = &ledgerResult
	}
	return reward
}

func (e *Engine) resetActiveState() {
	e.activeQuest = nil
	e.activeModule = nil
	e.activeContext = Context{}
	e.stepIndex = 0
	e.sequence = nil
	e.awardedSteps = make(map[string]bool)
}
