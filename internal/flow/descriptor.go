package flow

import (
	"github.com/realtoken/questline/internal/content"
	"github.com/realtoken/questline/internal/progression"
	"github.com/realtoken/questline/internal/rewards"
)

// DescriptorKind discriminates the step descriptor variants handed to the
// view layer.
type DescriptorKind string

const (
	DescriptorStory    DescriptorKind = "story"
	DescriptorQuiz     DescriptorKind = "quiz"
	DescriptorSequence DescriptorKind = "sequence"
	DescriptorComplete DescriptorKind = "complete"
)

// StepDescriptor is everything a presentation layer needs to render the
// current step. Exactly one of the variant fields matching Kind is set.
type StepDescriptor struct {
	Kind       DescriptorKind
	Story      *StoryDescriptor
	Quiz       *QuizDescriptor
	Sequence   *SequenceDescriptor
	Completion *Completion
}

// StoryDescriptor renders a narrative step.
type StoryDescriptor struct {
	ID       string
	Headline string
	Body     []string
	CTA      string
}

// QuizDescriptor renders a quiz step. Option correctness flags are passed
// through verbatim; this is a trusted-client display mechanism.
type QuizDescriptor struct {
	ID          string
	Question    string
	Context     []string
	Options     []content.QuizOption
	AllowRetry  bool
	Points      *float64
	RewardLabel string
}

// SequenceDescriptor renders a sequence challenge. Options is freshly
// shuffled for this attempt.
type SequenceDescriptor struct {
	ID              string
	Prompt          string
	Options         []content.SequenceItem
	Points          float64
	RewardLabel     string
	SuccessMessage  string
	ProgressMessage string
	ResetMessage    string
}

// Completion summarizes a finished quest attempt.
type Completion struct {
	Quest       content.Quest
	Message     string
	QuestReward *QuestReward
	DailyResult *DailyReward
}

// Reward bundles a progression award with its ledger mirror (nil when the
// award was rejected or no ledger is attached).
type Reward struct {
	progression.AwardResult
	Ledger *rewards.Result
}

// QuestReward is the quest-completion award plus its ledger mirror.
type QuestReward struct {
	progression.QuestCompletionResult
	Ledger *rewards.Result
}

// DailyReward is the daily-bonus award plus its ledger mirror.
type DailyReward struct {
	progression.DailyResult
	Ledger *rewards.Result
}

// Status classifies an Answer or SubmitSequence outcome.
type Status string

const (
	StatusInvalid   Status = "invalid"
	StatusCorrect   Status = "correct"
	StatusIncorrect Status = "incorrect"
	StatusRepeat    Status = "repeat"
	StatusProgress  Status = "progress"
	StatusComplete  Status = "complete"
	StatusReset     Status = "reset"
)

// AnswerResult is the outcome of answering a quiz step.
type AnswerResult struct {
	Status   Status
	Feedback string
	Reward   *Reward
	NextStep *StepDescriptor
}

// SequenceResult is the outcome of one sequence pick.
type SequenceResult struct {
	Status   Status
	Message  string
	Reward   *Reward
	Progress []string
	NextStep *StepDescriptor
}
