package content

// StepKind discriminates the step variants within a module.
type StepKind string

const (
	StepStory    StepKind = "story"
	StepQuiz     StepKind = "quiz"
	StepSequence StepKind = "sequence"
)

// Payload is a normalized per-language content document. It is immutable
// after normalization; the flow engine holds references into it but never
// mutates it.
type Payload struct {
	Meta    map[string]any  `json:"meta"`
	Modules []Module        `json:"modules"`
	Quests  []Quest         `json:"quests"`
	Daily   DailyChallenges `json:"dailyChallenges"`
}

// Module returns the module with the given id, or nil.
func (p *Payload) Module(id string) *Module {
	for i := range p.Modules {
		if p.Modules[i].ID == id {
			return &p.Modules[i]
		}
	}
	return nil
}

// Quest returns the quest with the given id, or nil.
func (p *Payload) Quest(id string) *Quest {
	for i := range p.Quests {
		if p.Quests[i].ID == id {
			return &p.Quests[i]
		}
	}
	return nil
}

// Module is an ordered sequence of steps a quest walks through.
type Module struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Steps      []Step     `json:"steps"`
	Completion Completion `json:"completion"`
}

// Completion carries module completion metadata.
type Completion struct {
	Message string `json:"message"`
}

// Step is a tagged union over the story/quiz/sequence variants. Exactly
// one of Story, Quiz, Sequence is non-nil, matching Kind.
type Step struct {
	ID       string        `json:"id"`
	Kind     StepKind      `json:"kind"`
	Story    *StoryStep    `json:"story,omitempty"`
	Quiz     *QuizStep     `json:"quiz,omitempty"`
	Sequence *SequenceStep `json:"sequence,omitempty"`
}

// StoryStep is a narrative step with a continue affordance.
type StoryStep struct {
	Headline string   `json:"headline"`
	Body     []string `json:"body"`
	CTA      string   `json:"cta"`
}

// QuizStep is a single-question multiple-choice step. Points is nil when
// the step itself carries no point value; the award then falls back to the
// chosen option's points.
type QuizStep struct {
	Question    string       `json:"question"`
	Context     []string     `json:"context"`
	Options     []QuizOption `json:"options"`
	AllowRetry  bool         `json:"allowRetry"`
	Points      *float64     `json:"points,omitempty"`
	RewardLabel string       `json:"rewardLabel"`
}

// QuizOption is one selectable quiz answer.
type QuizOption struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	Correct     bool    `json:"correct"`
	Feedback    string  `json:"feedback"`
	Points      float64 `json:"points"`
	RewardLabel string  `json:"rewardLabel"`
}

// SequenceStep asks the user to pick options in a defined order.
// Sequence holds the target order; Options holds the display list, which
// the flow engine shuffles per attempt.
type SequenceStep struct {
	Prompt          string         `json:"prompt"`
	Sequence        []SequenceItem `json:"sequence"`
	Options         []SequenceItem `json:"options"`
	Points          float64        `json:"points"`
	RewardLabel     string         `json:"rewardLabel"`
	SuccessMessage  string         `json:"successMessage"`
	ProgressMessage string         `json:"progressMessage"`
	ResetMessage    string         `json:"resetMessage"`
}

// SequenceItem is one selectable entry in a sequence challenge.
type SequenceItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Quest is a rewardable unit of content bound to one module.
type Quest struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Summary      string  `json:"summary"`
	ModuleID     string  `json:"moduleId"`
	RewardPoints float64 `json:"rewardPoints"`
	RewardLabel  string  `json:"rewardLabel"`
}

// DailyChallenges holds the weekday schedule plus an optional default.
type DailyChallenges struct {
	Default  *ChallengeRef   `json:"default"`
	Schedule []ScheduleEntry `json:"schedule"`
}

// ChallengeRef points at a quest with a bonus attached.
type ChallengeRef struct {
	QuestID     string  `json:"questId"`
	BonusPoints float64 `json:"bonusPoints"`
}

// ScheduleEntry binds a quest to a weekday (0 = Sunday).
type ScheduleEntry struct {
	Weekday     int     `json:"weekday"`
	QuestID     string  `json:"questId"`
	BonusPoints float64 `json:"bonusPoints"`
}

// DailyChallenge is a resolved challenge for a concrete date.
type DailyChallenge struct {
	Quest       Quest   `json:"quest"`
	BonusPoints float64 `json:"bonusPoints"`
}
