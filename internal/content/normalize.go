package content

import (
	"encoding/json"
	"strconv"
	"time"
)

// Raw document shapes. The authored JSON is loosely typed: fields may be
// missing, body/context may be a string or a list, and referential
// integrity is not guaranteed. All alias and default resolution happens
// here; everything past Normalize sees the strict types only.

type rawPayload struct {
	Meta            map[string]any `json:"meta"`
	Modules         []*rawModule   `json:"modules"`
	Quests          []*rawQuest    `json:"quests"`
	DailyChallenges *rawDaily      `json:"dailyChallenges"`
}

type rawModule struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Steps      []*rawStep  `json:"steps"`
	Completion *Completion `json:"completion"`
}

type rawStep struct {
	ID   string `json:"id"`
	Type string `json:"type"`

	Headline string      `json:"headline"`
	Body     flexStrings `json:"body"`
	CTA      string      `json:"cta"`

	Question   string       `json:"question"`
	Context    flexStrings  `json:"context"`
	Options    []*rawOption `json:"options"`
	AllowRetry *bool        `json:"allowRetry"`

	Prompt          string       `json:"prompt"`
	Sequence        []*rawOption `json:"sequence"`
	SuccessMessage  string       `json:"successMessage"`
	ProgressMessage string       `json:"progressMessage"`
	ResetMessage    string       `json:"resetMessage"`

	Points      *float64 `json:"points"`
	RewardLabel string   `json:"rewardLabel"`
}

type rawOption struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Correct     bool     `json:"correct"`
	Feedback    string   `json:"feedback"`
	Points      *float64 `json:"points"`
	RewardLabel string   `json:"rewardLabel"`
}

type rawQuest struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Summary      string   `json:"summary"`
	ModuleID     string   `json:"moduleId"`
	RewardPoints *float64 `json:"rewardPoints"`
	RewardLabel  string   `json:"rewardLabel"`
}

type rawDaily struct {
	Default  *rawChallengeRef   `json:"default"`
	Schedule []*rawScheduleItem `json:"schedule"`
}

type rawChallengeRef struct {
	QuestID     string   `json:"questId"`
	BonusPoints *float64 `json:"bonusPoints"`
}

type rawScheduleItem struct {
	Weekday     *int     `json:"weekday"`
	QuestID     string   `json:"questId"`
	BonusPoints *float64 `json:"bonusPoints"`
}

// flexStrings accepts either a JSON string or a list of strings.
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*f = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	if single == "" {
		*f = nil
		return nil
	}
	*f = []string{single}
	return nil
}

// Normalize converts a raw document into the strict internal schema.
// Modules without an id are dropped, as are nil steps and steps with an
// unrecognized type. Quests must reference a surviving module or they are
// dropped. Daily challenge entries must reference a surviving quest.
func Normalize(raw *rawPayload) *Payload {
	if raw == nil {
		raw = &rawPayload{}
	}

	modules := make([]Module, 0, len(raw.Modules))
	moduleIDs := make(map[string]bool)
	for _, m := range raw.Modules {
		if m == nil || m.ID == "" {
			continue
		}
		mod := Module{ID: m.ID, Title: m.Title}
		if m.Completion != nil {
			mod.Completion = *m.Completion
		}
		for _, s := range m.Steps {
			if s == nil {
				continue
			}
			step, ok := normalizeStep(s, m.ID, len(mod.Steps))
			if !ok {
				continue
			}
			mod.Steps = append(mod.Steps, step)
		}
		modules = append(modules, mod)
		moduleIDs[m.ID] = true
	}

	quests := make([]Quest, 0, len(raw.Quests))
	questIDs := make(map[string]bool)
	for _, q := range raw.Quests {
		if q == nil || q.ID == "" || q.ModuleID == "" || !moduleIDs[q.ModuleID] {
			continue
		}
		title := q.Title
		if title == "" {
			title = q.ID
		}
		label := q.RewardLabel
		if label == "" {
			label = title
		}
		quests = append(quests, Quest{
			ID:           q.ID,
			Title:        title,
			Summary:      q.Summary,
			ModuleID:     q.ModuleID,
			RewardPoints: floatOrZero(q.RewardPoints),
			RewardLabel:  label,
		})
		questIDs[q.ID] = true
	}

	return &Payload{
		Meta:    raw.Meta,
		Modules: modules,
		Quests:  quests,
		Daily:   normalizeDaily(raw.DailyChallenges, questIDs),
	}
}

func normalizeStep(s *rawStep, moduleID string, index int) (Step, bool) {
	id := s.ID
	if id == "" {
		id = defaultStepID(moduleID, index)
	}

	switch StepKind(s.Type) {
	case StepStory:
		cta := s.CTA
		if cta == "" {
			cta = "Continue"
		}
		return Step{ID: id, Kind: StepStory, Story: &StoryStep{
			Headline: s.Headline,
			Body:     s.Body,
			CTA:      cta,
		}}, true

	case StepQuiz:
		options := make([]QuizOption, 0, len(s.Options))
		for _, o := range s.Options {
			if o == nil || o.ID == "" {
				continue
			}
			options = append(options, QuizOption{
				ID:          o.ID,
				Label:       o.Label,
				Correct:     o.Correct,
				Feedback:    o.Feedback,
				Points:      floatOrZero(o.Points),
				RewardLabel: o.RewardLabel,
			})
		}
		return Step{ID: id, Kind: StepQuiz, Quiz: &QuizStep{
			Question:    s.Question,
			Context:     s.Context,
			Options:     options,
			AllowRetry:  s.AllowRetry == nil || *s.AllowRetry,
			Points:      s.Points,
			RewardLabel: s.RewardLabel,
		}}, true

	case StepSequence:
		return Step{ID: id, Kind: StepSequence, Sequence: &SequenceStep{
			Prompt:          s.Prompt,
			Sequence:        normalizeItems(s.Sequence),
			Options:         normalizeItems(s.Options),
			Points:          floatOrZero(s.Points),
			RewardLabel:     s.RewardLabel,
			SuccessMessage:  s.SuccessMessage,
			ProgressMessage: s.ProgressMessage,
			ResetMessage:    s.ResetMessage,
		}}, true
	}

	return Step{}, false
}

func normalizeItems(raw []*rawOption) []SequenceItem {
	items := make([]SequenceItem, 0, len(raw))
	for _, o := range raw {
		if o == nil || o.ID == "" {
			continue
		}
		items = append(items, SequenceItem{ID: o.ID, Label: o.Label})
	}
	return items
}

func normalizeDaily(daily *rawDaily, questIDs map[string]bool) DailyChallenges {
	out := DailyChallenges{Schedule: []ScheduleEntry{}}
	if daily == nil {
		return out
	}

	var defaultBonus float64
	if daily.Default != nil {
		defaultBonus = floatOrZero(daily.Default.BonusPoints)
		if questIDs[daily.Default.QuestID] {
			out.Default = &ChallengeRef{
				QuestID:     daily.Default.QuestID,
				BonusPoints: defaultBonus,
			}
		}
	}

	for _, entry := range daily.Schedule {
		if entry == nil || entry.Weekday == nil || !questIDs[entry.QuestID] {
			continue
		}
		wd := *entry.Weekday
		if wd < 0 || wd > 6 {
			continue
		}
		bonus := defaultBonus
		if entry.BonusPoints != nil {
			bonus = *entry.BonusPoints
		}
		out.Schedule = append(out.Schedule, ScheduleEntry{
			Weekday:     wd,
			QuestID:     entry.QuestID,
			BonusPoints: bonus,
		})
	}

	return out
}

// ResolveDaily picks the challenge for date: a schedule entry matching the
// date's weekday wins, then the default, then nothing. The referenced
// quest must still exist in the payload.
func ResolveDaily(payload *Payload, date time.Time) *DailyChallenge {
	if payload == nil {
		return nil
	}

	weekday := int(date.Weekday())
	var ref *ChallengeRef
	for i := range payload.Daily.Schedule {
		if payload.Daily.Schedule[i].Weekday == weekday {
			entry := payload.Daily.Schedule[i]
			ref = &ChallengeRef{QuestID: entry.QuestID, BonusPoints: entry.BonusPoints}
			break
		}
	}
	if ref == nil {
		ref = payload.Daily.Default
	}
	if ref == nil {
		return nil
	}

	quest := payload.Quest(ref.QuestID)
	if quest == nil {
		return nil
	}
	return &DailyChallenge{Quest: *quest, BonusPoints: ref.BonusPoints}
}

func defaultStepID(moduleID string, index int) string {
	return moduleID + "-step-" + strconv.Itoa(index)
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
