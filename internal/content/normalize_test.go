package content

import (
	"encoding/json"
	"testing"
	"time"
)

func decodeRaw(t *testing.T, doc string) *rawPayload {
	t.Helper()
	var raw rawPayload
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return &raw
}

func TestNormalize_DropsModulesWithoutID(t *testing.T) {
	payload := Normalize(decodeRaw(t, `{
		"modules": [
			{"title": "nameless"},
			null,
			{"id": "keep", "title": "Kept", "steps": [null]}
		]
	}`))

	if len(payload.Modules) != 1 {
		t.Fatalf("modules = %d, want 1", len(payload.Modules))
	}
	if payload.Modules[0].ID != "keep" {
		t.Errorf("kept module = %q, want %q", payload.Modules[0].ID, "keep")
	}
	if len(payload.Modules[0].Steps) != 0 {
		t.Errorf("nil steps should be dropped, got %d", len(payload.Modules[0].Steps))
	}
}

func TestNormalize_DropsStepsWithUnknownKind(t *testing.T) {
	payload := Normalize(decodeRaw(t, `{
		"modules": [{
			"id": "m1",
			"steps": [
				{"type": "story", "headline": "Hi"},
				{"type": "minigame"},
				{"type": "quiz", "question": "Q?"}
			]
		}]
	}`))

	steps := payload.Modules[0].Steps
	if len(steps) != 2 {
		t.Fatalf("steps = %d, want 2", len(steps))
	}
	if steps[0].Kind != StepStory || steps[1].Kind != StepQuiz {
		t.Errorf("kinds = %q, %q", steps[0].Kind, steps[1].Kind)
	}
}

func TestNormalize_AssignsFallbackStepIDs(t *testing.T) {
	payload := Normalize(decodeRaw(t, `{
		"modules": [{
			"id": "m1",
			"steps": [
				{"type": "story"},
				{"type": "story", "id": "named"}
			]
		}]
	}`))

	steps := payload.Modules[0].Steps
	if steps[0].ID != "m1-step-0" {
		t.Errorf("fallback id = %q, want %q", steps[0].ID, "m1-step-0")
	}
	if steps[1].ID != "named" {
		t.Errorf("explicit id = %q, want %q", steps[1].ID, "named")
	}
}

func TestNormalize_QuestDefaultsAndModuleCheck(t *testing.T) {
	payload := Normalize(decodeRaw(t, `{
		"modules": [{"id": "m1"}],
		"quests": [
			{"id": "bare", "moduleId": "m1"},
			{"id": "orphan", "moduleId": "nope"},
			{"moduleId": "m1"},
			{"id": "full", "moduleId": "m1", "title": "Full", "summary": "S", "rewardPoints": 45, "rewardLabel": "Label"}
		]
	}`))

	if len(payload.Quests) != 2 {
		t.Fatalf("quests = %d, want 2", len(payload.Quests))
	}

	bare := payload.Quest("bare")
	if bare.Title != "bare" {
		t.Errorf("title default = %q, want id", bare.Title)
	}
	if bare.Summary != "" || bare.RewardPoints != 0 {
		t.Errorf("bare quest defaults = %+v", bare)
	}
	if bare.RewardLabel != "bare" {
		t.Errorf("rewardLabel default = %q, want id", bare.RewardLabel)
	}

	full := payload.Quest("full")
	if full.RewardPoints != 45 || full.RewardLabel != "Label" {
		t.Errorf("full quest = %+v", full)
	}
}

func TestNormalize_QuizStepDefaults(t *testing.T) {
	payload := Normalize(decodeRaw(t, `{
		"modules": [{
			"id": "m1",
			"steps": [{
				"type": "quiz",
				"question": "Pick one",
				"context": "single line",
				"options": [
					{"id": "a", "label": "A", "correct": true, "points": 10},
					{"id": "b", "label": "B", "feedback": "nope"},
					{"label": "no id"}
				]
			}]
		}]
	}`))

	quiz := payload.Modules[0].Steps[0].Quiz
	if quiz == nil {
		t.Fatal("quiz step missing")
	}
	if !quiz.AllowRetry {
		t.Error("AllowRetry should default to true")
	}
	if quiz.Points != nil {
		t.Error("step points should stay nil when absent")
	}
	if len(quiz.Context) != 1 || quiz.Context[0] != "single line" {
		t.Errorf("context = %v, want single-element list", quiz.Context)
	}
	if len(quiz.Options) != 2 {
		t.Fatalf("options = %d, want 2 (option without id dropped)", len(quiz.Options))
	}
	if quiz.Options[0].Points != 10 {
		t.Errorf("option points = %v, want 10", quiz.Options[0].Points)
	}
}

func TestNormalizeDaily_FiltersInvalidEntries(t *testing.T) {
	payload := Normalize(decodeRaw(t, `{
		"modules": [{"id": "m1"}],
		"quests": [{"id": "q1", "moduleId": "m1"}],
		"dailyChallenges": {
			"default": {"questId": "q1", "bonusPoints": 15},
			"schedule": [
				{"weekday": 1, "questId": "q1", "bonusPoints": 25},
				{"weekday": 2, "questId": "unknown"},
				{"questId": "q1"},
				{"weekday": 9, "questId": "q1"},
				{"weekday": 3, "questId": "q1"}
			]
		}
	}`))

	daily := payload.Daily
	if daily.Default == nil || daily.Default.QuestID != "q1" {
		t.Fatalf("default = %+v, want q1", daily.Default)
	}
	if len(daily.Schedule) != 2 {
		t.Fatalf("schedule = %d, want 2", len(daily.Schedule))
	}
	// bonusPoints falls back to the default entry's bonus.
	if daily.Schedule[1].Weekday != 3 || daily.Schedule[1].BonusPoints != 15 {
		t.Errorf("schedule[1] = %+v, want weekday 3 bonus 15", daily.Schedule[1])
	}
}

func TestNormalizeDaily_DefaultRequiresKnownQuest(t *testing.T) {
	payload := Normalize(decodeRaw(t, `{
		"dailyChallenges": {"default": {"questId": "ghost", "bonusPoints": 10}}
	}`))

	if payload.Daily.Default != nil {
		t.Errorf("default = %+v, want nil for unknown quest", payload.Daily.Default)
	}
}

func TestResolveDaily(t *testing.T) {
	payload := Normalize(decodeRaw(t, `{
		"modules": [{"id": "m1"}],
		"quests": [
			{"id": "seven-labours", "moduleId": "m1"},
			{"id": "initiation", "moduleId": "m1"}
		],
		"dailyChallenges": {
			"default": {"questId": "initiation", "bonusPoints": 15},
			"schedule": [{"weekday": 1, "questId": "seven-labours", "bonusPoints": 25}]
		}
	}`))

	monday := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	got := ResolveDaily(payload, monday)
	if got == nil || got.Quest.ID != "seven-labours" || got.BonusPoints != 25 {
		t.Errorf("monday = %+v, want seven-labours bonus 25", got)
	}

	sunday := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	got = ResolveDaily(payload, sunday)
	if got == nil || got.Quest.ID != "initiation" || got.BonusPoints != 15 {
		t.Errorf("sunday = %+v, want initiation bonus 15", got)
	}
}

func TestResolveDaily_NoConfig(t *testing.T) {
	payload := Normalize(decodeRaw(t, `{"modules": [{"id": "m1"}]}`))
	if got := ResolveDaily(payload, time.Now()); got != nil {
		t.Errorf("ResolveDaily = %+v, want nil", got)
	}
	if got := ResolveDaily(nil, time.Now()); got != nil {
		t.Errorf("ResolveDaily(nil) = %+v, want nil", got)
	}
}
