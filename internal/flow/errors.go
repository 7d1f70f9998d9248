package flow

import (
	"errors"
	"fmt"

	"github.com/realtoken/questline/internal/content"
)

// ErrContentNotLoaded indicates StartQuest was called before a language
// payload was loaded.
var ErrContentNotLoaded = errors.New("content not loaded")

// QuestNotFoundError indicates the requested quest id does not exist in
// the loaded payload. This is caller misuse (e.g. a stale quest list).
type QuestNotFoundError struct {
	QuestID string
}

func (e *QuestNotFoundError) Error() string {
	return fmt.Sprintf("quest %q not found", e.QuestID)
}

// ModuleNotFoundError indicates a quest references a module that is not
// in the payload. Normalization drops such quests, so hitting this means
// a data-integrity bug, not user error.
type ModuleNotFoundError struct {
	ModuleID string
	QuestID  string
}

func (e *ModuleNotFoundError) Error() string {
	return fmt.Sprintf("module %q missing for quest %q", e.ModuleID, e.QuestID)
}

// InvalidStepError indicates Answer or SubmitSequence was called while
// the current step is of a different kind.
type InvalidStepError struct {
	Expected content.StepKind
	Actual   content.StepKind
}

func (e *InvalidStepError) Error() string {
	if e.Actual == "" {
		return fmt.Sprintf("current step is not a %s step (no active step)", e.Expected)
	}
	return fmt.Sprintf("current step is not a %s step (got %s)", e.Expected, e.Actual)
}
