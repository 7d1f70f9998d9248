package progression

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/realtoken/questline/internal/storage"
)

// StorageKey is the persisted progression blob key. Schema changes require
// a new key so old clients keep working.
const StorageKey = "learning-progression-v1"

// LevelStep is the XP cost of one level.
const LevelStep = 120

// DetermineLevel maps accumulated XP to a level. Levels start at 1.
func DetermineLevel(xp float64) int {
	return int(math.Floor(math.Max(0, xp)/LevelStep)) + 1
}

// NextLevelThreshold returns the XP total that unlocks the next level.
func NextLevelThreshold(level int) float64 {
	return float64(level) * LevelStep
}

// DateKey formats t as a UTC YYYY-MM-DD calendar day key.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Meta describes why points were awarded. It travels into the reward
// ledger history unchanged, so fields are optional and JSON-tagged.
type Meta struct {
	Reason  string  `json:"reason,omitempty"`
	QuestID string  `json:"questId,omitempty"`
	StepID  string  `json:"stepId,omitempty"`
	DateKey string  `json:"dateKey,omitempty"`
	Label   string  `json:"label,omitempty"`
	Streak  int     `json:"streak,omitempty"`
	Level   int     `json:"level,omitempty"`
	XP      float64 `json:"xp,omitempty"`
}

// AwardResult reports the outcome of a point award.
type AwardResult struct {
	Awarded       bool
	Points        float64
	XP            float64
	Level         int
	LeveledUp     bool
	XPToNextLevel float64
	Meta          Meta
}

// QuestCompletionResult is an AwardResult plus the quest's updated
// completion count.
type QuestCompletionResult struct {
	AwardResult
	Completions int
}

// DailyResult is an AwardResult plus the updated streak.
type DailyResult struct {
	AwardResult
	Streak int
}

// DailyInput identifies one daily-challenge completion. DateKey is the
// calendar day being claimed; the caller supplies it explicitly rather
// than the manager reading the wall clock.
type DailyInput struct {
	DateKey     string
	QuestID     string
	BonusPoints float64
}

type persistedState struct {
	XP               float64        `json:"xp"`
	Level            int            `json:"level"`
	Daily            dailyState     `json:"daily"`
	QuestCompletions map[string]int `json:"questCompletions"`
}

type dailyState struct {
	LastCompletion string `json:"lastCompletion,omitempty"`
	LastTimestamp  *int64 `json:"lastTimestamp,omitempty"` // unix milliseconds
	Streak         int    `json:"streak"`
}

// Manager owns experience points, level computation and daily streak
// state. Every mutation persists immediately through the storage adapter.
type Manager struct {
	store storage.Store
	log   *zap.Logger
	clock func() time.Time
	state persistedState
}

// ManagerOptions configures a Manager. A nil Clock uses time.Now.
type ManagerOptions struct {
	Store  storage.Store
	Logger *zap.Logger
	Clock  func() time.Time
}

// NewManager loads persisted progression state or starts fresh.
func NewManager(opts ManagerOptions) *Manager {
	m := &Manager{
		store: opts.Store,
		log:   opts.Logger,
		clock: opts.Clock,
	}
	if m.store == nil {
		m.store = storage.NewMemoryStore()
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	if m.clock == nil {
		m.clock = time.Now
	}
	if !storage.ReadJSON(m.store, m.log, StorageKey, &m.state) {
		m.state = freshState()
	}
	if m.state.QuestCompletions == nil {
		m.state.QuestCompletions = make(map[string]int)
	}
	return m
}

func freshState() persistedState {
	return persistedState{
		Level:            1,
		QuestCompletions: make(map[string]int),
	}
}

func (m *Manager) persist() {
	storage.WriteJSON(m.store, m.log, StorageKey, m.state)
}

func (m *Manager) xpToNext() float64 {
	return math.Max(0, NextLevelThreshold(m.state.Level)-m.state.XP)
}

// AwardPoints adds points to the XP total and recomputes the level.
// Non-finite or non-positive point values award nothing and leave state
// untouched.
func (m *Manager) AwardPoints(points float64, meta Meta) AwardResult {
	if math.IsNaN(points) || math.IsInf(points, 0) || points <= 0 {
		return AwardResult{
			Awarded:       false,
			XP:            m.state.XP,
			Level:         m.state.Level,
			XPToNextLevel: m.xpToNext(),
			Meta:          meta,
		}
	}

	previousLevel := m.state.Level
	m.state.XP += points
	m.state.Level = DetermineLevel(m.state.XP)
	m.persist()

	return AwardResult{
		Awarded:       true,
		Points:        points,
		XP:            m.state.XP,
		Level:         m.state.Level,
		LeveledUp:     m.state.Level > previousLevel,
		XPToNextLevel: m.xpToNext(),
		Meta:          meta,
	}
}

// RegisterQuestCompletion bumps the quest's completion counter and awards
// its points.
func (m *Manager) RegisterQuestCompletion(questID string, points float64, meta Meta) QuestCompletionResult {
	if questID == "" {
		return QuestCompletionResult{AwardResult: m.AwardPoints(points, meta)}
	}

	m.state.QuestCompletions[questID]++
	meta.QuestID = questID
	result := m.AwardPoints(points, meta)
	m.persist()

	return QuestCompletionResult{
		AwardResult: result,
		Completions: m.state.QuestCompletions[questID],
	}
}

// CompleteDailyChallenge records a daily-challenge completion for the
// given calendar day. At most one completion per dateKey is honored.
// Consecutive-day completions extend the streak; a gap of more than one
// day, or an out-of-order dateKey, resets it to 1.
func (m *Manager) CompleteDailyChallenge(input DailyInput) DailyResult {
	if input.DateKey == "" || m.state.Daily.LastCompletion == input.DateKey {
		return DailyResult{
			AwardResult: AwardResult{
				XP:            m.state.XP,
				Level:         m.state.Level,
				XPToNextLevel: m.xpToNext(),
			},
			Streak: m.state.Daily.Streak,
		}
	}

	instant, parseOK := parseDateKey(input.DateKey)
	if parseOK && m.state.Daily.LastTimestamp != nil {
		diffDays := int(math.Round(float64(instant-*m.state.Daily.LastTimestamp) / float64(24*time.Hour/time.Millisecond)))
		if diffDays == 1 {
			m.state.Daily.Streak++
		} else if diffDays > 1 || diffDays < 0 {
			m.state.Daily.Streak = 1
		}
	} else {
		m.state.Daily.Streak = max(1, m.state.Daily.Streak)
	}

	m.state.Daily.LastCompletion = input.DateKey
	if !parseOK {
		instant = m.clock().UnixMilli()
	}
	m.state.Daily.LastTimestamp = &instant

	result := m.AwardPoints(input.BonusPoints, Meta{
		Reason:  "dailyBonus",
		QuestID: input.QuestID,
		DateKey: input.DateKey,
	})
	m.persist()

	return DailyResult{AwardResult: result, Streak: m.state.Daily.Streak}
}

// parseDateKey converts a YYYY-MM-DD key to its midnight-UTC instant in
// unix milliseconds.
func parseDateKey(key string) (int64, bool) {
	t, err := time.Parse("2006-01-02", key)
	if err != nil {
		return 0, false
	}
	return t.UTC().UnixMilli(), true
}

// Snapshot is a read-only view of progression state.
type Snapshot struct {
	XP               float64
	Level            int
	XPToNextLevel    float64
	Streak           int
	LastDaily        string
	QuestCompletions map[string]int
}

// GetState returns a copy of the current progression state.
func (m *Manager) GetState() Snapshot {
	completions := make(map[string]int, len(m.state.QuestCompletions))
	for id, count := range m.state.QuestCompletions {
		completions[id] = count
	}
	return Snapshot{
		XP:               m.state.XP,
		Level:            m.state.Level,
		XPToNextLevel:    m.xpToNext(),
		Streak:           m.state.Daily.Streak,
		LastDaily:        m.state.Daily.LastCompletion,
		QuestCompletions: completions,
	}
}

// Reset reinitializes all progression state and persists.
func (m *Manager) Reset() {
	m.state = freshState()
	m.persist()
}
