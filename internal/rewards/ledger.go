package rewards

import (
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/realtoken/questline/internal/progression"
	"github.com/realtoken/questline/internal/storage"
)

// StorageKey is the persisted ledger blob key. Schema changes require a
// new key so old clients keep working.
const StorageKey = "learning-reward-ledger-v1"

// DefaultRate is the conversion rate in REAL tokens per XP point.
const DefaultRate = 0.04

// MaxHistory caps the retained reward history, most-recent-first.
const MaxHistory = 25

// Entry is one recorded reward.
type Entry struct {
	ID        string           `json:"id"`
	Timestamp int64            `json:"timestamp"` // unix milliseconds
	Points    float64          `json:"points"`
	Tokens    float64          `json:"tokens"`
	Meta      progression.Meta `json:"meta"`
}

// Result reports the outcome of a reward registration.
type Result struct {
	Recorded    bool
	Tokens      float64
	Entry       *Entry
	TotalTokens float64
}

// Summary is a read-only view of the ledger.
type Summary struct {
	TotalTokens    float64
	History        []Entry
	ConversionRate float64
}

type persistedState struct {
	History     []Entry `json:"history"`
	TotalTokens float64 `json:"totalTokens"`
}

// Ledger converts awarded points into a display-only REAL token balance
// with a bounded history. It is not a financial system: the balance is a
// local, client-trusted presentation of earned rewards.
type Ledger struct {
	store storage.Store
	log   *zap.Logger
	rate  float64
	clock func() time.Time
	state persistedState
}

// LedgerOptions configures a Ledger. A zero ConversionRate uses
// DefaultRate; a nil Clock uses time.Now.
type LedgerOptions struct {
	Store          storage.Store
	Logger         *zap.Logger
	ConversionRate float64
	Clock          func() time.Time
}

// NewLedger loads persisted ledger state or starts empty.
func NewLedger(opts LedgerOptions) *Ledger {
	l := &Ledger{
		store: opts.Store,
		log:   opts.Logger,
		rate:  opts.ConversionRate,
		clock: opts.Clock,
	}
	if l.store == nil {
		l.store = storage.NewMemoryStore()
	}
	if l.log == nil {
		l.log = zap.NewNop()
	}
	if l.rate == 0 {
		l.rate = DefaultRate
	}
	if l.clock == nil {
		l.clock = time.Now
	}
	if !storage.ReadJSON(l.store, l.log, StorageKey, &l.state) {
		l.state = persistedState{History: []Entry{}}
	}
	return l
}

func (l *Ledger) persist() {
	storage.WriteJSON(l.store, l.log, StorageKey, l.state)
}

// RegisterReward converts points into tokens and prepends an entry to the
// history. Non-finite or non-positive point values record nothing.
func (l *Ledger) RegisterReward(points float64, meta progression.Meta) Result {
	if math.IsNaN(points) || math.IsInf(points, 0) || points <= 0 {
		return Result{TotalTokens: l.state.TotalTokens}
	}

	tokens := round4(points * l.rate)
	entry := Entry{
		ID:        "reward-" + uuid.NewString(),
		Timestamp: l.clock().UnixMilli(),
		Points:    points,
		Tokens:    tokens,
		Meta:      meta,
	}

	l.state.History = append([]Entry{entry}, l.state.History...)
	if len(l.state.History) > MaxHistory {
		l.state.History = l.state.History[:MaxHistory]
	}
	l.state.TotalTokens = round4(l.state.TotalTokens + tokens)
	l.persist()

	return Result{
		Recorded:    true,
		Tokens:      tokens,
		Entry:       &entry,
		TotalTokens: l.state.TotalTokens,
	}
}

// GetSummary returns the total balance, a copy of the history and the
// active conversion rate.
func (l *Ledger) GetSummary() Summary {
	history := make([]Entry, len(l.state.History))
	copy(history, l.state.History)
	return Summary{
		TotalTokens:    l.state.TotalTokens,
		History:        history,
		ConversionRate: l.rate,
	}
}

// Reset clears the history and zeroes the balance.
func (l *Ledger) Reset() {
	l.state = persistedState{History: []Entry{}}
	l.persist()
}

// round4 rounds to 4 decimal places, matching the display precision of
// the token balance.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
