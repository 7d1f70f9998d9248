package rewards

import (
	"fmt"
	"math"
	"testing"

	"github.com/realtoken/questline/internal/progression"
	"github.com/realtoken/questline/internal/storage"
)

func newTestLedger(rate float64) *Ledger {
	return NewLedger(LedgerOptions{Store: storage.NewMemoryStore(), ConversionRate: rate})
}

func TestRegisterReward_ConvertsPoints(t *testing.T) {
	l := newTestLedger(0.1)

	result := l.RegisterReward(50, progression.Meta{Reason: "questCompletion"})
	if !result.Recorded {
		t.Fatal("reward should be recorded")
	}
	if result.Tokens != 5.0 {
		t.Errorf("tokens = %v, want 5.0", result.Tokens)
	}
	if result.TotalTokens != 5.0 {
		t.Errorf("totalTokens = %v, want 5.0", result.TotalTokens)
	}
	if result.Entry == nil || result.Entry.Points != 50 {
		t.Errorf("entry = %+v", result.Entry)
	}
	if result.Entry.ID == "" {
		t.Error("entry should carry a unique id")
	}
}

func TestRegisterReward_RejectsInvalidPoints(t *testing.T) {
	l := newTestLedger(0.1)

	for _, points := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		result := l.RegisterReward(points, progression.Meta{})
		if result.Recorded {
			t.Errorf("RegisterReward(%v) recorded = true, want false", points)
		}
		if result.Entry != nil {
			t.Errorf("RegisterReward(%v) produced an entry", points)
		}
	}
	if len(l.GetSummary().History) != 0 {
		t.Error("rejected rewards must not touch history")
	}
}

func TestRegisterReward_RoundsToFourDecimals(t *testing.T) {
	l := newTestLedger(0.0333)

	result := l.RegisterReward(10, progression.Meta{})
	if result.Tokens != 0.333 {
		t.Errorf("tokens = %v, want 0.333", result.Tokens)
	}

	second := l.RegisterReward(1, progression.Meta{})
	if second.TotalTokens != 0.3663 {
		t.Errorf("totalTokens = %v, want 0.3663", second.TotalTokens)
	}
}

func TestHistory_BoundedMostRecentFirst(t *testing.T) {
	l := newTestLedger(DefaultRate)

	for i := 1; i <= 30; i++ {
		l.RegisterReward(float64(i), progression.Meta{Label: fmt.Sprintf("award %d", i)})
	}

	summary := l.GetSummary()
	if len(summary.History) != MaxHistory {
		t.Fatalf("history = %d entries, want %d", len(summary.History), MaxHistory)
	}
	if summary.History[0].Points != 30 {
		t.Errorf("history[0].Points = %v, want most recent (30)", summary.History[0].Points)
	}
	if summary.History[MaxHistory-1].Points != 6 {
		t.Errorf("oldest retained = %v, want 6", summary.History[MaxHistory-1].Points)
	}
}

func TestGetSummary_ReturnsCopy(t *testing.T) {
	l := newTestLedger(DefaultRate)
	l.RegisterReward(10, progression.Meta{})

	summary := l.GetSummary()
	summary.History[0].Points = 999

	if l.GetSummary().History[0].Points != 10 {
		t.Error("GetSummary must return a copy of the history")
	}
}

func TestLedger_PersistsAcrossInstances(t *testing.T) {
	store := storage.NewMemoryStore()

	l := NewLedger(LedgerOptions{Store: store, ConversionRate: 0.1})
	l.RegisterReward(50, progression.Meta{})

	reloaded := NewLedger(LedgerOptions{Store: store, ConversionRate: 0.1})
	summary := reloaded.GetSummary()
	if summary.TotalTokens != 5.0 || len(summary.History) != 1 {
		t.Errorf("reloaded summary = %+v", summary)
	}
}

func TestReset(t *testing.T) {
	store := storage.NewMemoryStore()
	l := NewLedger(LedgerOptions{Store: store})
	l.RegisterReward(100, progression.Meta{})

	l.Reset()

	summary := l.GetSummary()
	if summary.TotalTokens != 0 || len(summary.History) != 0 {
		t.Errorf("summary after reset = %+v", summary)
	}

	reloaded := NewLedger(LedgerOptions{Store: store})
	if reloaded.GetSummary().TotalTokens != 0 {
		t.Error("reset should persist")
	}
}
