package storage

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db")
	s, err := OpenSQLite(dsn, zap.NewNop())
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	s := openTestStore(t)

	if _, ok := s.Get("missing"); ok {
		t.Error("Get on fresh database should miss")
	}

	s.Set("progress", `{"xp":10}`)
	if v, ok := s.Get("progress"); !ok || v != `{"xp":10}` {
		t.Errorf("Get = %q, %v, want stored value", v, ok)
	}

	// Upsert replaces the value.
	s.Set("progress", `{"xp":20}`)
	if v, _ := s.Get("progress"); v != `{"xp":20}` {
		t.Errorf("Get after overwrite = %q, want updated value", v)
	}

	s.Remove("progress")
	if _, ok := s.Get("progress"); ok {
		t.Error("Get after Remove should miss")
	}
}

func TestSQLiteStore_Clear(t *testing.T) {
	s := openTestStore(t)
	s.Set("a", "1")
	s.Set("b", "2")

	s.Clear()

	if _, ok := s.Get("a"); ok {
		t.Error("a should be gone after Clear")
	}
	if _, ok := s.Get("b"); ok {
		t.Error("b should be gone after Clear")
	}
}

func TestSQLiteStore_PersistsAcrossOpens(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "persist.db")

	first, err := OpenSQLite(dsn, zap.NewNop())
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	first.Set("ledger", `{"totalTokens":5}`)
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := OpenSQLite(dsn, zap.NewNop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	if v, ok := second.Get("ledger"); !ok || v != `{"totalTokens":5}` {
		t.Errorf("Get after reopen = %q, %v, want persisted value", v, ok)
	}
}
