package storage

import (
	"testing"

	"go.uber.org/zap"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore()

	if _, ok := s.Get("missing"); ok {
		t.Error("Get on empty store should miss")
	}

	s.Set("a", "1")
	s.Set("b", "2")

	if v, ok := s.Get("a"); !ok || v != "1" {
		t.Errorf("Get(a) = %q, %v, want %q, true", v, ok, "1")
	}

	s.Remove("a")
	if _, ok := s.Get("a"); ok {
		t.Error("Get after Remove should miss")
	}

	s.Clear()
	if _, ok := s.Get("b"); ok {
		t.Error("Get after Clear should miss")
	}
}

func TestMemoryStore_InstancesAreIsolated(t *testing.T) {
	a := NewMemoryStore()
	b := NewMemoryStore()

	a.Set("shared", "from-a")
	if _, ok := b.Get("shared"); ok {
		t.Error("stores must not share state")
	}
}

func TestReadJSON_MissingKey(t *testing.T) {
	s := NewMemoryStore()
	var out map[string]int
	if ReadJSON(s, zap.NewNop(), "nope", &out) {
		t.Error("ReadJSON on missing key should return false")
	}
}

func TestReadJSON_ParseFailureReturnsFalse(t *testing.T) {
	s := NewMemoryStore()
	s.Set("bad", "{not json")

	var out map[string]int
	if ReadJSON(s, zap.NewNop(), "bad", &out) {
		t.Error("ReadJSON on malformed value should return false")
	}
}

func TestWriteJSON_ReadJSON_RoundTrip(t *testing.T) {
	s := NewMemoryStore()
	in := map[string]int{"xp": 120, "level": 2}
	WriteJSON(s, zap.NewNop(), "state", in)

	var out map[string]int
	if !ReadJSON(s, zap.NewNop(), "state", &out) {
		t.Fatal("ReadJSON should succeed after WriteJSON")
	}
	if out["xp"] != 120 || out["level"] != 2 {
		t.Errorf("round trip = %v, want %v", out, in)
	}
}

func TestWriteJSON_UnmarshalableValueIsNoOp(t *testing.T) {
	s := NewMemoryStore()
	WriteJSON(s, zap.NewNop(), "bad", func() {})

	if _, ok := s.Get("bad"); ok {
		t.Error("failed marshal should not write anything")
	}
}
