package flow

import (
	"math/rand/v2"
	"testing"
)

func TestShuffle_DoesNotMutateInput(t *testing.T) {
	input := []string{"a", "b", "c", "d"}
	rng := rand.New(rand.NewPCG(1, 2))

	Shuffle(input, rng.Float64)

	for i, want := range []string{"a", "b", "c", "d"} {
		if input[i] != want {
			t.Fatalf("input mutated: %v", input)
		}
	}
}

func TestShuffle_DeterministicWithFixedSource(t *testing.T) {
	input := []int{1, 2, 3, 4}

	// random() == 0 always swaps with index 0.
	got := Shuffle(input, func() float64 { return 0 })

	want := []int{2, 3, 4, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Shuffle = %v, want %v", got, want)
		}
	}
}

func TestShuffle_PreservesElements(t *testing.T) {
	input := []string{"a", "b", "c", "d", "e", "f"}
	rng := rand.New(rand.NewPCG(7, 11))

	got := Shuffle(input, rng.Float64)

	if len(got) != len(input) {
		t.Fatalf("length = %d, want %d", len(got), len(input))
	}
	seen := make(map[string]int)
	for _, v := range got {
		seen[v]++
	}
	for _, v := range input {
		if seen[v] != 1 {
			t.Fatalf("element %q count = %d, want 1 (got %v)", v, seen[v], got)
		}
	}
}

func TestShuffle_EmptyAndSingle(t *testing.T) {
	if got := Shuffle([]int{}, func() float64 { return 0.5 }); len(got) != 0 {
		t.Errorf("empty shuffle = %v", got)
	}
	if got := Shuffle([]int{42}, func() float64 { return 0.5 }); len(got) != 1 || got[0] != 42 {
		t.Errorf("single shuffle = %v", got)
	}
}
