package flow

import "math"

// Shuffle returns a Fisher-Yates shuffled copy of items. The input is
// never mutated. random must yield uniform values in [0, 1); injecting a
// fixed source makes display order deterministic in tests.
func Shuffle[T any](items []T, random func() float64) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := int(math.Floor(random() * float64(i+1)))
		out[i], out[j] = out[j], out[i]
	}
	return out
}
