package pipeline

import (
	"sort"
	"testing"
)

func TestParallelForVisitsEveryIndexExactlyOnce(t *testing.T) {
	const n = 500
	seen := make([]int, n)
	parallelFor(n, func(i int) {
		seen[i]++
	})
	for i, c := range seen {
		if c != 1 {
			t.Fatalf("index %d visited %d times, want 1", i, c)
		}
	}
}

func TestParallelForEmpty(t *testing.T) {
	called := false
	parallelFor(0, func(int) { called = true })
	if called {
		t.Error("parallelFor(0, ...) invoked work, want no-op")
	}
}

// TestParallelForDeterministicWithPerIndexSlots verifies the established
// caller pattern: write into pre-sized per-index slots under parallelFor,
// then the combined slice matches what a sequential loop would produce
// regardless of goroutine scheduling order.
func TestParallelForDeterministicWithPerIndexSlots(t *testing.T) {
	const n = 200
	got := make([]int, n)
	parallelFor(n, func(i int) {
		got[i] = i * i
	})
	want := make([]int, n)
	for i := range want {
		want[i] = i * i
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %d, want %d", i, got[i], want[i])
		}
	}
	if !sort.IntsAreSorted(got) {
		t.Error("expected monotonically increasing squares")
	}
}
