package geom

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec
		want float64
	}{
		{"unit_x", Vec{X: 1, Y: 0}, 1},
		{"scaled", Vec{X: 3, Y: 4}, 1},
		{"degenerate", Vec{X: 0, Y: 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in).Len()
			if !almostEqual(got, tt.want) {
				t.Errorf("Normalize(%v).Len() = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalIsPerpendicular(t *testing.T) {
	u := Normalize(Vec{X: 3, Y: 1})
	n := Normal(u)
	if !almostEqual(Dot(u, n), 0) {
		t.Errorf("Normal(%v) = %v not perpendicular to u", u, n)
	}
	if !almostEqual(n.Len(), u.Len()) {
		t.Errorf("Normal(%v) changed length: got %v want %v", u, n.Len(), u.Len())
	}
}

func TestPointToSegmentDistance(t *testing.T) {
	a := Point{X: 0, Y: 0}
	b := Point{X: 10, Y: 0}
	tests := []struct {
		name string
		p    Point
		want float64
	}{
		{"on_segment", Point{X: 5, Y: 0}, 0},
		{"above_midpoint", Point{X: 5, Y: 3}, 3},
		{"past_end", Point{X: 15, Y: 0}, 5},
		{"before_start", Point{X: -4, Y: 0}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PointToSegmentDistance(tt.p, a, b)
			if !almostEqual(got, tt.want) {
				t.Errorf("PointToSegmentDistance(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestLineIntersectionPerpendicular(t *testing.T) {
	p, ok := LineIntersection(Point{X: 0, Y: 5}, Vec{X: 1, Y: 0}, Point{X: 5, Y: 0}, Vec{X: 0, Y: 1})
	if !ok {
		t.Fatal("LineIntersection reported no intersection for perpendicular lines")
	}
	if !almostEqual(p.X, 5) || !almostEqual(p.Y, 5) {
		t.Errorf("LineIntersection = %v, want (5,5)", p)
	}
}

func TestLineIntersectionParallel(t *testing.T) {
	_, ok := LineIntersection(Point{X: 0, Y: 0}, Vec{X: 1, Y: 0}, Point{X: 0, Y: 5}, Vec{X: 1, Y: 0})
	if ok {
		t.Error("LineIntersection reported an intersection for parallel lines")
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		v, q, want float64
	}{
		{123, 50, 100},
		{126, 50, 150},
		{100, 50, 100},
		{7, 0, 7},
	}
	for _, tt := range tests {
		if got := Round(tt.v, tt.q); !almostEqual(got, tt.want) {
			t.Errorf("Round(%v, %v) = %v, want %v", tt.v, tt.q, got, tt.want)
		}
	}
}

// TestProperty_ProjectOntoAxisRoundTrip checks that projecting a point
// placed at a known offset along u back onto u recovers that same offset,
// for arbitrary origins, axes, and offsets.
func TestProperty_ProjectOntoAxisRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ox := rapid.Float64Range(-1e5, 1e5).Draw(t, "ox")
		oy := rapid.Float64Range(-1e5, 1e5).Draw(t, "oy")
		angle := rapid.Float64Range(0, 2*math.Pi).Draw(t, "angle")
		offset := rapid.Float64Range(-1e4, 1e4).Draw(t, "offset")

		origin := Point{X: ox, Y: oy}
		u := Vec{X: math.Cos(angle), Y: math.Sin(angle)}
		p := origin.Add(u.Scale(offset))

		got := ProjectOntoAxis(p, origin, u)
		if math.Abs(got-offset) > 1e-6 {
			t.Fatalf("ProjectOntoAxis round-trip: got %v, want %v", got, offset)
		}
	})
}
