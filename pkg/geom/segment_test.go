package geom

import "testing"

func TestSegmentDegenerate(t *testing.T) {
	s := Segment{P1: Point{X: 0, Y: 0}, P2: Point{X: 0, Y: 0}}
	if !s.Degenerate() {
		t.Error("Degenerate() = false for a zero-length segment, want true")
	}
	s2 := Segment{P1: Point{X: 0, Y: 0}, P2: Point{X: 1, Y: 0}}
	if s2.Degenerate() {
		t.Error("Degenerate() = true for a 1mm segment, want false")
	}
}

func TestSegmentPointAt(t *testing.T) {
	s := Segment{P1: Point{X: 0, Y: 0}, P2: Point{X: 10, Y: 0}}
	if got := s.PointAt(0.5); !almostEqual(got.X, 5) {
		t.Errorf("PointAt(0.5).X = %v, want 5", got.X)
	}
}

func TestSegmentParam(t *testing.T) {
	s := Segment{P1: Point{X: 0, Y: 0}, P2: Point{X: 10, Y: 0}}
	tt, ok := s.Param(Point{X: 7, Y: 3})
	if !ok {
		t.Fatal("Param() ok = false, want true")
	}
	if !almostEqual(tt, 0.7) {
		t.Errorf("Param() = %v, want 0.7", tt)
	}
}

func TestSegmentOnSegmentLine(t *testing.T) {
	s := Segment{P1: Point{X: 0, Y: 0}, P2: Point{X: 10, Y: 0}}
	if !s.OnSegmentLine(Point{X: 50, Y: 0.05}, 0.1) {
		t.Error("OnSegmentLine within tol = false, want true")
	}
	if s.OnSegmentLine(Point{X: 50, Y: 5}, 0.1) {
		t.Error("OnSegmentLine far off line = true, want false")
	}
}
