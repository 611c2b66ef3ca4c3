package geom

import "testing"

func square(x1, y1, x2, y2 float64) Polygon {
	return Polygon{
		{X: x1, Y: y1}, {X: x2, Y: y1}, {X: x2, Y: y2}, {X: x1, Y: y2},
	}
}

func TestPolygonArea(t *testing.T) {
	p := square(0, 0, 10, 5)
	if got := p.Area(); !almostEqual(got, 50) {
		t.Errorf("Area() = %v, want 50", got)
	}
}

func TestPolygonOffsetShrinksInward(t *testing.T) {
	p := square(0, 0, 100, 100)
	shrunk := p.Offset(-10)
	b := shrunk.AABB()
	if !almostEqual(b.MinX, 10) || !almostEqual(b.MaxX, 90) || !almostEqual(b.MinY, 10) || !almostEqual(b.MaxY, 90) {
		t.Errorf("Offset(-10) bounds = %+v, want 10..90 on both axes", b)
	}
}

func TestPolygonOffsetGrowsOutward(t *testing.T) {
	p := square(0, 0, 100, 100)
	grown := p.Offset(10)
	b := grown.AABB()
	if !almostEqual(b.MinX, -10) || !almostEqual(b.MaxX, 110) {
		t.Errorf("Offset(10) bounds = %+v, want -10..110 on x", b)
	}
}

func TestPolygonContainsPoint(t *testing.T) {
	p := square(0, 0, 100, 100)
	if !p.ContainsPoint(Point{X: 50, Y: 50}, 0) {
		t.Error("ContainsPoint(center) = false, want true")
	}
	if p.ContainsPoint(Point{X: 200, Y: 200}, 0) {
		t.Error("ContainsPoint(far outside) = true, want false")
	}
}

func TestPolygonCovers(t *testing.T) {
	outer := square(0, 0, 100, 100)
	inner := square(10, 10, 90, 90)
	if !outer.Covers(inner, 0) {
		t.Error("Covers(inner) = false, want true")
	}
	if inner.Covers(outer, 0) {
		t.Error("Covers(outer) from inner = true, want false")
	}
}

func TestPolygonIntersectionLength(t *testing.T) {
	p := square(0, 0, 100, 100)
	seg := Segment{P1: Point{X: -50, Y: 50}, P2: Point{X: 150, Y: 50}}
	if got := p.IntersectionLength(seg); !almostEqual(got, 100) {
		t.Errorf("IntersectionLength = %v, want 100", got)
	}

	miss := Segment{P1: Point{X: -50, Y: 200}, P2: Point{X: 150, Y: 200}}
	if got := p.IntersectionLength(miss); got != 0 {
		t.Errorf("IntersectionLength(miss) = %v, want 0", got)
	}
}
